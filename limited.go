package promptstudio

import (
	"context"

	"github.com/promptstudio/promptstudio/ratelimiter"
)

// LimitedService wraps an ImageService with a request rate limiter. A limited
// call fails immediately with a RateLimitError; nothing is queued or retried.
type LimitedService struct {
	svc     ImageService
	limiter ratelimiter.Limiter
	model   string
}

// Ensure LimitedService implements the interface.
var _ ImageService = (*LimitedService)(nil)

// NewLimitedService wraps svc with limiter. The model name is only used in
// error messages. A nil limiter disables limiting.
func NewLimitedService(svc ImageService, limiter ratelimiter.Limiter, model string) *LimitedService {
	return &LimitedService{
		svc:     svc,
		limiter: limiter,
		model:   model,
	}
}

// Generate checks the rate limit, then delegates to the wrapped service.
func (l *LimitedService) Generate(ctx context.Context, prompt string) (*Artifact, error) {
	if err := l.allow(); err != nil {
		return nil, err
	}
	return l.svc.Generate(ctx, prompt)
}

// Edit checks the rate limit, then delegates to the wrapped service.
func (l *LimitedService) Edit(ctx context.Context, prompt string, source Artifact) (*Artifact, error) {
	if err := l.allow(); err != nil {
		return nil, err
	}
	return l.svc.Edit(ctx, prompt, source)
}

// Close closes the wrapped service.
func (l *LimitedService) Close() error {
	return l.svc.Close()
}

func (l *LimitedService) allow() error {
	if l.limiter == nil {
		return nil
	}
	if l.limiter.Allow() {
		return nil
	}
	return &RateLimitError{
		RetryAfter: l.limiter.TimeUntilAvailable(),
		Model:      l.model,
	}
}
