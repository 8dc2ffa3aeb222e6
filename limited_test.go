package promptstudio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/promptstudio/promptstudio/ratelimiter"
)

func TestLimitedService_RejectsWhenLimited(t *testing.T) {
	calls := 0
	svc := &MockImageService{
		GenerateFunc: func(ctx context.Context, prompt string) (*Artifact, error) {
			calls++
			return &Artifact{Data: []byte("AAA"), MIMEType: "image/png"}, nil
		},
	}

	limited := NewLimitedService(svc, ratelimiter.New(1), "test-model")
	ctx := context.Background()

	if _, err := limited.Generate(ctx, "a red cube"); err != nil {
		t.Fatalf("first call should pass: %v", err)
	}

	_, err := limited.Generate(ctx, "a red cube")
	if err == nil {
		t.Fatal("second call should be rate limited")
	}
	if !IsRateLimitError(err) {
		t.Errorf("expected RateLimitError, got %T: %v", err, err)
	}
	if calls != 1 {
		t.Errorf("underlying service called %d times, want 1", calls)
	}

	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatal("expected RateLimitError")
	}
	if rlErr.RetryAfter <= 0 || rlErr.RetryAfter > time.Minute {
		t.Errorf("RetryAfter = %v, want in (0, 1m]", rlErr.RetryAfter)
	}
}

func TestLimitedService_NilLimiterPassesThrough(t *testing.T) {
	svc := &MockImageService{}
	limited := NewLimitedService(svc, nil, "test-model")

	if _, err := limited.Generate(context.Background(), "a red cube"); err != nil {
		t.Errorf("nil limiter should pass through: %v", err)
	}
	if _, err := limited.Edit(context.Background(), "make it blue", Artifact{Data: []byte("x"), MIMEType: "image/png"}); err != nil {
		t.Errorf("nil limiter should pass through: %v", err)
	}
}

func TestLimitedService_EditConsumesSlot(t *testing.T) {
	svc := &MockImageService{}
	limited := NewLimitedService(svc, ratelimiter.New(1), "test-model")
	ctx := context.Background()

	if _, err := limited.Edit(ctx, "make it blue", Artifact{Data: []byte("x"), MIMEType: "image/png"}); err != nil {
		t.Fatalf("first edit should pass: %v", err)
	}
	if _, err := limited.Generate(ctx, "a red cube"); !IsRateLimitError(err) {
		t.Errorf("expected rate limit after slot consumed, got %v", err)
	}
}
