// Package gemini provides an ImageService implementation using Google's
// Gemini API via the official Go SDK:
// https://github.com/googleapis/go-genai
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/promptstudio/promptstudio"
	"google.golang.org/genai"
)

// DefaultModel is the model used when Config.Model is empty.
const DefaultModel = "gemini-2.5-flash-image"

// defaultTimeout bounds each remote call so a hung request cannot leave a
// session in flight forever.
const defaultTimeout = 2 * time.Minute

// Config configures the Gemini service.
type Config struct {
	// APIKey for authentication. If empty, the SDK falls back to the
	// GOOGLE_API_KEY or GEMINI_API_KEY environment variables.
	APIKey string

	// BaseURL for custom endpoints (optional)
	BaseURL string

	// Model name, e.g. "gemini-2.5-flash-image"
	Model string

	// AspectRatio of generated images ("1:1", "16:9", ...). Empty lets the
	// model choose.
	AspectRatio string

	// Temperature controls randomness (0.0-2.0)
	Temperature *float32

	// Timeout per remote call. Zero uses defaultTimeout.
	Timeout time.Duration
}

// Service implements promptstudio.ImageService on the Gemini API.
type Service struct {
	client      *genai.Client
	model       string
	aspectRatio string
	temperature *float32
	timeout     time.Duration
}

// Ensure Service implements the interface.
var _ promptstudio.ImageService = (*Service)(nil)

// New creates a Gemini-backed image service.
func New(ctx context.Context, cfg Config) (*Service, error) {
	clientCfg := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.APIKey != "" {
		clientCfg.APIKey = cfg.APIKey
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Service{
		client:      client,
		model:       model,
		aspectRatio: cfg.AspectRatio,
		temperature: cfg.Temperature,
		timeout:     timeout,
	}, nil
}

// Generate creates an image from a text prompt.
func (s *Service) Generate(ctx context.Context, prompt string) (*promptstudio.Artifact, error) {
	if err := promptstudio.ValidatePrompt(prompt); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, s.requestConfig())
	if err != nil {
		if rlErr := checkRateLimitError(err, s.model); rlErr != nil {
			return nil, rlErr
		}
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return parseResponse(result)
}

// Edit modifies an existing image based on a text instruction.
func (s *Service) Edit(ctx context.Context, prompt string, source promptstudio.Artifact) (*promptstudio.Artifact, error) {
	if err := promptstudio.ValidatePrompt(prompt); err != nil {
		return nil, err
	}
	if err := promptstudio.ValidateArtifact(source); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Source image first, then the instruction.
	parts := []*genai.Part{
		{
			InlineData: &genai.Blob{
				Data:     source.Data,
				MIMEType: source.MIMEType,
			},
		},
		{Text: prompt},
	}

	contents := []*genai.Content{
		{Parts: parts},
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, s.requestConfig())
	if err != nil {
		if rlErr := checkRateLimitError(err, s.model); rlErr != nil {
			return nil, rlErr
		}
		return nil, fmt.Errorf("edit failed: %w", err)
	}

	return parseResponse(result)
}

// Close releases any resources held by the service.
func (s *Service) Close() error {
	// The genai.Client doesn't require explicit closing in the current SDK
	return nil
}

// requestConfig builds the GenerateContentConfig shared by both operations.
func (s *Service) requestConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		// Enable image output
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	if s.aspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{
			AspectRatio: s.aspectRatio,
		}
	}

	if s.temperature != nil {
		cfg.Temperature = genai.Ptr(*s.temperature)
	}

	return cfg
}

// parseResponse extracts the single image the service contract requires. A
// transport-level success carrying no inline image is a contract failure.
func parseResponse(result *genai.GenerateContentResponse) (*promptstudio.Artifact, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, promptstudio.ErrNoImage
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &promptstudio.Artifact{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				}, nil
			}
		}
	}

	return nil, promptstudio.ErrNoImage
}

// checkRateLimitError checks if an error from the Gemini API is a rate limit
// error. If so, it wraps it in a RateLimitError for standardized handling;
// otherwise returns nil and the caller keeps the original error.
func checkRateLimitError(err error, model string) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}

	if apiErr.Code != 429 && apiErr.Status != "RESOURCE_EXHAUSTED" {
		return nil
	}

	return &promptstudio.RateLimitError{
		RetryAfter: 60 * time.Second, // Default; API doesn't reliably provide Retry-After
		Model:      model,
		Err:        err,
	}
}
