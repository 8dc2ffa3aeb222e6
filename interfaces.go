package promptstudio

import "context"

// ImageService is the remote image synthesis boundary. Implementations call a
// generative model endpoint; the Session controller only sees this contract.
//
// Both operations are single-shot: no streaming, no retries. Neither imposes
// a timeout of its own beyond what the implementation configures; callers may
// impose one through ctx.
type ImageService interface {
	// Generate requests a new image matching prompt. A successful call
	// returns exactly one image; a response carrying no image payload is a
	// contract failure and surfaces as ErrNoImage.
	Generate(ctx context.Context, prompt string) (*Artifact, error)

	// Edit requests a modification of source per prompt. Same single-image
	// contract as Generate.
	Edit(ctx context.Context, prompt string, source Artifact) (*Artifact, error)

	// Close releases any resources held by the service.
	Close() error
}
