package promptstudio

import (
	"context"
)

// MockImageService is a mock implementation of ImageService.
type MockImageService struct {
	GenerateFunc func(ctx context.Context, prompt string) (*Artifact, error)
	EditFunc     func(ctx context.Context, prompt string, source Artifact) (*Artifact, error)
	CloseFunc    func() error
}

func (m *MockImageService) Generate(ctx context.Context, prompt string) (*Artifact, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return &Artifact{Data: []byte("mock"), MIMEType: "image/png"}, nil
}

func (m *MockImageService) Edit(ctx context.Context, prompt string, source Artifact) (*Artifact, error) {
	if m.EditFunc != nil {
		return m.EditFunc(ctx, prompt, source)
	}
	return &Artifact{Data: []byte("mock"), MIMEType: "image/png"}, nil
}

func (m *MockImageService) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
