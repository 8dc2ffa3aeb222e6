package promptstudio

import (
	"context"
)

// Storage persists an artifact outside the session, for the explicit
// download/export affordance. This is a minimal interface designed for easy
// integration - implementations can wrap a filesystem directory or an
// S3-compatible client.
type Storage interface {
	// SaveFile saves image data to storage and returns a URL or filesystem
	// path where it can be retrieved. The path should include the full
	// object path (e.g. "exports/2026-08-31/generated-abc.png"); the
	// contentType is the image's MIME type.
	SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error)
}

// StorageResult contains information about a saved artifact.
type StorageResult struct {
	// URL is where the saved artifact can be accessed
	URL string

	// Path is the storage path/key where the artifact was saved
	Path string

	// Size is the number of bytes saved
	Size int
}

// SaveArtifact saves one artifact through storage, with the object path
// derived from basePath plus the artifact's extension.
func SaveArtifact(ctx context.Context, storage Storage, art Artifact, basePath string) (StorageResult, error) {
	if storage == nil {
		return StorageResult{}, ErrStorageNotConfigured
	}
	if len(art.Data) == 0 {
		return StorageResult{}, ErrEmptyImageData
	}

	path := basePath + "." + art.Extension()
	url, err := storage.SaveFile(ctx, art.Data, path, art.MIMEType)
	if err != nil {
		return StorageResult{}, err
	}

	return StorageResult{
		URL:  url,
		Path: path,
		Size: len(art.Data),
	}, nil
}
