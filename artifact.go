package promptstudio

import (
	"encoding/base64"
	"fmt"
)

// Artifact is an immutable image payload plus its media type, produced by one
// remote operation. A new request always yields a wholly new Artifact; stored
// artifacts are replaced, never mutated in place.
type Artifact struct {
	// Data contains the raw image bytes
	Data []byte

	// MIMEType of the image (e.g. "image/png", "image/jpeg")
	MIMEType string
}

// Base64 returns the standard base64 encoding of the image bytes.
func (a Artifact) Base64() string {
	return base64.StdEncoding.EncodeToString(a.Data)
}

// DataURI renders the artifact as data:<mediaType>;base64,<data>. This is the
// encoding the presentation layer relies on to display images inline.
func (a Artifact) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", a.MIMEType, a.Base64())
}

// Extension returns a file extension for the artifact's MIME type.
func (a Artifact) Extension() string {
	switch a.MIMEType {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}

// ArtifactFromBase64 builds an Artifact from base64-encoded image data.
func ArtifactFromBase64(b64, mimeType string) (Artifact, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return Artifact{}, fmt.Errorf("invalid base64: %w", err)
	}
	return Artifact{
		Data:     data,
		MIMEType: mimeType,
	}, nil
}
