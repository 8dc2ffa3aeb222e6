package promptstudio

import (
	"testing"
)

func TestArtifact_DataURI(t *testing.T) {
	art := Artifact{Data: []byte("AAA"), MIMEType: "image/png"}

	// "AAA" encodes to "QUFB"; the exact data URI shape is the contract the
	// presentation layer depends on.
	want := "data:image/png;base64,QUFB"
	if got := art.DataURI(); got != want {
		t.Errorf("DataURI() = %q, want %q", got, want)
	}
}

func TestArtifactFromBase64(t *testing.T) {
	art, err := ArtifactFromBase64("QUFB", "image/png")
	if err != nil {
		t.Fatalf("ArtifactFromBase64() error = %v", err)
	}
	if string(art.Data) != "AAA" {
		t.Errorf("Data = %q, want %q", art.Data, "AAA")
	}
	if art.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q, want %q", art.MIMEType, "image/png")
	}

	if _, err := ArtifactFromBase64("not base64!!!", "image/png"); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestArtifact_Extension(t *testing.T) {
	tests := []struct {
		mimeType string
		want     string
	}{
		{"image/png", "png"},
		{"image/jpeg", "jpg"},
		{"image/webp", "webp"},
		{"image/gif", "gif"},
		{"application/octet-stream", "png"},
		{"", "png"},
	}

	for _, tt := range tests {
		art := Artifact{MIMEType: tt.mimeType}
		if got := art.Extension(); got != tt.want {
			t.Errorf("Extension() for %q = %q, want %q", tt.mimeType, got, tt.want)
		}
	}
}
