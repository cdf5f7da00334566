package browser

import (
	"bytes"
	"image/jpeg"
	"testing"
)

func TestPlaceholderDimensions(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		width      int
		height     int
		wantWidth  int
		wantHeight int
	}{
		{"thumbnail size", "https://example.com", 200, 150, 200, 150},
		{"larger viewport", "https://example.com/page", 300, 200, 300, 200},
		{"invalid url still renders", "::not a url::", 120, 90, 120, 90},
		{"zero dims fall back to defaults", "https://example.com", 0, 0, 200, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := Placeholder(tt.url, tt.width, tt.height)
			if len(data) == 0 {
				t.Fatal("Placeholder() returned no bytes")
			}

			img, err := jpeg.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Placeholder() output is not a decodable JPEG: %v", err)
			}

			bounds := img.Bounds()
			if bounds.Dx() != tt.wantWidth || bounds.Dy() != tt.wantHeight {
				t.Errorf("Placeholder() dimensions = %dx%d, want %dx%d",
					bounds.Dx(), bounds.Dy(), tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestPlaceholderDeterministic(t *testing.T) {
	a := Placeholder("https://example.com", 200, 150)
	b := Placeholder("https://example.com", 200, 150)
	if !bytes.Equal(a, b) {
		t.Error("Placeholder() is not deterministic for identical inputs")
	}
}
