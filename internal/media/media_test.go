package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 255, G: 153, B: 51, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestScaledDimensions(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 200, 100, 50},
		{2000, 1000, 1000, 1000, 500},
		{1000, 2000, 1000, 500, 1000},
		{3000, 1, 1000, 1000, 1},
	}
	for _, tt := range tests {
		w, h := scaledDimensions(tt.w, tt.h, tt.max)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("scaledDimensions(%d, %d, %d) = %d x %d, want %d x %d", tt.w, tt.h, tt.max, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestPrepareReferenceImagePassThrough(t *testing.T) {
	data := pngBytes(t, 32, 16)
	img, err := PrepareReferenceImage(data, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.MIMEType != "image/png" || !bytes.Equal(img.Data, data) {
		t.Errorf("small image should pass through unchanged, got %s", img.MIMEType)
	}
}

func TestLoadReferenceImageDownscales(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.png")
	if err := os.WriteFile(path, pngBytes(t, 200, 100), 0o600); err != nil {
		t.Fatal(err)
	}

	img, err := LoadReferenceImage(path, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.MIMEType != "image/jpeg" {
		t.Fatalf("expected jpeg, got %s", img.MIMEType)
	}
	decoded, err := jpeg.Decode(bytes.NewReader(img.Data))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 50 || b.Dy() != 25 {
		t.Errorf("expected 50x25, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestPrepareReferenceImageRejectsOtherFormats(t *testing.T) {
	_, err := PrepareReferenceImage([]byte("GIF89a not really"), 64)
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage, got %v", err)
	}
}

func TestParseDataURI(t *testing.T) {
	raw := pngBytes(t, 4, 4)
	encoded := base64.StdEncoding.EncodeToString(raw)

	mimeType, data, err := ParseDataURI("data:image/png;base64," + encoded)
	if err != nil || mimeType != "image/png" || !bytes.Equal(data, raw) {
		t.Errorf("data URI: mime=%q err=%v", mimeType, err)
	}

	mimeType, data, err = ParseDataURI(encoded)
	if err != nil || mimeType != "image/png" || !bytes.Equal(data, raw) {
		t.Errorf("bare base64: mime=%q err=%v", mimeType, err)
	}

	for _, bad := range []string{"data:image/png;base64", "data:text/plain,hello", "data:image/png;base64,@@@"} {
		if _, _, err := ParseDataURI(bad); err == nil {
			t.Errorf("ParseDataURI(%q) should fail", bad)
		}
	}
}

func TestPhotoCoordinatesWithoutExif(t *testing.T) {
	if _, _, err := PhotoCoordinates(pngBytes(t, 8, 8)); err == nil {
		t.Error("expected an error for a photo without GPS")
	}
	if _, _, err := PhotoCoordinatesFromFile(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
