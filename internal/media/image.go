package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"

	"github.com/fpang/creator-studio/internal/brand"
)

// DefaultMaxDimension caps the longest side of a reference image sent to
// the model.
const DefaultMaxDimension = 1024

// ErrUnsupportedImage is returned for payloads that are not JPEG or PNG.
var ErrUnsupportedImage = errors.New("unsupported image format")

// LoadReferenceImage reads an image file for use as a brand reference.
func LoadReferenceImage(path string, maxDimension int) (brand.ReferenceImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return brand.ReferenceImage{}, fmt.Errorf("failed to read image: %w", err)
	}
	img, err := PrepareReferenceImage(data, maxDimension)
	if err != nil {
		return brand.ReferenceImage{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Str("mime", img.MIMEType).Int("bytes", len(img.Data)).Msg("Reference image loaded")
	return img, nil
}

// PrepareReferenceImage sniffs the payload type and downscales JPEG or PNG
// images whose longest side exceeds maxDimension, re-encoding them as JPEG.
// Smaller images pass through untouched.
func PrepareReferenceImage(data []byte, maxDimension int) (brand.ReferenceImage, error) {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	mimeType := http.DetectContentType(data)
	if mimeType != "image/jpeg" && mimeType != "image/png" {
		return brand.ReferenceImage{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, mimeType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return brand.ReferenceImage{}, fmt.Errorf("failed to decode image header: %w", err)
	}
	if cfg.Width <= maxDimension && cfg.Height <= maxDimension {
		return brand.ReferenceImage{MIMEType: mimeType, Data: data}, nil
	}

	resized, err := downscale(data, mimeType, maxDimension)
	if err != nil {
		return brand.ReferenceImage{}, err
	}
	return brand.ReferenceImage{MIMEType: "image/jpeg", Data: resized}, nil
}

func downscale(data []byte, mimeType string, maxDimension int) ([]byte, error) {
	var (
		img image.Image
		err error
	)
	switch mimeType {
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case "image/png":
		img, err = png.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	newWidth, newHeight := scaledDimensions(bounds.Dx(), bounds.Dy(), maxDimension)
	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	log.Debug().
		Int("orig_width", bounds.Dx()).
		Int("orig_height", bounds.Dy()).
		Int("new_width", newWidth).
		Int("new_height", newHeight).
		Int("output_size", buf.Len()).
		Msg("Reference image downscaled")
	return buf.Bytes(), nil
}

// scaledDimensions fits width x height inside a square of maxDimension,
// preserving the aspect ratio.
func scaledDimensions(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}
	if width > height {
		return maxDimension, max(1, int(float64(height)*float64(maxDimension)/float64(width)))
	}
	return max(1, int(float64(width)*float64(maxDimension)/float64(height))), maxDimension
}

// ParseDataURI decodes "data:<mime>;base64,<payload>". A bare base64
// payload is accepted and its type sniffed.
func ParseDataURI(s string) (mimeType string, data []byte, err error) {
	s = strings.TrimSpace(s)
	payload := s
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		header, body, found := strings.Cut(rest, ",")
		if !found {
			return "", nil, errors.New("malformed data URI")
		}
		if !strings.HasSuffix(header, ";base64") {
			return "", nil, errors.New("data URI is not base64 encoded")
		}
		mimeType = strings.TrimSuffix(header, ";base64")
		payload = body
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return mimeType, data, nil
}
