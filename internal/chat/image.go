package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// PosterAspectRatio is the fixed aspect ratio for generated stills.
const PosterAspectRatio = "1:1"

// BuildImageRequest builds a square still-image call for prompt.
func BuildImageRequest(policy ModelPolicy, prompt string) Request {
	policy = policy.orDefault()
	return Request{
		Capability: CapabilityImage,
		Model:      policy.Image,
		Parts:      []*genai.Part{{Text: prompt}},
		Config: &genai.GenerateContentConfig{
			ImageConfig: &genai.ImageConfig{AspectRatio: PosterAspectRatio},
		},
	}
}

// GenerateImage synthesizes a still image and returns it as a PNG data URI.
func GenerateImage(ctx context.Context, p Provider, policy ModelPolicy, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}
	req := BuildImageRequest(policy, prompt)
	log.Info().Str("model", req.Model).Int("prompt_length", len(prompt)).Msg("Generating image...")

	resp, err := generate(ctx, p, req)
	if err != nil {
		return "", err
	}

	uri, err := ImageDataURI(resp)
	if err != nil {
		log.Error().Err(err).Msg("Image response carried no inline data")
		return "", err
	}
	log.Info().Int("data_uri_length", len(uri)).Msg("Image generation complete")
	return uri, nil
}
