package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/assets"
)

// BuildTranslateRequest builds the plain-text translation call.
func BuildTranslateRequest(policy ModelPolicy, content, language string) Request {
	policy = policy.orDefault()
	return Request{
		Capability: CapabilityTranslate,
		Model:      policy.Translate,
		Parts:      []*genai.Part{{Text: assets.RenderTranslatePrompt(content, language)}},
	}
}

// Translate renders content in the target language, preserving cultural
// nuance and brand tone. An empty model reply yields the source content.
func Translate(ctx context.Context, p Provider, policy ModelPolicy, content, language string) (string, error) {
	if strings.TrimSpace(language) == "" {
		return "", ErrMissingLanguage
	}
	if strings.TrimSpace(content) == "" {
		return content, nil
	}

	req := BuildTranslateRequest(policy, content, language)
	log.Debug().Str("language", language).Int("content_length", len(content)).Msg("Translating content")

	resp, err := generate(ctx, p, req)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		log.Warn().Str("language", language).Msg("Empty translation, keeping source content")
		return content, nil
	}
	return text, nil
}
