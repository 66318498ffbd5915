// Package cli holds helpers shared by the command-line binaries.
package cli

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fpang/creator-studio/internal/auth"
	"github.com/fpang/creator-studio/internal/chat"
)

// InitProvider resolves the API key, creates a Gemini-backed provider and
// validates the key with a minimal call. It exits fatally on failure.
// store may be nil to skip the SSM lookup.
func InitProvider(ctx context.Context, store auth.ParameterStore, param string) (*chat.GeminiProvider, string) {
	apiKey, err := auth.GetAPIKey(ctx, store, param)
	if err != nil {
		HandleValidationError(auth.ClassifyError(err))
	}

	client, err := chat.NewGeminiClient(ctx, apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Gemini client")
	}
	provider := chat.NewGeminiProvider(client)
	log.Info().Msg("connection successful - Gemini client initialized")

	if err := auth.ValidateAPIKey(ctx, provider); err != nil {
		HandleValidationError(err)
	}
	log.Info().Msg("API key validation complete - ready for operations")

	return provider, apiKey
}
