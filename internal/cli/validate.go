package cli

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/fpang/creator-studio/internal/auth"
)

// HandleValidationError processes auth.ValidationError and exits with appropriate messaging.
func HandleValidationError(err error) {
	var validationErr *auth.ValidationError
	if errors.As(err, &validationErr) {
		switch validationErr.Type {
		case auth.ErrTypeNoKey:
			log.Fatal().Msg("No API key configured. Set GEMINI_API_KEY or store it in SSM Parameter Store")
		case auth.ErrTypeInvalidKey:
			log.Fatal().Err(err).Msg("Invalid API key. Please check your API key and try again")
		case auth.ErrTypeNetworkError:
			log.Fatal().Err(err).Msg("Network error. Please check your internet connection")
		case auth.ErrTypeQuotaExceeded:
			log.Fatal().Err(err).Msg("API quota exceeded. Please try again later or check your usage limits")
		default:
			log.Fatal().Err(err).Msg("API key validation failed")
		}
	} else {
		log.Fatal().Err(err).Msg("unexpected error during API key validation")
	}
	os.Exit(1)
}

// ValidationMessage returns the one-line explanation shown by validate-key.
func ValidationMessage(err error) string {
	if err == nil {
		return "API key is valid"
	}
	var validationErr *auth.ValidationError
	if !errors.As(err, &validationErr) {
		return "API key validation failed: " + err.Error()
	}
	switch validationErr.Type {
	case auth.ErrTypeNoKey:
		return "No API key configured"
	case auth.ErrTypeInvalidKey:
		return "API key is invalid or revoked"
	case auth.ErrTypeNetworkError:
		return "Could not reach the Gemini API"
	case auth.ErrTypeQuotaExceeded:
		return "API quota exceeded"
	}
	return "API key validation failed: " + validationErr.Message
}
