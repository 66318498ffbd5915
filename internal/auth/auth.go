package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// EnvAPIKey is the environment variable that takes precedence over every
// other key source.
const EnvAPIKey = "GEMINI_API_KEY"

// ErrNoAPIKey is returned when no source produced a key.
var ErrNoAPIKey = errors.New("API key not found. Set GEMINI_API_KEY or store it in SSM Parameter Store")

// ParameterStore is the subset of the SSM client used to read the key.
type ParameterStore interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// GetAPIKey retrieves the Gemini API key from available sources.
// Priority order:
//  1. GEMINI_API_KEY environment variable
//  2. The SecureString parameter named by param, when store is non-nil
func GetAPIKey(ctx context.Context, store ParameterStore, param string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		log.Debug().Msg("Using API key from environment variable")
		return key, nil
	}
	if store == nil || param == "" {
		return "", ErrNoAPIKey
	}

	start := time.Now()
	out, err := store.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(param),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		log.Error().Err(err).Str("param", param).Msg("Failed to read API key from SSM")
		return "", fmt.Errorf("failed to read %s from SSM: %w", param, err)
	}
	if out == nil || out.Parameter == nil || strings.TrimSpace(aws.ToString(out.Parameter.Value)) == "" {
		log.Error().Str("param", param).Msg("SSM parameter has no value")
		return "", ErrNoAPIKey
	}

	log.Debug().Str("param", param).Dur("elapsed", time.Since(start)).Msg("Using API key from SSM")
	return strings.TrimSpace(aws.ToString(out.Parameter.Value)), nil
}
