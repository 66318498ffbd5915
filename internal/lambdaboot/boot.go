// Package lambdaboot provides the cold-start bootstrap shared by the Lambda
// and web binaries: AWS config, the Gemini key, optional S3 sharing, and
// the startup log line.
package lambdaboot

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"

	"github.com/fpang/creator-studio/internal/auth"
	"github.com/fpang/creator-studio/internal/config"
	"github.com/fpang/creator-studio/internal/logging"
	"github.com/fpang/creator-studio/internal/share"
)

// AWSClients holds the core AWS SDK clients.
type AWSClients struct {
	Config aws.Config
	SSM    *ssm.Client
}

// InitAWS loads the default AWS config. Fatals on error.
func InitAWS(ctx context.Context) AWSClients {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS config")
	}
	log.Debug().Str("region", cfg.Region).Msg("AWS config loaded")
	return AWSClients{
		Config: cfg,
		SSM:    ssm.NewFromConfig(cfg),
	}
}

// LoadGeminiKey resolves the API key from GEMINI_API_KEY or SSM. Fatals
// when neither yields a key.
func LoadGeminiKey(ctx context.Context, store auth.ParameterStore, param string) string {
	key, err := auth.GetAPIKey(ctx, store, param)
	if err != nil {
		log.Fatal().Err(err).Str("param", param).Msg("Failed to load Gemini API key")
	}
	return key
}

// InitShare returns an S3 publisher when a share bucket is configured, or
// nil with a warning otherwise.
func InitShare(cfg aws.Config, sc config.ShareConfig, apiKey string) *share.Publisher {
	if sc.Bucket == "" {
		log.Warn().Msg("Share bucket not set, generated media stays provider-hosted")
		return nil
	}
	return share.NewPublisher(s3.NewFromConfig(cfg), sc.Bucket, sc.Prefix, sc.PresignExpiry, apiKey)
}

// StartupLog is a convenience wrapper for the startup logger.
func StartupLog(name string, initStart time.Time) *logging.StartupLogger {
	return logging.NewStartupLogger(name).InitDuration(time.Since(initStart))
}
