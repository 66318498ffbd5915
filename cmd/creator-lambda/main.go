// Package main serves the creator session API from AWS Lambda behind API
// Gateway (HTTP API, payload v2).
//
// Sessions live in the memory of a warm execution environment, so clients
// should expect 404 for a session after a cold start.
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/rs/zerolog/log"

	"github.com/fpang/creator-studio/internal/api"
	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/config"
	"github.com/fpang/creator-studio/internal/lambdaboot"
	"github.com/fpang/creator-studio/internal/logging"
	"github.com/fpang/creator-studio/internal/metrics"
	"github.com/fpang/creator-studio/internal/studio"
)

var handler http.Handler

func init() {
	initStart := time.Now()
	logging.InitJSON()
	metrics.SetService("creator-lambda")

	cfg, err := config.Load(logging.EnvOrDefault("CREATOR_CONFIG", ""))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.SetLevel(cfg.LogLevel)

	ctx := context.Background()
	clients := lambdaboot.InitAWS(ctx)
	apiKey := lambdaboot.LoadGeminiKey(ctx, clients.SSM, cfg.SSMAPIKeyParam)

	client, err := chat.NewGeminiClient(ctx, apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	opts := studio.Options{
		Policy:           cfg.ModelPolicy(),
		Poll:             cfg.PollOptions(),
		TranslateWorkers: cfg.TranslateWorkers,
	}
	if pub := lambdaboot.InitShare(clients.Config, cfg.Share, apiKey); pub != nil {
		opts.Publisher = pub
	}
	handler = api.NewServer(chat.NewGeminiProvider(client), opts).Handler()

	startup := lambdaboot.StartupLog("creator-lambda", initStart).
		SSMParam("geminiKey", cfg.SSMAPIKeyParam).
		Model("reasoning", opts.Policy.Reasoning).
		Model("fast", opts.Policy.Fast).
		Model("local", opts.Policy.Local).
		Model("image", opts.Policy.Image).
		Model("video", opts.Policy.Video).
		Feature("share", opts.Publisher != nil)
	if cfg.Share.Bucket != "" {
		startup = startup.S3Bucket("share", cfg.Share.Bucket)
	}
	startup.Log()
}

func main() {
	adapter := httpadapter.NewV2(handler)
	lambda.Start(adapter.ProxyWithContext)
}
