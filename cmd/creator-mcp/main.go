// Command creator-mcp serves the creator capabilities as Model Context
// Protocol tools over stdio.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/fpang/creator-studio/internal/auth"
	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/config"
	"github.com/fpang/creator-studio/internal/logging"
)

// version is overridden at build time with -ldflags.
var version = "dev"

func main() {
	// stdout carries the protocol, so logs go to stderr as JSON.
	logging.InitJSON()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("CREATOR_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.SetLevel(cfg.LogLevel)

	apiKey, err := auth.GetAPIKey(ctx, nil, "")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get API key")
	}
	client, err := chat.NewGeminiClient(ctx, apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	policy := cfg.ModelPolicy()
	logging.NewStartupLogger("creator-mcp").
		Version(version).
		Model("reasoning", policy.Reasoning).
		Model("fast", policy.Fast).
		Model("video", policy.Video).
		Log()

	server := newServer(chat.NewGeminiProvider(client), policy, cfg.PollOptions(), version)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
	log.Info().Msg("MCP server stopped")
}
