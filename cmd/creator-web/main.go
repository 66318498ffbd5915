package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/creator-studio/internal/api"
	"github.com/fpang/creator-studio/internal/auth"
	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/config"
	"github.com/fpang/creator-studio/internal/lambdaboot"
	"github.com/fpang/creator-studio/internal/logging"
	"github.com/fpang/creator-studio/internal/studio"
)

// CLI flags
var (
	portFlag   int
	configFlag string
	shareFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "creator-web",
	Short: "Local JSON API for creator sessions",
	Long: `Creator Web starts a local HTTP server exposing creator sessions:
bootstrap a brand profile, refresh with an activity feed, chat with the
strategist, and generate translations, posters and videos.

Examples:
  creator-web
  creator-web --port 9090
  creator-web --share   # publish media to the configured S3 bucket`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().IntVar(&portFlag, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.Flags().StringVar(&configFlag, "config", "", "Path to config.yaml or its directory")
	rootCmd.Flags().BoolVar(&shareFlag, "share", false, "Publish generated media to the configured S3 bucket")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, args []string) {
	initStart := time.Now()
	logging.Init()

	cfg, err := config.Load(configFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.SetLevel(cfg.LogLevel)
	port := cfg.HTTP.Port
	if portFlag > 0 {
		port = portFlag
	}

	ctx := context.Background()
	apiKey, err := auth.GetAPIKey(ctx, nil, "")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get API key")
	}
	client, err := chat.NewGeminiClient(ctx, apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}
	provider := chat.NewGeminiProvider(client)
	if err := auth.ValidateAPIKey(ctx, provider); err != nil {
		log.Fatal().Err(err).Msg("Invalid API key")
	}
	log.Info().Msg("API key validated")

	opts := studio.Options{
		Policy:           cfg.ModelPolicy(),
		Poll:             cfg.PollOptions(),
		TranslateWorkers: cfg.TranslateWorkers,
	}
	if shareFlag {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load AWS config")
		}
		if pub := lambdaboot.InitShare(awsCfg, cfg.Share, apiKey); pub != nil {
			opts.Publisher = pub
		}
	}

	server := api.NewServer(provider, opts)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("Shutdown did not complete cleanly")
		}
	}()

	lambdaboot.StartupLog("creator-web", initStart).
		Model("reasoning", opts.Policy.Reasoning).
		Model("fast", opts.Policy.Fast).
		Model("video", opts.Policy.Video).
		Feature("share", opts.Publisher != nil).
		Config("port", fmt.Sprint(port)).
		Log()
	fmt.Printf("\n  Creator API: http://localhost:%d/api/health\n\n", port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
