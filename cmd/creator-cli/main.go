package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/creator-studio/internal/auth"
	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/cli"
	"github.com/fpang/creator-studio/internal/config"
	"github.com/fpang/creator-studio/internal/logging"
)

// CLI flags
var (
	configFlag        string
	cityFlag          string
	stateFlag         string
	countryFlag       string
	latFlag           float64
	lngFlag           float64
	photoLocationFlag string
	platformFlag      string
	nameFlag          string
	descriptionFlag   string
	imageFlags        []string
	demoFlag          bool
	ssmFlag           bool
)

var rootCmd = &cobra.Command{
	Use:   "creator-cli",
	Short: "AI content assistant for Indian social media creators",
	Long: `Creator CLI analyzes a creator's brand voice, discovers regional trends,
and drafts daily post suggestions with tone variants, posters, and short
festival videos.

The brand profile comes from flags, or from the built-in demo creator when
--demo is set or no --name is given.

Examples:
  creator-cli suggest --demo --city Pune --state Maharashtra
  creator-cli trends --photo-location ./IMG_2041.jpg
  creator-cli analyze --name "Asha Rao" --description "Fintech explainers" --image feed1.jpg --image feed2.png
  creator-cli translate --text "Happy Onam!" --lang Malayalam
  creator-cli video --prompt "Diyas over the Ganga at dusk" --portrait
  creator-cli chat --demo`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "Path to config.yaml or its directory (default: search upward)")
	pf.StringVar(&cityFlag, "city", "", "City the creator publishes from")
	pf.StringVar(&stateFlag, "state", "", "State the creator publishes from")
	pf.StringVar(&countryFlag, "country", "India", "Country the creator publishes from")
	pf.Float64Var(&latFlag, "lat", 0, "Latitude for hyper-local trends")
	pf.Float64Var(&lngFlag, "lng", 0, "Longitude for hyper-local trends")
	pf.StringVar(&photoLocationFlag, "photo-location", "", "Take coordinates from the EXIF GPS of this photo")
	pf.StringVarP(&platformFlag, "platform", "p", "Instagram", "Primary platform (Facebook, X, LinkedIn, Instagram)")
	pf.StringVar(&nameFlag, "name", "", "Creator or brand name")
	pf.StringVar(&descriptionFlag, "description", "", "Short brand description")
	pf.StringArrayVar(&imageFlags, "image", nil, "Reference image of the creator's feed (repeatable)")
	pf.BoolVar(&demoFlag, "demo", false, "Use the built-in demo creator")
	pf.BoolVar(&ssmFlag, "ssm", false, "Read the API key from SSM Parameter Store when GEMINI_API_KEY is unset")

	rootCmd.AddCommand(
		analyzeCmd, trendsCmd, briefCmd, suggestCmd, pulseCmd,
		translateCmd, posterCmd, videoCmd, chatCmd, validateKeyCmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app is the per-invocation runtime shared by subcommands.
type app struct {
	cfg      config.Config
	policy   chat.ModelPolicy
	provider chat.Provider
	apiKey   string
}

// setup loads configuration and connects to Gemini. It exits fatally on
// failure.
func setup(ctx context.Context) *app {
	logging.Init()

	cfg, err := config.Load(configFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.SetLevel(cfg.LogLevel)

	provider, apiKey := cli.InitProvider(ctx, parameterStore(ctx), cfg.SSMAPIKeyParam)
	return &app{
		cfg:      cfg,
		policy:   cfg.ModelPolicy(),
		provider: provider,
		apiKey:   apiKey,
	}
}

func parameterStore(ctx context.Context) auth.ParameterStore {
	if !ssmFlag {
		return nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("AWS config unavailable, skipping SSM")
		return nil
	}
	return ssm.NewFromConfig(awsCfg)
}
