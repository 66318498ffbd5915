// Package config loads runtime settings from an optional .env file, an
// optional config.yaml, and CREATOR_* environment overrides, in that order
// of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/fpang/creator-studio/internal/chat"
)

const (
	EnvFile    = ".env"
	ConfigFile = "config.yaml"
)

// DefaultSSMAPIKeyParam is the Parameter Store path holding the Gemini key.
const DefaultSSMAPIKeyParam = "/creator-studio/prod/gemini-api-key"

// Config is the full runtime configuration.
type Config struct {
	LogLevel         string      `yaml:"log_level"`
	Models           Models      `yaml:"models"`
	Video            VideoConfig `yaml:"video"`
	TranslateWorkers int         `yaml:"translate_workers"`
	HTTP             HTTPConfig  `yaml:"http"`
	Share            ShareConfig `yaml:"share"`
	SSMAPIKeyParam   string      `yaml:"ssm_api_key_param"`
}

// Models overrides the model tier policy. Blank fields keep the built-in tier.
type Models struct {
	Reasoning string `yaml:"reasoning"`
	Fast      string `yaml:"fast"`
	Local     string `yaml:"local"`
	Translate string `yaml:"translate"`
	Image     string `yaml:"image"`
	Video     string `yaml:"video"`
}

// VideoConfig bounds the video generation poll loop.
type VideoConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxAttempts  int           `yaml:"max_attempts"`
	MaxDuration  time.Duration `yaml:"max_duration"`
}

// HTTPConfig configures the web server.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// ShareConfig enables publishing generated media to S3. An empty bucket
// disables sharing.
type ShareConfig struct {
	Bucket        string        `yaml:"bucket"`
	Prefix        string        `yaml:"prefix"`
	PresignExpiry time.Duration `yaml:"presign_expiry"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Video: VideoConfig{
			PollInterval: 10 * time.Second,
			MaxAttempts:  60,
			MaxDuration:  10 * time.Minute,
		},
		TranslateWorkers: 4,
		HTTP:             HTTPConfig{Port: 8080},
		Share: ShareConfig{
			Prefix:        "creator-studio",
			PresignExpiry: 24 * time.Hour,
		},
		SSMAPIKeyParam: DefaultSSMAPIKeyParam,
	}
}

// Load resolves the configuration. path may name a config file, a
// directory containing config.yaml, or be empty to search upward from the
// working directory. A missing config.yaml is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := resolve(path)
	if err != nil {
		return cfg, err
	}

	// .env is optional and never overrides variables already set.
	envPath := filepath.Join(filepath.Dir(file), EnvFile)
	if file == "" {
		envPath = EnvFile
	}
	if err := godotenv.Load(envPath); err == nil {
		log.Debug().Str("file", envPath).Msg("Loaded environment file")
	}

	if file != "" {
		data, err := os.ReadFile(file)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", file, err)
			}
			log.Debug().Str("file", file).Msg("Loaded configuration file")
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("failed to read %s: %w", file, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

func resolve(path string) (string, error) {
	if path == "" {
		if base := findBase(); base != "" {
			return filepath.Join(base, ConfigFile), nil
		}
		return "", nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("config path: %w", err)
	}
	if info.IsDir() {
		return filepath.Join(path, ConfigFile), nil
	}
	return path, nil
}

// findBase walks up from the working directory to the first directory
// containing config.yaml.
func findBase() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, ConfigFile)); err == nil && !info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func applyEnv(cfg *Config) error {
	str := func(env string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	str("CREATOR_LOG_LEVEL", &cfg.LogLevel)
	str("CREATOR_MODEL_REASONING", &cfg.Models.Reasoning)
	str("CREATOR_MODEL_FAST", &cfg.Models.Fast)
	str("CREATOR_MODEL_LOCAL", &cfg.Models.Local)
	str("CREATOR_MODEL_TRANSLATE", &cfg.Models.Translate)
	str("CREATOR_MODEL_IMAGE", &cfg.Models.Image)
	str("CREATOR_MODEL_VIDEO", &cfg.Models.Video)
	str("CREATOR_SHARE_BUCKET", &cfg.Share.Bucket)
	str("CREATOR_SHARE_PREFIX", &cfg.Share.Prefix)
	str("SSM_API_KEY_PARAM", &cfg.SSMAPIKeyParam)

	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"CREATOR_VIDEO_POLL_INTERVAL", &cfg.Video.PollInterval},
		{"CREATOR_VIDEO_MAX_DURATION", &cfg.Video.MaxDuration},
		{"CREATOR_SHARE_PRESIGN_EXPIRY", &cfg.Share.PresignExpiry},
	}
	for _, d := range durations {
		if v := os.Getenv(d.env); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", d.env, err)
			}
			*d.dst = parsed
		}
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"CREATOR_VIDEO_MAX_ATTEMPTS", &cfg.Video.MaxAttempts},
		{"CREATOR_TRANSLATE_WORKERS", &cfg.TranslateWorkers},
		{"PORT", &cfg.HTTP.Port},
		{"CREATOR_HTTP_PORT", &cfg.HTTP.Port},
	}
	for _, i := range ints {
		if v := os.Getenv(i.env); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", i.env, err)
			}
			*i.dst = parsed
		}
	}
	return nil
}

// fillDefaults restores built-in values for anything a config file zeroed.
func (c *Config) fillDefaults() {
	def := Default()
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Video.PollInterval <= 0 {
		c.Video.PollInterval = def.Video.PollInterval
	}
	if c.Video.MaxAttempts <= 0 {
		c.Video.MaxAttempts = def.Video.MaxAttempts
	}
	if c.Video.MaxDuration <= 0 {
		c.Video.MaxDuration = def.Video.MaxDuration
	}
	if c.TranslateWorkers <= 0 {
		c.TranslateWorkers = def.TranslateWorkers
	}
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = def.HTTP.Port
	}
	if c.Share.PresignExpiry <= 0 {
		c.Share.PresignExpiry = def.Share.PresignExpiry
	}
	if c.SSMAPIKeyParam == "" {
		c.SSMAPIKeyParam = def.SSMAPIKeyParam
	}
}

// ModelPolicy maps the model overrides onto the tier policy. Blank tiers
// keep their built-in model.
func (c Config) ModelPolicy() chat.ModelPolicy {
	return chat.ModelPolicy{
		Reasoning: c.Models.Reasoning,
		Fast:      c.Models.Fast,
		Local:     c.Models.Local,
		Translate: c.Models.Translate,
		Image:     c.Models.Image,
		Video:     c.Models.Video,
	}.Merge(chat.DefaultModelPolicy())
}

// PollOptions returns the video poll bounds.
func (c Config) PollOptions() chat.PollOptions {
	return chat.PollOptions{
		Interval:    c.Video.PollInterval,
		MaxAttempts: c.Video.MaxAttempts,
		MaxDuration: c.Video.MaxDuration,
	}
}
