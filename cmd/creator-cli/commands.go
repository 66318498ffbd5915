package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/auth"
	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/cli"
	"github.com/fpang/creator-studio/internal/config"
	"github.com/fpang/creator-studio/internal/logging"
	"github.com/fpang/creator-studio/internal/media"
	"github.com/fpang/creator-studio/internal/studio"
)

var (
	feedFileFlag  string
	textFlag      string
	langFlags     []string
	promptFlag    string
	portraitFlag  bool
	outFlag       string
	languagesFlag []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the brand voice",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := buildProfile(cmd)
		if err != nil {
			return err
		}
		a := setup(cmd.Context())
		voice, err := chat.AnalyzeVoice(cmd.Context(), a.provider, a.policy, profile)
		if err != nil {
			return err
		}
		cli.PrintVoice(cmd.OutOrStdout(), voice)
		return nil
	},
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Discover city, state, national and genre trends",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := buildProfile(cmd)
		if err != nil {
			return err
		}
		a := setup(cmd.Context())
		trends, err := chat.FetchTrends(cmd.Context(), a.provider, a.policy, profile)
		if err != nil {
			return err
		}
		cli.PrintTrends(cmd.OutOrStdout(), trends)
		return nil
	},
}

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Write a strategic briefing for the creator",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := buildProfile(cmd)
		if err != nil {
			return err
		}
		a := setup(cmd.Context())
		voice, err := chat.AnalyzeVoice(cmd.Context(), a.provider, a.policy, profile)
		if err != nil {
			return err
		}
		briefing, err := chat.StrategicBriefing(cmd.Context(), a.provider, a.policy, profile, voice)
		if err != nil {
			return err
		}
		cli.PrintBriefing(cmd.OutOrStdout(), briefing)
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Bootstrap a session and print today's post suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := buildProfile(cmd)
		if err != nil {
			return err
		}
		a := setup(cmd.Context())
		session := a.session()
		defer session.Close()

		if err := session.Bootstrap(cmd.Context(), profile); err != nil {
			return err
		}
		snap := session.Snapshot()
		out := cmd.OutOrStdout()
		cli.PrintSuggestions(out, snap.Suggestions)
		cli.PrintSources(out, snap.Sources)

		if len(languagesFlag) > 0 && len(snap.Suggestions) > 0 {
			fmt.Fprintln(out, "\nTranslations of [1]")
			results, err := session.TranslateAll(cmd.Context(), snap.Suggestions[0].ID, "", languagesFlag)
			cli.PrintTranslations(out, results)
			if err != nil {
				log.Warn().Err(err).Msg("Some translations failed")
			}
		}
		return nil
	},
}

var pulseCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Refresh suggestions around a pasted activity feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		feed, err := os.ReadFile(feedFileFlag)
		if err != nil {
			return fmt.Errorf("failed to read feed: %w", err)
		}
		profile, err := buildProfile(cmd)
		if err != nil {
			return err
		}
		a := setup(cmd.Context())
		session := a.session()
		defer session.Close()

		if err := session.Bootstrap(cmd.Context(), profile); err != nil {
			return err
		}
		result, err := session.RefreshWithPulse(cmd.Context(), string(feed))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Pulse: %s\n", result.Summary.SummaryText)
		cli.PrintSuggestions(out, result.Suggestions)
		cli.PrintSources(out, result.Sources)
		return nil
	},
}

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate text into one or more Indian languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(textFlag) == "" || len(langFlags) == 0 {
			return fmt.Errorf("--text and --lang are required")
		}
		a := setup(cmd.Context())
		results := make(map[string]string, len(langFlags))
		for _, lang := range langFlags {
			text, err := chat.Translate(cmd.Context(), a.provider, a.policy, textFlag, lang)
			if err != nil {
				return fmt.Errorf("%s: %w", lang, err)
			}
			results[lang] = text
		}
		cli.PrintTranslations(cmd.OutOrStdout(), results)
		return nil
	},
}

var posterCmd = &cobra.Command{
	Use:   "poster",
	Short: "Generate a square poster image",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(promptFlag) == "" {
			return chat.ErrEmptyPrompt
		}
		a := setup(cmd.Context())
		dataURI, err := chat.GenerateImage(cmd.Context(), a.provider, a.policy, promptFlag)
		if err != nil {
			return err
		}
		_, data, err := media.ParseDataURI(dataURI)
		if err != nil {
			return err
		}
		path := outFlag
		if path == "" {
			path = "poster.png"
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write poster: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Poster saved to %s\n", path)
		return nil
	},
}

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Generate a short video clip",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(promptFlag) == "" {
			return chat.ErrEmptyPrompt
		}
		a := setup(cmd.Context())
		aspect := chat.AspectLandscape
		if portraitFlag {
			aspect = chat.AspectPortrait
		}

		fmt.Fprintln(cmd.ErrOrStderr(), "Generating video, this can take several minutes...")
		result, err := chat.GenerateVideo(cmd.Context(), a.provider, a.policy, promptFlag, aspect, a.cfg.PollOptions())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Video ready after %d polls (%s)\n", result.Polls, cli.FormatDurationShort(result.Elapsed))
		if outFlag == "" {
			fmt.Fprintln(out, result.URI)
			return nil
		}
		if err := download(cmd, result.URI, a.apiKey, outFlag); err != nil {
			return err
		}
		fmt.Fprintf(out, "Video saved to %s\n", outFlag)
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the content strategist",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := buildProfile(cmd)
		if err != nil {
			return err
		}
		a := setup(cmd.Context())
		session := a.session()
		defer session.Close()

		if err := session.Bootstrap(cmd.Context(), profile); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, m := range session.Transcript() {
			fmt.Fprintf(out, "\n%s\n", m.Text)
		}

		prompter := cli.NewPrompter(cmd.InOrStdin(), out)
		for {
			line, ok := prompter.Line("\n> ")
			if !ok || cli.IsExit(line) {
				return nil
			}
			if line == "" {
				continue
			}
			reply, err := session.Chat(cmd.Context(), line)
			if err != nil {
				log.Error().Err(err).Msg("Chat turn failed")
				continue
			}
			fmt.Fprintf(out, "\n%s\n", reply)
		}
	},
}

var validateKeyCmd = &cobra.Command{
	Use:   "validate-key",
	Short: "Check that the Gemini API key works",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.Init()
		cfg, err := config.Load(configFlag)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		apiKey, err := auth.GetAPIKey(ctx, parameterStore(ctx), cfg.SSMAPIKeyParam)
		if err == nil {
			var client *genai.Client
			client, err = chat.NewGeminiClient(ctx, apiKey)
			if err == nil {
				err = auth.ValidateAPIKey(ctx, chat.NewGeminiProvider(client))
			}
		} else {
			err = auth.ClassifyError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.ValidationMessage(err))
		return err
	},
}

func init() {
	pulseCmd.Flags().StringVar(&feedFileFlag, "feed-file", "", "File with the pasted activity feed")
	_ = pulseCmd.MarkFlagRequired("feed-file")

	suggestCmd.Flags().StringSliceVar(&languagesFlag, "translate", nil, "Also translate the first suggestion into these languages")

	translateCmd.Flags().StringVar(&textFlag, "text", "", "Text to translate")
	translateCmd.Flags().StringSliceVar(&langFlags, "lang", nil, "Target language (repeatable or comma separated)")

	for _, c := range []*cobra.Command{posterCmd, videoCmd} {
		c.Flags().StringVar(&promptFlag, "prompt", "", "Generation prompt")
		c.Flags().StringVarP(&outFlag, "out", "o", "", "Write the result to this file")
	}
	videoCmd.Flags().BoolVar(&portraitFlag, "portrait", false, "Generate 9:16 instead of 16:9")
}

func (a *app) session() *studio.Session {
	return studio.New(a.provider, studio.Options{
		Policy:           a.policy,
		Poll:             a.cfg.PollOptions(),
		TranslateWorkers: a.cfg.TranslateWorkers,
	})
}

func download(cmd *cobra.Command, uri, apiKey, path string) error {
	src, err := chat.AuthorizedVideoURL(uri, apiKey)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, src, nil)
	if err != nil {
		return err
	}
	resp, err := (&http.Client{Timeout: 5 * time.Minute}).Do(req)
	if err != nil {
		return fmt.Errorf("video download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("video download: unexpected status %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
