package studio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fpang/creator-studio/internal/brand"
	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/metrics"
)

// Bootstrap validates the profile and runs voice analysis, briefing,
// trends, and suggestions in sequence, then opens the chat session. State
// is replaced only if every step succeeds and nothing superseded the call;
// otherwise the previous state is left intact.
func (s *Session) Bootstrap(ctx context.Context, profile *brand.BrandProfile) error {
	if err := brand.Validate(profile); err != nil {
		return err
	}
	gen, err := s.tag()
	if err != nil {
		return err
	}

	start := time.Now()
	p := *profile
	policy := s.opts.Policy
	log.Info().Str("brand", p.Name).Uint64("generation", gen).Msg("Bootstrapping session...")

	voice, err := chat.AnalyzeVoice(ctx, s.provider, policy, &p)
	if err != nil {
		return fmt.Errorf("voice analysis: %w", err)
	}
	briefing, err := chat.StrategicBriefing(ctx, s.provider, policy, &p, voice)
	if err != nil {
		return fmt.Errorf("strategic briefing: %w", err)
	}
	trends, err := chat.FetchTrends(ctx, s.provider, policy, &p)
	if err != nil {
		return fmt.Errorf("trends: %w", err)
	}
	suggestions, err := chat.DailySuggestions(ctx, s.provider, policy, &p, voice)
	if err != nil {
		return fmt.Errorf("daily suggestions: %w", err)
	}
	setup := chat.ChatConfig(policy, &p, voice)

	err = s.replace(gen, func() {
		s.profile = &p
		s.voice = &voice
		s.briefing = &briefing
		s.trends = &trends
		s.suggestions = suggestions.Suggestions
		s.sources = suggestions.Sources
		s.greeting = setup.Greeting
		s.chat = setup.NewSession(s.provider)
	})

	metrics.New().
		Dimension("Operation", "bootstrap").
		Duration("SessionOperationMs", time.Since(start)).
		Property("stale", errors.Is(err, ErrStale)).
		Flush()
	if err != nil {
		log.Warn().Err(err).Uint64("generation", gen).Msg("Discarding bootstrap result")
		return err
	}

	log.Info().
		Str("brand", p.Name).
		Int("suggestions", len(suggestions.Suggestions)).
		Dur("duration", time.Since(start)).
		Msg("Session bootstrapped")
	return nil
}

// PulseResult is the outcome of a pulse refresh.
type PulseResult struct {
	Summary     brand.ActivitySummary   `json:"summary"`
	Suggestions []brand.PostSuggestion  `json:"suggestions"`
	Sources     []brand.GroundingSource `json:"sources"`
}

// RefreshWithPulse summarizes a pasted activity feed, attaches the summary
// to the profile, and regenerates suggestions around it. A blank feed
// returns chat.ErrEmptyFeed without calling the provider.
func (s *Session) RefreshWithPulse(ctx context.Context, feed string) (PulseResult, error) {
	if strings.TrimSpace(feed) == "" {
		return PulseResult{}, chat.ErrEmptyFeed
	}
	v, err := s.current()
	if err != nil {
		return PulseResult{}, err
	}
	gen := v.generation
	policy := s.opts.Policy

	summary, err := chat.SummarizeActivity(ctx, s.provider, policy, feed)
	if err != nil {
		return PulseResult{}, fmt.Errorf("activity summary: %w", err)
	}

	p := *v.profile
	p.RecentActivityFeed = strings.TrimSpace(feed)
	p.ActivitySummary = &summary

	suggestions, err := chat.DailySuggestions(ctx, s.provider, policy, &p, v.voice)
	if err != nil {
		return PulseResult{}, fmt.Errorf("daily suggestions: %w", err)
	}

	err = s.replace(gen, func() {
		s.profile = &p
		s.suggestions = suggestions.Suggestions
		s.sources = suggestions.Sources
	})
	if err != nil {
		log.Warn().Err(err).Uint64("generation", gen).Msg("Discarding pulse refresh")
		return PulseResult{}, err
	}

	log.Info().Str("vibe", summary.OverallVibe).Int("suggestions", len(suggestions.Suggestions)).Msg("Pulse refresh complete")
	return PulseResult{Summary: summary, Suggestions: suggestions.Suggestions, Sources: suggestions.Sources}, nil
}
