package chat

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/assets"
	"github.com/fpang/creator-studio/internal/brand"
)

// SuggestionsResult is a batch of post ideas with the web sources that
// grounded them.
type SuggestionsResult struct {
	Suggestions []brand.PostSuggestion  `json:"suggestions"`
	Sources     []brand.GroundingSource `json:"sources"`
}

type suggestionsPayload struct {
	Suggestions []brand.PostSuggestion `json:"suggestions"`
}

// BuildSuggestionsRequest builds the daily post ideas call. The local
// language follows the creator's state. When the profile carries an
// activity summary (or a raw feed) a recent pulse block is appended so the
// ideas are recalibrated around it.
func BuildSuggestionsRequest(policy ModelPolicy, profile *brand.BrandProfile, voice brand.VoiceAnalysis) Request {
	policy = policy.orDefault()

	city := profile.City()
	if city == "" {
		city = "India"
	}
	data := assets.SuggestionsData{
		City:             city,
		Platform:         string(profile.PrimaryPlatform),
		LocalLanguage:    brand.LocalLanguageForState(profile.State()),
		VoiceDescription: voice.VoiceDescription,
		StyleKeywords:    voice.StyleKeywords,
	}
	switch {
	case profile.ActivitySummary != nil:
		data.HasPulse = true
		data.Interests = profile.ActivitySummary.RecentInterests
		data.Influencers = profile.ActivitySummary.TopAccountsInfluencing
		data.Vibe = profile.ActivitySummary.OverallVibe
		data.PulseSummary = profile.ActivitySummary.SummaryText
	case strings.TrimSpace(profile.RecentActivityFeed) != "":
		data.HasPulse = true
		data.PulseSummary = strings.TrimSpace(profile.RecentActivityFeed)
	}

	parts := []*genai.Part{{Text: assets.RenderSuggestionsPrompt(data)}}
	parts = append(parts, referenceParts(profile.ReferenceImages)...)

	return Request{
		Capability: CapabilitySuggestions,
		Model:      policy.Reasoning,
		Parts:      parts,
		Config:     jsonConfig(SuggestionsSchema, googleSearch()),
	}
}

// DailySuggestions generates three post ideas with tone variants.
func DailySuggestions(ctx context.Context, p Provider, policy ModelPolicy, profile *brand.BrandProfile, voice brand.VoiceAnalysis) (SuggestionsResult, error) {
	req := BuildSuggestionsRequest(policy, profile, voice)
	log.Info().
		Str("city", profile.City()).
		Bool("pulse", profile.ActivitySummary != nil || profile.RecentActivityFeed != "").
		Msg("Generating daily suggestions...")

	resp, err := generate(ctx, p, req)
	if err != nil {
		return SuggestionsResult{}, err
	}

	payload := decodeJSON(req.Capability, resp, suggestionsPayload{})
	result := SuggestionsResult{
		Suggestions: normalizeSuggestions(payload.Suggestions, profile.PrimaryPlatform),
		Sources:     GroundingSources(resp),
	}

	log.Info().
		Int("suggestions", len(result.Suggestions)).
		Int("sources", len(result.Sources)).
		Msg("Daily suggestions complete")
	return result, nil
}

// normalizeSuggestions makes decoded suggestions safe to render: every
// suggestion gets an ID and a platform, and a data graphic whose labels and
// values cannot be paired into a known chart kind is dropped.
func normalizeSuggestions(in []brand.PostSuggestion, platform brand.Platform) []brand.PostSuggestion {
	out := make([]brand.PostSuggestion, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s.ID) == "" {
			s.ID = uuid.NewString()
		}
		if s.Platform == "" {
			s.Platform = platform
		}
		if s.DataGraphic != nil && !s.DataGraphic.Normalize() {
			log.Debug().Str("id", s.ID).Msg("Dropping unrenderable data graphic")
			s.DataGraphic = nil
		}
		s.SuggestedHashtags = nonNil(s.SuggestedHashtags)
		out = append(out, s)
	}
	return out
}
