package chat

import (
	"context"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/assets"
	"github.com/fpang/creator-studio/internal/brand"
)

// BuildBriefingRequest builds the strategic creator briefing call.
func BuildBriefingRequest(policy ModelPolicy, profile *brand.BrandProfile, voice brand.VoiceAnalysis) Request {
	policy = policy.orDefault()
	prompt := assets.RenderBriefingPrompt(assets.BriefingData{
		Name:             profile.Name,
		Description:      profile.Description,
		Locality:         profile.Location.String(),
		VoiceDescription: voice.VoiceDescription,
		Themes:           voice.CommonThemes,
	})
	return Request{
		Capability: CapabilityBriefing,
		Model:      policy.Reasoning,
		Parts:      []*genai.Part{{Text: prompt}},
		Config:     jsonConfig(BriefingSchema, googleSearch()),
	}
}

// StrategicBriefing synthesizes a high-level strategy for the creator.
func StrategicBriefing(ctx context.Context, p Provider, policy ModelPolicy, profile *brand.BrandProfile, voice brand.VoiceAnalysis) (brand.StrategicBriefing, error) {
	req := BuildBriefingRequest(policy, profile, voice)
	log.Info().Str("brand", profile.Name).Msg("Generating strategic briefing...")

	resp, err := generate(ctx, p, req)
	if err != nil {
		return brand.StrategicBriefing{}, err
	}

	briefing := decodeJSON(req.Capability, resp, brand.StrategicBriefing{})
	briefing.KeyGoals = nonNil(briefing.KeyGoals)
	log.Info().Int("goals", len(briefing.KeyGoals)).Msg("Strategic briefing complete")
	return briefing, nil
}
