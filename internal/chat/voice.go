package chat

import (
	"context"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/assets"
	"github.com/fpang/creator-studio/internal/brand"
)

// BuildVoiceAnalysisRequest asks the reasoning tier to infer brand voice,
// recurring themes, and Indian aesthetic style keywords from the profile
// and its reference images.
func BuildVoiceAnalysisRequest(policy ModelPolicy, profile *brand.BrandProfile) Request {
	policy = policy.orDefault()
	prompt := assets.RenderVoiceAnalysisPrompt(assets.VoiceAnalysisData{
		Name:         profile.Name,
		Platform:     string(profile.PrimaryPlatform),
		SocialLinks:  profile.SocialLinksSummary(),
		Description:  profile.Description,
		VisualStyles: profile.VisualStyles,
		PastPosts:    profile.PastPosts,
		ImageCount:   len(referenceParts(profile.ReferenceImages)),
	})

	parts := []*genai.Part{{Text: prompt}}
	parts = append(parts, referenceParts(profile.ReferenceImages)...)

	return Request{
		Capability: CapabilityVoiceAnalysis,
		Model:      policy.Reasoning,
		Parts:      parts,
		Config:     jsonConfig(VoiceAnalysisSchema, googleSearch()),
	}
}

// AnalyzeVoice runs the brand voice analysis.
func AnalyzeVoice(ctx context.Context, p Provider, policy ModelPolicy, profile *brand.BrandProfile) (brand.VoiceAnalysis, error) {
	req := BuildVoiceAnalysisRequest(policy, profile)
	log.Info().
		Str("brand", profile.Name).
		Int("reference_images", len(req.Parts)-1).
		Msg("Analyzing brand voice...")

	resp, err := generate(ctx, p, req)
	if err != nil {
		return brand.VoiceAnalysis{}, err
	}

	voice := decodeJSON(req.Capability, resp, brand.VoiceAnalysis{})
	voice.CommonThemes = nonNil(voice.CommonThemes)
	voice.StyleKeywords = nonNil(voice.StyleKeywords)

	log.Info().
		Int("themes", len(voice.CommonThemes)).
		Int("style_keywords", len(voice.StyleKeywords)).
		Msg("Brand voice analysis complete")
	return voice, nil
}

// nonNil replaces a nil slice with an empty one so decoded values always
// serialize as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
