package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/brand"
	"github.com/fpang/creator-studio/internal/jsonutil"
	"github.com/fpang/creator-studio/internal/metrics"
)

// Capability names one kind of model call. It tags logs and the
// Capability metric dimension.
type Capability string

const (
	CapabilityVoiceAnalysis   Capability = "voice_analysis"
	CapabilityTrends          Capability = "trends"
	CapabilityBriefing        Capability = "briefing"
	CapabilitySuggestions     Capability = "suggestions"
	CapabilityTranslate       Capability = "translate"
	CapabilityActivitySummary Capability = "activity_summary"
	CapabilityChat            Capability = "chat"
	CapabilityImage           Capability = "image"
	CapabilityVideo           Capability = "video"
)

const jsonMIMEType = "application/json"

// Request is a fully built content call: which model, what to send, and
// how the response must be shaped. Builders return it without touching the
// network.
type Request struct {
	Capability Capability
	Model      string
	Parts      []*genai.Part
	Config     *genai.GenerateContentConfig
}

// Prompt returns the text of the first text part.
func (r Request) Prompt() string {
	for _, part := range r.Parts {
		if part != nil && part.Text != "" {
			return part.Text
		}
	}
	return ""
}

// Contents wraps the parts as a single user turn.
func (r Request) Contents() []*genai.Content {
	return []*genai.Content{{Role: string(genai.RoleUser), Parts: r.Parts}}
}

func googleSearch() *genai.Tool { return &genai.Tool{GoogleSearch: &genai.GoogleSearch{}} }

func googleMaps() *genai.Tool { return &genai.Tool{GoogleMaps: &genai.GoogleMaps{}} }

// jsonConfig asks for structured output matching schema, with web search grounding.
func jsonConfig(schema *genai.Schema, tools ...*genai.Tool) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Tools:            tools,
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   schema,
	}
}

// referenceParts attaches the profile's reference images as inline parts.
func referenceParts(images []brand.ReferenceImage) []*genai.Part {
	parts := make([]*genai.Part, 0, len(images))
	for _, img := range images {
		if len(img.Data) == 0 {
			continue
		}
		mimeType := img.MIMEType
		if mimeType == "" {
			mimeType = "image/png"
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: img.Data}})
	}
	return parts
}

// generate sends a built request.
func generate(ctx context.Context, p Provider, req Request) (*genai.GenerateContentResponse, error) {
	return generateContents(ctx, p, req.Capability, req.Model, req.Contents(), req.Config)
}

// generateContents performs one GenerateContent call, timing it and
// emitting latency, token, and error metrics under the capability dimension.
func generateContents(ctx context.Context, p Provider, capability Capability, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	log.Debug().
		Str("capability", string(capability)).
		Str("model", model).
		Int("turns", len(contents)).
		Msg("Starting Gemini API call")

	callStart := time.Now()
	resp, err := p.GenerateContent(ctx, model, contents, config)
	duration := time.Since(callStart)

	m := metrics.New().
		Dimension("Capability", string(capability)).
		Duration("GeminiApiLatencyMs", duration).
		Count("GeminiApiCalls").
		Property("model", model)
	if err == nil && resp != nil && resp.UsageMetadata != nil {
		m.Metric("GeminiInputTokens", float64(resp.UsageMetadata.PromptTokenCount), metrics.UnitCount)
		m.Metric("GeminiOutputTokens", float64(resp.UsageMetadata.CandidatesTokenCount), metrics.UnitCount)
	}
	if err != nil || resp == nil {
		m.Count("GeminiApiErrors")
	}
	m.Flush()

	if err != nil {
		log.Error().Err(err).
			Str("capability", string(capability)).
			Str("model", model).
			Dur("duration", duration).
			Msg("Gemini API call failed")
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return nil, ErrEmptyResponse
	}

	log.Debug().
		Str("capability", string(capability)).
		Int("response_length", len(resp.Text())).
		Dur("duration", duration).
		Msg("Gemini API response received")
	return resp, nil
}

// decodeJSON leniently decodes a structured response, falling back to
// fallback on an empty or malformed payload. The outcome is recorded as a
// metric so silent degradations remain visible.
func decodeJSON[T any](capability Capability, resp *genai.GenerateContentResponse, fallback T) T {
	result, status := jsonutil.DecodeLenient(resp.Text(), fallback)
	metrics.New().
		Dimension("Capability", string(capability)).
		Dimension("Outcome", status.String()).
		Count("GeminiDecodes").
		Flush()
	if status != jsonutil.Decoded {
		log.Warn().
			Str("capability", string(capability)).
			Stringer("status", status).
			Msg("Using empty default for structured response")
	}
	return result
}
