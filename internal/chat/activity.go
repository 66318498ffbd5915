package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/assets"
	"github.com/fpang/creator-studio/internal/brand"
)

// BuildActivitySummaryRequest builds the feed summarization call. Callers
// must not send a blank feed; SummarizeActivity enforces that.
func BuildActivitySummaryRequest(policy ModelPolicy, feed string) Request {
	policy = policy.orDefault()
	return Request{
		Capability: CapabilityActivitySummary,
		Model:      policy.Fast,
		Parts:      []*genai.Part{{Text: assets.RenderActivitySummaryPrompt(strings.TrimSpace(feed))}},
		Config:     jsonConfig(ActivitySummarySchema),
	}
}

// SummarizeActivity distills a pasted activity feed into interests,
// influencers, vibe, and a summary. A blank feed returns ErrEmptyFeed
// without calling the provider.
func SummarizeActivity(ctx context.Context, p Provider, policy ModelPolicy, feed string) (brand.ActivitySummary, error) {
	if strings.TrimSpace(feed) == "" {
		return brand.ActivitySummary{}, ErrEmptyFeed
	}
	req := BuildActivitySummaryRequest(policy, feed)
	log.Info().Int("feed_length", len(feed)).Msg("Summarizing activity feed...")

	resp, err := generate(ctx, p, req)
	if err != nil {
		return brand.ActivitySummary{}, err
	}

	summary := decodeJSON(req.Capability, resp, brand.ActivitySummary{})
	summary.RecentInterests = nonNil(summary.RecentInterests)
	summary.TopAccountsInfluencing = nonNil(summary.TopAccountsInfluencing)

	log.Info().
		Int("interests", len(summary.RecentInterests)).
		Str("vibe", summary.OverallVibe).
		Msg("Activity summary complete")
	return summary, nil
}
