package chat

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/assets"
	"github.com/fpang/creator-studio/internal/brand"
)

// BuildTrendsRequest builds the trend discovery call. A profile with both
// coordinates selects the local tier, adds maps grounding, and biases
// retrieval to the exact position; otherwise the locality is spelled out as
// text and the reasoning tier is used.
func BuildTrendsRequest(policy ModelPolicy, profile *brand.BrandProfile) Request {
	policy = policy.orDefault()
	loc := profile.Location

	data := assets.TrendsData{Niche: profile.Description}
	config := jsonConfig(RegionalTrendsSchema, googleSearch())
	model := policy.Reasoning

	if loc.HasCoordinates() {
		data.Locality = fmt.Sprintf("coordinates: %s, %s", formatCoord(*loc.Latitude), formatCoord(*loc.Longitude))
		data.Mobility = true
		config.Tools = append(config.Tools, googleMaps())
		config.ToolConfig = &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{
					Latitude:  genai.Ptr(*loc.Latitude),
					Longitude: genai.Ptr(*loc.Longitude),
				},
			},
		}
		model = policy.Local
	} else {
		data.Locality = textLocality(loc)
	}

	return Request{
		Capability: CapabilityTrends,
		Model:      model,
		Parts:      []*genai.Part{{Text: assets.RenderTrendsPrompt(data)}},
		Config:     config,
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func textLocality(loc *brand.Location) string {
	if loc == nil {
		return "India"
	}
	return loc.String()
}

// FetchTrends discovers regional, national, global, and genre trends.
func FetchTrends(ctx context.Context, p Provider, policy ModelPolicy, profile *brand.BrandProfile) (brand.RegionalTrends, error) {
	req := BuildTrendsRequest(policy, profile)
	log.Info().
		Str("model", req.Model).
		Bool("coordinates", profile.Location.HasCoordinates()).
		Msg("Fetching regional trends...")

	resp, err := generate(ctx, p, req)
	if err != nil {
		return brand.RegionalTrends{}, err
	}

	trends := decodeJSON(req.Capability, resp, brand.RegionalTrends{})
	trends.City = nonNil(trends.City)
	trends.State = nonNil(trends.State)
	trends.National = nonNil(trends.National)
	trends.Global = nonNil(trends.Global)
	trends.Genres.Tech = nonNil(trends.Genres.Tech)
	trends.Genres.Lifestyle = nonNil(trends.Genres.Lifestyle)
	trends.Genres.Entertainment = nonNil(trends.Genres.Entertainment)

	log.Info().
		Int("city", len(trends.City)).
		Int("state", len(trends.State)).
		Int("national", len(trends.National)).
		Int("global", len(trends.Global)).
		Msg("Trend discovery complete")
	return trends, nil
}
