package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/brand"
	"github.com/fpang/creator-studio/internal/chat"
)

func testProfile() *brand.BrandProfile {
	return &brand.BrandProfile{
		Name:            "Rakesh Prasad",
		Description:     "Atma Nirbhar tech creator",
		PrimaryPlatform: brand.PlatformInstagram,
		Location:        &brand.Location{City: "Bengaluru", State: "Karnataka", Country: "India"},
		SocialLinks:     map[brand.Platform]string{brand.PlatformX: "https://x.com/rakesh"},
		VisualStyles:    []string{"Cinematic"},
	}
}

func withCoords(p *brand.BrandProfile, lat, lng float64) *brand.BrandProfile {
	p.Location.Latitude = &lat
	p.Location.Longitude = &lng
	return p
}

func TestBuildTrendsRequestWithCoordinates(t *testing.T) {
	req := chat.BuildTrendsRequest(chat.ModelPolicy{}, withCoords(testProfile(), 12.9716, 77.5946))

	assert.Equal(t, chat.CapabilityTrends, req.Capability)
	assert.Equal(t, chat.ModelGemini25Flash, req.Model)
	assert.Contains(t, req.Prompt(), "coordinates: 12.9716, 77.5946")
	assert.Contains(t, req.Prompt(), "5km radius")
	assert.NotContains(t, req.Prompt(), "Bengaluru, Karnataka, India")

	require.Len(t, req.Config.Tools, 2)
	assert.NotNil(t, req.Config.Tools[0].GoogleSearch)
	assert.NotNil(t, req.Config.Tools[1].GoogleMaps)
	require.NotNil(t, req.Config.ToolConfig)
	latLng := req.Config.ToolConfig.RetrievalConfig.LatLng
	assert.InDelta(t, 12.9716, *latLng.Latitude, 1e-9)
	assert.InDelta(t, 77.5946, *latLng.Longitude, 1e-9)
	assert.Same(t, chat.RegionalTrendsSchema, req.Config.ResponseSchema)
	assert.Equal(t, "application/json", req.Config.ResponseMIMEType)
}

func TestBuildTrendsRequestWithoutCoordinates(t *testing.T) {
	req := chat.BuildTrendsRequest(chat.ModelPolicy{}, testProfile())

	assert.Equal(t, chat.ModelGemini3ProPreview, req.Model)
	assert.Contains(t, req.Prompt(), "Bengaluru, Karnataka, India")
	assert.NotContains(t, req.Prompt(), "coordinates:")
	assert.NotContains(t, req.Prompt(), "5km")
	require.Len(t, req.Config.Tools, 1)
	assert.NotNil(t, req.Config.Tools[0].GoogleSearch)
	assert.Nil(t, req.Config.ToolConfig)
}

func TestBuildTrendsRequestOneCoordinateIsText(t *testing.T) {
	p := testProfile()
	lat := 19.07
	p.Location.Latitude = &lat

	req := chat.BuildTrendsRequest(chat.ModelPolicy{}, p)
	assert.NotContains(t, req.Prompt(), "coordinates:")
	assert.Nil(t, req.Config.ToolConfig)
}

func TestBuildVoiceAnalysisRequest(t *testing.T) {
	p := testProfile()
	p.ReferenceImages = []brand.ReferenceImage{
		{MIMEType: "image/jpeg", Data: []byte{1, 2, 3}},
		{Data: []byte{4}},
	}
	req := chat.BuildVoiceAnalysisRequest(chat.ModelPolicy{}, p)

	assert.Equal(t, chat.ModelGemini3ProPreview, req.Model)
	require.Len(t, req.Parts, 3)
	assert.Contains(t, req.Parts[0].Text, `"Atma Nirbhar Bharat" creator`)
	assert.Contains(t, req.Parts[0].Text, "X: https://x.com/rakesh")
	assert.Contains(t, req.Parts[0].Text, "Digital India values")
	assert.Equal(t, "image/jpeg", req.Parts[1].InlineData.MIMEType)
	assert.Equal(t, "image/png", req.Parts[2].InlineData.MIMEType)
	assert.Equal(t, []string{"voiceDescription", "commonThemes", "styleKeywords"}, req.Config.ResponseSchema.Required)
	assert.NotNil(t, req.Config.Tools[0].GoogleSearch)
}

func TestBuildSuggestionsRequest(t *testing.T) {
	voice := brand.VoiceAnalysis{VoiceDescription: "Witty and proud", StyleKeywords: []string{"Rangoli"}}

	req := chat.BuildSuggestionsRequest(chat.ModelPolicy{}, testProfile(), voice)
	prompt := req.Prompt()
	assert.Contains(t, prompt, "suggest 3 social media posts for Bengaluru")
	assert.Contains(t, prompt, `One post MUST focus on "Atma Nirbhar"`)
	assert.Contains(t, prompt, "BOTH English and Kannada")
	assert.Contains(t, prompt, "Witty and proud")
	assert.NotContains(t, prompt, "Recent pulse")
	assert.Same(t, chat.SuggestionsSchema, req.Config.ResponseSchema)

	p := testProfile()
	p.Location.State = "Goa"
	p.ActivitySummary = &brand.ActivitySummary{RecentInterests: []string{"EV startups"}, OverallVibe: "optimistic"}
	prompt = chat.BuildSuggestionsRequest(chat.ModelPolicy{}, p, voice).Prompt()
	assert.Contains(t, prompt, "BOTH English and Hindi")
	assert.Contains(t, prompt, "Recent pulse")
	assert.Contains(t, prompt, "EV startups")
	assert.Contains(t, prompt, "optimistic")
}

func TestSuggestionsSchemaDataGraphic(t *testing.T) {
	item := chat.SuggestionsSchema.Properties["suggestions"].Items
	graphic := item.Properties["dataGraphic"]
	assert.Equal(t, []string{"type", "labels", "values", "title"}, graphic.Required)
	assert.Equal(t, genai.TypeNumber, graphic.Properties["values"].Items.Type)
}

func TestBuildBriefingRequest(t *testing.T) {
	req := chat.BuildBriefingRequest(chat.ModelPolicy{}, testProfile(), brand.VoiceAnalysis{})
	assert.Contains(t, req.Prompt(), "strategic creator briefing for Rakesh Prasad")
	assert.Contains(t, req.Prompt(), "Digital India and global competitiveness")
	assert.Equal(t, []string{"overview", "keyGoals", "trendingContext"}, req.Config.ResponseSchema.Required)
}

func TestBuildTranslateRequest(t *testing.T) {
	req := chat.BuildTranslateRequest(chat.ModelPolicy{}, "Jai Hind", "Tamil")
	assert.Equal(t, chat.ModelGemini3FlashPreview, req.Model)
	assert.Equal(t, `Translate to Tamil while keeping the cultural nuances and brand tone: "Jai Hind"`, req.Prompt())
	assert.Nil(t, req.Config)
}

func TestBuildActivitySummaryRequest(t *testing.T) {
	req := chat.BuildActivitySummaryRequest(chat.ModelPolicy{}, "  liked 3 reels  ")
	assert.Equal(t, chat.ModelGemini3FlashPreview, req.Model)
	assert.Contains(t, req.Prompt(), "Summarize social activity with a focus on Indian trends")
	assert.Contains(t, req.Prompt(), `"liked 3 reels"`)
	assert.Empty(t, req.Config.Tools)
	assert.Len(t, req.Config.ResponseSchema.Required, 4)
}

func TestBuildImageRequest(t *testing.T) {
	req := chat.BuildImageRequest(chat.ModelPolicy{Image: "custom-image"}, "a poster")
	assert.Equal(t, "custom-image", req.Model)
	assert.Equal(t, "1:1", req.Config.ImageConfig.AspectRatio)
}

func TestVideoConfig(t *testing.T) {
	cfg := chat.VideoConfig("")
	assert.EqualValues(t, 1, cfg.NumberOfVideos)
	assert.Equal(t, "720p", cfg.Resolution)
	assert.Equal(t, "16:9", cfg.AspectRatio)
	assert.Equal(t, "9:16", chat.VideoConfig(chat.AspectPortrait).AspectRatio)
}

func TestChatConfig(t *testing.T) {
	setup := chat.ChatConfig(chat.ModelPolicy{}, testProfile(), brand.VoiceAnalysis{VoiceDescription: "Bold"})
	assert.Equal(t, chat.ModelGemini3ProPreview, setup.Model)
	assert.Contains(t, setup.SystemInstruction, "You are Kalki, the Digital Engine of Atma Nirbhar Content")
	assert.Contains(t, setup.SystemInstruction, "Rakesh Prasad")
	assert.Contains(t, setup.SystemInstruction, "Bold")
	assert.Contains(t, setup.Greeting, "Namaste Rakesh! Kalki Engine is online.")
}

func TestModelPolicyMerge(t *testing.T) {
	got := chat.ModelPolicy{Reasoning: "gemini-2.5-pro"}.Merge(chat.DefaultModelPolicy())
	assert.Equal(t, "gemini-2.5-pro", got.Reasoning)
	assert.Equal(t, chat.ModelVeo31FastPreview, got.Video)
	assert.Equal(t, chat.ModelGemini25FlashImage, got.Image)
}

func TestParseAspectRatio(t *testing.T) {
	for in, want := range map[string]chat.AspectRatio{
		"":         chat.AspectLandscape,
		"16:9":     chat.AspectLandscape,
		"Portrait": chat.AspectPortrait,
		"9:16":     chat.AspectPortrait,
	} {
		got, err := chat.ParseAspectRatio(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := chat.ParseAspectRatio("4:3")
	assert.Error(t, err)
}
