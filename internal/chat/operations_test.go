package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpang/creator-studio/internal/brand"
	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/chat/chattest"
)

func TestAnalyzeVoice(t *testing.T) {
	p := &chattest.Provider{Replies: []chattest.Reply{{Resp: chattest.Text("```json\n" +
		`{"voiceDescription":"Proud and witty","commonThemes":["startups"],"styleKeywords":["Madhubani"]}` +
		"\n```")}}}

	voice, err := chat.AnalyzeVoice(context.Background(), p, chat.ModelPolicy{}, testProfile())
	require.NoError(t, err)
	assert.Equal(t, "Proud and witty", voice.VoiceDescription)
	assert.Equal(t, []string{"Madhubani"}, voice.StyleKeywords)
	assert.Equal(t, chat.ModelGemini3ProPreview, p.Calls()[0].Model)
}

func TestAnalyzeVoiceMalformedFallsBackToEmpty(t *testing.T) {
	p := &chattest.Provider{Replies: []chattest.Reply{{Resp: chattest.Text("not json at all")}}}

	voice, err := chat.AnalyzeVoice(context.Background(), p, chat.ModelPolicy{}, testProfile())
	require.NoError(t, err)
	assert.Empty(t, voice.VoiceDescription)
	assert.NotNil(t, voice.CommonThemes)
	assert.NotNil(t, voice.StyleKeywords)
}

func TestProviderErrorIsWrapped(t *testing.T) {
	boom := errors.New("quota exhausted")
	p := &chattest.Provider{Replies: []chattest.Reply{{Err: boom}}}

	_, err := chat.StrategicBriefing(context.Background(), p, chat.ModelPolicy{}, testProfile(), brand.VoiceAnalysis{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.True(t, strings.HasPrefix(err.Error(), "failed to generate content:"))
}

func TestNilResponseIsEmptyResponse(t *testing.T) {
	p := &chattest.Provider{Replies: []chattest.Reply{{}}}
	_, err := chat.FetchTrends(context.Background(), p, chat.ModelPolicy{}, testProfile())
	assert.ErrorIs(t, err, chat.ErrEmptyResponse)
}

func TestFetchTrendsEmptyPayload(t *testing.T) {
	p := &chattest.Provider{Replies: []chattest.Reply{{Resp: chattest.Text("")}}}

	trends, err := chat.FetchTrends(context.Background(), p, chat.ModelPolicy{}, testProfile())
	require.NoError(t, err)
	assert.NotNil(t, trends.City)
	assert.Empty(t, trends.City)
	assert.NotNil(t, trends.Genres.Tech)
}

func TestDailySuggestionsNormalizes(t *testing.T) {
	payload := `{"suggestions":[
		{"id":"a","content":"Post A","dataGraphic":{"type":"BAR","labels":["x","y","z"],"values":[1,2],"title":"t"}},
		{"content":"Post B","dataGraphic":{"type":"radar","labels":["x"],"values":[1],"title":"t"}},
		{"id":"c","platform":"X","content":"Post C","dataGraphic":{"type":"pie","labels":[],"values":[],"title":"t"}}
	]}`
	resp := chattest.WithWebSources(chattest.Text(payload), "", "https://a.example", "PIB", "https://pib.gov.in")
	resp.Candidates[0].GroundingMetadata.GroundingChunks = append(resp.Candidates[0].GroundingMetadata.GroundingChunks, nil)
	p := &chattest.Provider{Replies: []chattest.Reply{{Resp: resp}}}

	result, err := chat.DailySuggestions(context.Background(), p, chat.ModelPolicy{}, testProfile(), brand.VoiceAnalysis{})
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 3)

	a := result.Suggestions[0]
	require.NotNil(t, a.DataGraphic)
	assert.Equal(t, brand.ChartBar, a.DataGraphic.Type)
	assert.Len(t, a.DataGraphic.Labels, 2)
	assert.Len(t, a.DataGraphic.Values, 2)
	assert.Equal(t, brand.PlatformInstagram, a.Platform)

	b := result.Suggestions[1]
	assert.NotEmpty(t, b.ID)
	assert.Nil(t, b.DataGraphic)

	c := result.Suggestions[2]
	assert.Equal(t, brand.PlatformX, c.Platform)
	assert.Nil(t, c.DataGraphic)

	for _, s := range result.Suggestions {
		if s.DataGraphic != nil {
			assert.Equal(t, len(s.DataGraphic.Labels), len(s.DataGraphic.Values))
		}
	}

	assert.Equal(t, []brand.GroundingSource{
		{Title: "Source", URI: "https://a.example"},
		{Title: "PIB", URI: "https://pib.gov.in"},
	}, result.Sources)
}

func TestDailySuggestionsEmptyReply(t *testing.T) {
	p := &chattest.Provider{Replies: []chattest.Reply{{Resp: chattest.Text("")}}}

	result, err := chat.DailySuggestions(context.Background(), p, chat.ModelPolicy{}, testProfile(), brand.VoiceAnalysis{})
	require.NoError(t, err)
	assert.NotNil(t, result.Suggestions)
	assert.Empty(t, result.Suggestions)
	assert.NotNil(t, result.Sources)
}

func TestSummarizeActivityEmptyFeedMakesNoCall(t *testing.T) {
	p := &chattest.Provider{}
	_, err := chat.SummarizeActivity(context.Background(), p, chat.ModelPolicy{}, " \n\t ")
	assert.ErrorIs(t, err, chat.ErrEmptyFeed)
	assert.Zero(t, p.CallCount())
}

func TestSummarizeActivity(t *testing.T) {
	p := &chattest.Provider{Replies: []chattest.Reply{{Resp: chattest.JSON(brand.ActivitySummary{
		RecentInterests: []string{"cricket"},
		OverallVibe:     "festive",
		SummaryText:     "Watching the World Cup",
	})}}}

	summary, err := chat.SummarizeActivity(context.Background(), p, chat.ModelPolicy{}, "liked @bcci")
	require.NoError(t, err)
	assert.Equal(t, "festive", summary.OverallVibe)
	assert.NotNil(t, summary.TopAccountsInfluencing)
	assert.Equal(t, chat.ModelGemini3FlashPreview, p.Calls()[0].Model)
}

func TestTranslate(t *testing.T) {
	p := &chattest.Provider{Replies: []chattest.Reply{
		{Resp: chattest.Text(" வணக்கம் ")},
		{Resp: chattest.Text("")},
	}}

	got, err := chat.Translate(context.Background(), p, chat.ModelPolicy{}, "Hello", "Tamil")
	require.NoError(t, err)
	assert.Equal(t, "வணக்கம்", got)

	got, err = chat.Translate(context.Background(), p, chat.ModelPolicy{}, "Hello", "Tamil")
	require.NoError(t, err)
	assert.Equal(t, "Hello", got, "empty reply keeps the source")

	_, err = chat.Translate(context.Background(), p, chat.ModelPolicy{}, "Hello", "")
	assert.ErrorIs(t, err, chat.ErrMissingLanguage)
	assert.Equal(t, 2, p.CallCount())
}

func TestGenerateImage(t *testing.T) {
	p := &chattest.Provider{Replies: []chattest.Reply{
		{Resp: chattest.Image([]byte("png"))},
		{Resp: chattest.Text("I cannot draw that")},
	}}

	uri, err := chat.GenerateImage(context.Background(), p, chat.ModelPolicy{}, "A Diwali poster")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,cG5n", uri)

	_, err = chat.GenerateImage(context.Background(), p, chat.ModelPolicy{}, "A Diwali poster")
	assert.ErrorIs(t, err, chat.ErrNoImageData)
	assert.EqualError(t, err, "no image data returned from model")
}

func TestGroundingSourcesNil(t *testing.T) {
	assert.Empty(t, chat.GroundingSources(nil))
	assert.Empty(t, chat.GroundingSources(chattest.Text("x")))
}

func TestSentinelErrorText(t *testing.T) {
	for _, err := range []error{
		chat.ErrEmptyResponse, chat.ErrEmptyFeed, chat.ErrEmptyMessage, chat.ErrEmptyPrompt,
		chat.ErrMissingLanguage, chat.ErrNoImageData, chat.ErrNoVideoURI, chat.ErrVideoTimeout,
	} {
		msg := err.Error()
		assert.Equal(t, strings.ToLower(msg[:1]), msg[:1], msg)
		assert.False(t, strings.HasSuffix(msg, "."), msg)
	}
}
