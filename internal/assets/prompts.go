// Package assets provides embedded static assets for the application.
//
// Prompt templates are stored as text files under prompts/ and embedded at compile time.

package assets

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"
)

//go:embed prompts/voice-analysis.txt
var voiceAnalysisTemplate string

//go:embed prompts/trends.txt
var trendsTemplate string

//go:embed prompts/briefing.txt
var briefingTemplate string

//go:embed prompts/suggestions.txt
var suggestionsTemplate string

//go:embed prompts/translate.txt
var translateTemplate string

//go:embed prompts/activity-summary.txt
var activitySummaryTemplate string

//go:embed prompts/chat-system.txt
var chatSystemTemplate string

//go:embed prompts/greeting.txt
var greetingTemplate string

//go:embed prompts/poster.txt
var posterTemplate string

//go:embed prompts/festival-video.txt
var festivalVideoTemplate string

var funcs = template.FuncMap{"join": strings.Join}

// Pre-parsed templates. template.Must panics on malformed templates,
// catching errors at program startup rather than at call time.
var (
	voiceAnalysisTmpl   = parse("voice-analysis", voiceAnalysisTemplate)
	trendsTmpl          = parse("trends", trendsTemplate)
	briefingTmpl        = parse("briefing", briefingTemplate)
	suggestionsTmpl     = parse("suggestions", suggestionsTemplate)
	translateTmpl       = parse("translate", translateTemplate)
	activitySummaryTmpl = parse("activity-summary", activitySummaryTemplate)
	chatSystemTmpl      = parse("chat-system", chatSystemTemplate)
	greetingTmpl        = parse("greeting", greetingTemplate)
	posterTmpl          = parse("poster", posterTemplate)
	festivalVideoTmpl   = parse("festival-video", festivalVideoTemplate)
)

func parse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

// VoiceAnalysisData feeds the brand voice prompt.
type VoiceAnalysisData struct {
	Name         string
	Platform     string
	SocialLinks  string
	Description  string
	VisualStyles []string
	PastPosts    []string
	ImageCount   int
}

// TrendsData feeds the trend discovery prompt. Locality is either the
// "coordinates: lat, lng" phrase (Mobility true) or "city, state, country".
type TrendsData struct {
	Locality string
	Mobility bool
	Niche    string
}

// BriefingData feeds the strategic briefing prompt.
type BriefingData struct {
	Name             string
	Description      string
	Locality         string
	VoiceDescription string
	Themes           []string
}

// SuggestionsData feeds the daily suggestions prompt. The pulse fields are
// only rendered when HasPulse is set.
type SuggestionsData struct {
	City             string
	Platform         string
	LocalLanguage    string
	VoiceDescription string
	StyleKeywords    []string

	HasPulse     bool
	Interests    []string
	Influencers  []string
	Vibe         string
	PulseSummary string
}

// ChatData feeds the chat system instruction and greeting.
type ChatData struct {
	Name             string
	FirstName        string
	Locality         string
	VoiceDescription string
}

// PosterData feeds the poster image prompt. Festival is empty for regular posts.
type PosterData struct {
	Name     string
	Festival string
}

// FestivalVideoData feeds the festival video prompt prefix.
type FestivalVideoData struct {
	Festival string
	Overlay  string
	Prompt   string
}

// RenderVoiceAnalysisPrompt renders the brand voice analysis instruction.
func RenderVoiceAnalysisPrompt(d VoiceAnalysisData) string { return render(voiceAnalysisTmpl, d) }

// RenderTrendsPrompt renders the trend discovery instruction.
func RenderTrendsPrompt(d TrendsData) string { return render(trendsTmpl, d) }

// RenderBriefingPrompt renders the strategic briefing instruction.
func RenderBriefingPrompt(d BriefingData) string { return render(briefingTmpl, d) }

// RenderSuggestionsPrompt renders the daily suggestions instruction.
func RenderSuggestionsPrompt(d SuggestionsData) string { return render(suggestionsTmpl, d) }

// RenderTranslatePrompt renders the single-purpose translation instruction.
func RenderTranslatePrompt(content, language string) string {
	return render(translateTmpl, struct{ Content, Language string }{content, language})
}

// RenderActivitySummaryPrompt renders the feed summarization instruction.
func RenderActivitySummaryPrompt(feed string) string {
	return render(activitySummaryTmpl, struct{ Feed string }{feed})
}

// RenderChatSystemInstruction renders the persona for the conversational session.
func RenderChatSystemInstruction(d ChatData) string { return render(chatSystemTmpl, d) }

// RenderGreeting renders the first model message shown in a new transcript.
func RenderGreeting(d ChatData) string { return render(greetingTmpl, d) }

// RenderPosterPrompt renders the still-image instruction for a post.
func RenderPosterPrompt(d PosterData) string { return render(posterTmpl, d) }

// RenderFestivalVideoPrompt renders the festival prefix for a video prompt.
func RenderFestivalVideoPrompt(d FestivalVideoData) string { return render(festivalVideoTmpl, d) }

// render executes a pre-parsed template. Execution errors are not expected
// with these templates; whatever was rendered is returned.
func render(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return strings.TrimSpace(buf.String())
}
