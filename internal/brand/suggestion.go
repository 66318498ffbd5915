package brand

import "strings"

// Tone is a stylistic register for a post variant.
type Tone string

const (
	ToneHumorous     Tone = "Humorous"
	ToneSarcastic    Tone = "Sarcastic"
	ToneProfessional Tone = "Professional"
	ToneSoft         Tone = "Soft"
	ToneBold         Tone = "Bold"
	TonePolitical    Tone = "Political"
	ToneDirect       Tone = "Direct"
)

// EngagementLevel is the predicted engagement for a post.
type EngagementLevel string

const (
	EngagementHigh   EngagementLevel = "High"
	EngagementMedium EngagementLevel = "Medium"
	EngagementLow    EngagementLevel = "Low"
)

// ChartKind is the rendering kind of a DataGraphic.
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
	ChartLine ChartKind = "line"
)

// Valid reports whether k is one of the supported chart kinds.
func (k ChartKind) Valid() bool {
	switch k {
	case ChartBar, ChartPie, ChartLine:
		return true
	}
	return false
}

// ToneVariant is the same post rewritten in one tone, in English and in the
// creator's local language.
type ToneVariant struct {
	Tone           Tone   `json:"tone"`
	ContentEnglish string `json:"contentEnglish"`
	ContentIndic   string `json:"contentIndic"`
	IndicLanguage  string `json:"indicLanguage"`
}

// DataGraphic is chart metadata attached to posts making a statistical claim.
// Labels and Values are parallel.
type DataGraphic struct {
	Type        ChartKind `json:"type"`
	Labels      []string  `json:"labels"`
	Values      []float64 `json:"values"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
}

// Normalize truncates Labels and Values to the shorter of the two and
// reports whether the graphic is still renderable: a known chart kind with
// at least one point.
func (g *DataGraphic) Normalize() bool {
	if g == nil {
		return false
	}
	n := min(len(g.Labels), len(g.Values))
	g.Labels = g.Labels[:n]
	g.Values = g.Values[:n]
	g.Type = ChartKind(strings.ToLower(string(g.Type)))
	return n > 0 && g.Type.Valid()
}

// FestivalInfo marks a post as a festival greeting.
type FestivalInfo struct {
	Name        string `json:"name"`
	IsGreeting  bool   `json:"isGreeting"`
	OverlayText string `json:"overlayText"`
}

// PostSuggestion is one generated post idea.
type PostSuggestion struct {
	ID                string          `json:"id"`
	Platform          Platform        `json:"platform"`
	Content           string          `json:"content"`
	Rationale         string          `json:"rationale"`
	SuggestedHashtags []string        `json:"suggestedHashtags"`
	Tone              string          `json:"tone"`
	ToneVariants      []ToneVariant   `json:"toneVariants,omitempty"`
	VisualPrompt      string          `json:"visualPrompt,omitempty"`
	VideoPrompt       string          `json:"videoPrompt,omitempty"`
	VideoURI          string          `json:"videoUri,omitempty"`
	DataGraphic       *DataGraphic    `json:"dataGraphic,omitempty"`
	FestivalInfo      *FestivalInfo   `json:"festivalInfo,omitempty"`
	EngagementLevel   EngagementLevel `json:"engagementLevel,omitempty"`
	PlatformTips      []string        `json:"platformTips,omitempty"`
}

// Variant returns the tone variant with the given tone (case-insensitive),
// or nil.
func (s *PostSuggestion) Variant(tone string) *ToneVariant {
	for i := range s.ToneVariants {
		if strings.EqualFold(string(s.ToneVariants[i].Tone), tone) {
			return &s.ToneVariants[i]
		}
	}
	return nil
}

// SourceText returns the English text to translate for a tone: the
// variant's English content when present, otherwise the base content.
func (s *PostSuggestion) SourceText(tone string) string {
	if v := s.Variant(tone); v != nil && v.ContentEnglish != "" {
		return v.ContentEnglish
	}
	return s.Content
}
