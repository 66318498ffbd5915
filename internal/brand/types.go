// Package brand holds the creator-facing domain records shared by the
// request builders, response decoders, and the session orchestrator.
//
// JSON field names match the wire names declared in the Gemini response
// schemas so the same structs serve as both the decode target and the API
// payload.
package brand

import (
	"fmt"
	"strings"
)

// Platform is the creator's primary publishing platform.
type Platform string

const (
	PlatformFacebook  Platform = "Facebook"
	PlatformX         Platform = "X"
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformInstagram Platform = "Instagram"
)

// Platforms lists the supported platforms in display order.
var Platforms = []Platform{PlatformFacebook, PlatformX, PlatformLinkedIn, PlatformInstagram}

// ParsePlatform resolves a case-insensitive platform name. "Twitter" is
// accepted as an alias for X.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "facebook":
		return PlatformFacebook, nil
	case "x", "twitter", "x (twitter)":
		return PlatformX, nil
	case "linkedin":
		return PlatformLinkedIn, nil
	case "instagram":
		return PlatformInstagram, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// Location is where the creator is publishing from. City, state, and
// country are all required; coordinates are only set in mobility mode and
// must come as a pair.
type Location struct {
	City      string   `json:"city" yaml:"city" validate:"required"`
	State     string   `json:"state" yaml:"state" validate:"required"`
	Country   string   `json:"country" yaml:"country" validate:"required"`
	Latitude  *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty" validate:"omitempty,longitude"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}

// String renders "city, state, country".
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%s, %s, %s", l.City, l.State, l.Country)
}

// ReferenceImage is an inline image attached to profile-level requests.
type ReferenceImage struct {
	MIMEType string `json:"mimeType" validate:"omitempty,startswith=image/"`
	Data     []byte `json:"data" validate:"required"`
}

// BrandProfile parameterizes every downstream request.
type BrandProfile struct {
	Name               string              `json:"name" yaml:"name" validate:"required"`
	Description        string              `json:"description" yaml:"description"`
	Location           *Location           `json:"location,omitempty" yaml:"location,omitempty"`
	PastPosts          []string            `json:"pastPosts" yaml:"pastPosts"`
	RecentActivityFeed string              `json:"recentActivityFeed,omitempty" yaml:"recentActivityFeed,omitempty"`
	ActivitySummary    *ActivitySummary    `json:"activitySummary,omitempty" yaml:"-"`
	VisualStyles       []string            `json:"visualStyles" yaml:"visualStyles"`
	ReferenceImages    []ReferenceImage    `json:"referenceImages,omitempty" yaml:"-" validate:"dive"`
	PrimaryPlatform    Platform            `json:"primaryPlatform" yaml:"primaryPlatform" validate:"required,oneof=Facebook X LinkedIn Instagram"`
	SocialLinks        map[Platform]string `json:"socialLinks,omitempty" yaml:"socialLinks,omitempty" validate:"omitempty,dive,keys,oneof=Facebook X LinkedIn Instagram,endkeys,omitempty,url"`
}

// SocialLinksSummary renders the non-empty social links as
// "Platform: URL" pairs in platform order, or "None provided".
func (p *BrandProfile) SocialLinksSummary() string {
	var pairs []string
	for _, platform := range Platforms {
		if url := p.SocialLinks[platform]; url != "" {
			pairs = append(pairs, fmt.Sprintf("%s: %s", platform, url))
		}
	}
	if len(pairs) == 0 {
		return "None provided"
	}
	return strings.Join(pairs, ", ")
}

// City returns the location's city or an empty string.
func (p *BrandProfile) City() string {
	if p.Location == nil {
		return ""
	}
	return p.Location.City
}

// State returns the location's state or an empty string.
func (p *BrandProfile) State() string {
	if p.Location == nil {
		return ""
	}
	return p.Location.State
}

// VoiceAnalysis is the inferred brand voice.
type VoiceAnalysis struct {
	VoiceDescription string   `json:"voiceDescription"`
	CommonThemes     []string `json:"commonThemes"`
	StyleKeywords    []string `json:"styleKeywords"`
}

// TrendingTopic is one trend entry. Genre entries carry no hashtags.
type TrendingTopic struct {
	Title    string   `json:"title"`
	Context  string   `json:"context"`
	Hashtags []string `json:"hashtags,omitempty"`
	Volume   string   `json:"volume,omitempty"`
}

// GenreTrends buckets niche trends by genre.
type GenreTrends struct {
	Tech          []TrendingTopic `json:"tech"`
	Lifestyle     []TrendingTopic `json:"lifestyle"`
	Entertainment []TrendingTopic `json:"entertainment"`
	Sports        []TrendingTopic `json:"sports,omitempty"`
	Politics      []TrendingTopic `json:"politics,omitempty"`
	Economics     []TrendingTopic `json:"economics,omitempty"`
}

// RegionalTrends is the trend report for a creator's locality.
type RegionalTrends struct {
	City     []TrendingTopic `json:"city"`
	State    []TrendingTopic `json:"state"`
	National []TrendingTopic `json:"national"`
	Global   []TrendingTopic `json:"global"`
	Genres   GenreTrends     `json:"genres"`
}

// StrategicBriefing is the high-level creator strategy.
type StrategicBriefing struct {
	Overview        string   `json:"overview"`
	KeyGoals        []string `json:"keyGoals"`
	TrendingContext string   `json:"trendingContext"`
}

// ActivitySummary condenses a pasted activity feed.
type ActivitySummary struct {
	RecentInterests        []string `json:"recentInterests"`
	TopAccountsInfluencing []string `json:"topAccountsInfluencing"`
	OverallVibe            string   `json:"overallVibe"`
	SummaryText            string   `json:"summaryText"`
}

// GroundingSource is a web citation returned alongside a grounded answer.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Role is the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one turn in the conversational session.
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
