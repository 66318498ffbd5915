package main

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fpang/creator-studio/internal/brand"
	"github.com/fpang/creator-studio/internal/chat"
)

// profileInput is the brand profile accepted by the profile-level tools.
type profileInput struct {
	Name        string   `json:"name" jsonschema:"creator or brand name"`
	Description string   `json:"description,omitempty" jsonschema:"short brand description"`
	Platform    string   `json:"platform,omitempty" jsonschema:"primary platform: Facebook, X, LinkedIn or Instagram"`
	City        string   `json:"city" jsonschema:"city the creator publishes from"`
	State       string   `json:"state" jsonschema:"Indian state the creator publishes from"`
	Country     string   `json:"country,omitempty" jsonschema:"country, defaults to India"`
	Latitude    *float64 `json:"latitude,omitempty" jsonschema:"latitude for hyper-local trends"`
	Longitude   *float64 `json:"longitude,omitempty" jsonschema:"longitude for hyper-local trends"`
	PastPosts   []string `json:"pastPosts,omitempty" jsonschema:"recent posts that show the creator's voice"`
}

func (in profileInput) profile() (*brand.BrandProfile, error) {
	platform := brand.PlatformInstagram
	if in.Platform != "" {
		p, err := brand.ParsePlatform(in.Platform)
		if err != nil {
			return nil, err
		}
		platform = p
	}
	country := in.Country
	if country == "" {
		country = "India"
	}
	p := &brand.BrandProfile{
		Name:            in.Name,
		Description:     in.Description,
		PastPosts:       in.PastPosts,
		PrimaryPlatform: platform,
		Location: &brand.Location{
			City: in.City, State: in.State, Country: country,
			Latitude: in.Latitude, Longitude: in.Longitude,
		},
	}
	if err := brand.Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

type suggestionsInput struct {
	Profile      profileInput `json:"profile" jsonschema:"the creator's brand profile"`
	ActivityFeed string       `json:"activityFeed,omitempty" jsonschema:"optional pasted social activity to steer the suggestions"`
}

type activityInput struct {
	Feed string `json:"feed" jsonschema:"pasted social activity"`
}

type translateInput struct {
	Text     string `json:"text" jsonschema:"text to translate"`
	Language string `json:"language" jsonschema:"target language, e.g. Hindi or Tamil"`
}

type translateOutput struct {
	Text string `json:"text"`
}

type imageInput struct {
	Prompt string `json:"prompt" jsonschema:"poster description"`
}

type imageOutput struct {
	DataURI string `json:"dataUri"`
}

type videoInput struct {
	Prompt   string `json:"prompt" jsonschema:"video description"`
	Portrait bool   `json:"portrait,omitempty" jsonschema:"generate 9:16 instead of 16:9"`
}

type videoOutput struct {
	URI   string `json:"uri"`
	Polls int    `json:"polls"`
}

// toolset binds the provider configuration shared by every tool.
type toolset struct {
	provider chat.Provider
	policy   chat.ModelPolicy
	poll     chat.PollOptions
}

// newServer registers every capability as a typed MCP tool.
func newServer(provider chat.Provider, policy chat.ModelPolicy, poll chat.PollOptions, version string) *mcp.Server {
	t := &toolset{provider: provider, policy: policy.Merge(chat.DefaultModelPolicy()), poll: poll}
	s := mcp.NewServer(&mcp.Implementation{Name: "creator-studio", Version: version}, nil)

	mcp.AddTool(s, &mcp.Tool{Name: "analyze_voice", Description: "Describe a creator's brand voice, recurring themes and visual style"}, t.analyzeVoice)
	mcp.AddTool(s, &mcp.Tool{Name: "fetch_trends", Description: "Find city, state, national and genre trends for the creator's location"}, t.fetchTrends)
	mcp.AddTool(s, &mcp.Tool{Name: "daily_suggestions", Description: "Draft today's post suggestions with tone variants in English and the local language"}, t.dailySuggestions)
	mcp.AddTool(s, &mcp.Tool{Name: "summarize_activity", Description: "Summarize pasted social activity into interests and overall vibe"}, t.summarizeActivity)
	mcp.AddTool(s, &mcp.Tool{Name: "translate", Description: "Translate post text while keeping its cultural nuance"}, t.translate)
	mcp.AddTool(s, &mcp.Tool{Name: "generate_image", Description: "Generate a square poster image"}, t.generateImage)
	mcp.AddTool(s, &mcp.Tool{Name: "generate_video", Description: "Generate a short 720p clip; can take several minutes"}, t.generateVideo)
	return s
}

func (t *toolset) analyzeVoice(ctx context.Context, _ *mcp.CallToolRequest, in profileInput) (*mcp.CallToolResult, brand.VoiceAnalysis, error) {
	profile, err := in.profile()
	if err != nil {
		return nil, brand.VoiceAnalysis{}, err
	}
	voice, err := chat.AnalyzeVoice(ctx, t.provider, t.policy, profile)
	return nil, voice, err
}

func (t *toolset) fetchTrends(ctx context.Context, _ *mcp.CallToolRequest, in profileInput) (*mcp.CallToolResult, brand.RegionalTrends, error) {
	profile, err := in.profile()
	if err != nil {
		return nil, brand.RegionalTrends{}, err
	}
	trends, err := chat.FetchTrends(ctx, t.provider, t.policy, profile)
	return nil, trends, err
}

func (t *toolset) dailySuggestions(ctx context.Context, _ *mcp.CallToolRequest, in suggestionsInput) (*mcp.CallToolResult, chat.SuggestionsResult, error) {
	profile, err := in.Profile.profile()
	if err != nil {
		return nil, chat.SuggestionsResult{}, err
	}
	voice, err := chat.AnalyzeVoice(ctx, t.provider, t.policy, profile)
	if err != nil {
		return nil, chat.SuggestionsResult{}, err
	}
	if feed := strings.TrimSpace(in.ActivityFeed); feed != "" {
		summary, err := chat.SummarizeActivity(ctx, t.provider, t.policy, feed)
		if err != nil {
			return nil, chat.SuggestionsResult{}, err
		}
		profile.RecentActivityFeed = feed
		profile.ActivitySummary = &summary
	}
	result, err := chat.DailySuggestions(ctx, t.provider, t.policy, profile, voice)
	return nil, result, err
}

func (t *toolset) summarizeActivity(ctx context.Context, _ *mcp.CallToolRequest, in activityInput) (*mcp.CallToolResult, brand.ActivitySummary, error) {
	summary, err := chat.SummarizeActivity(ctx, t.provider, t.policy, in.Feed)
	return nil, summary, err
}

func (t *toolset) translate(ctx context.Context, _ *mcp.CallToolRequest, in translateInput) (*mcp.CallToolResult, translateOutput, error) {
	text, err := chat.Translate(ctx, t.provider, t.policy, in.Text, in.Language)
	return nil, translateOutput{Text: text}, err
}

func (t *toolset) generateImage(ctx context.Context, _ *mcp.CallToolRequest, in imageInput) (*mcp.CallToolResult, imageOutput, error) {
	uri, err := chat.GenerateImage(ctx, t.provider, t.policy, in.Prompt)
	return nil, imageOutput{DataURI: uri}, err
}

func (t *toolset) generateVideo(ctx context.Context, _ *mcp.CallToolRequest, in videoInput) (*mcp.CallToolResult, videoOutput, error) {
	aspect := chat.AspectLandscape
	if in.Portrait {
		aspect = chat.AspectPortrait
	}
	result, err := chat.GenerateVideo(ctx, t.provider, t.policy, in.Prompt, aspect, t.poll)
	return nil, videoOutput{URI: result.URI, Polls: result.Polls}, err
}
