package chat

import "google.golang.org/genai"

// Structured-output contracts shared by the request builders and decoders.
// Property names match the JSON tags on the brand types they decode into.

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func strList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: str()}
}

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func arrayOf(item *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: item}
}

// VoiceAnalysisSchema describes brand.VoiceAnalysis.
var VoiceAnalysisSchema = object(map[string]*genai.Schema{
	"voiceDescription": str(),
	"commonThemes":     strList(),
	"styleKeywords":    strList(),
}, "voiceDescription", "commonThemes", "styleKeywords")

var trendTopicSchema = object(map[string]*genai.Schema{
	"title":    str(),
	"context":  str(),
	"hashtags": strList(),
	"volume":   str(),
})

var genreTopicSchema = object(map[string]*genai.Schema{
	"title":   str(),
	"context": str(),
})

// RegionalTrendsSchema describes brand.RegionalTrends.
var RegionalTrendsSchema = object(map[string]*genai.Schema{
	"city":     arrayOf(trendTopicSchema),
	"state":    arrayOf(trendTopicSchema),
	"national": arrayOf(trendTopicSchema),
	"global":   arrayOf(trendTopicSchema),
	"genres": object(map[string]*genai.Schema{
		"tech":          arrayOf(genreTopicSchema),
		"lifestyle":     arrayOf(genreTopicSchema),
		"entertainment": arrayOf(genreTopicSchema),
		"sports":        arrayOf(genreTopicSchema),
		"politics":      arrayOf(genreTopicSchema),
		"economics":     arrayOf(genreTopicSchema),
	}),
})

// BriefingSchema describes brand.StrategicBriefing.
var BriefingSchema = object(map[string]*genai.Schema{
	"overview":        str(),
	"keyGoals":        strList(),
	"trendingContext": str(),
}, "overview", "keyGoals", "trendingContext")

// ActivitySummarySchema describes brand.ActivitySummary.
var ActivitySummarySchema = object(map[string]*genai.Schema{
	"recentInterests":        strList(),
	"topAccountsInfluencing": strList(),
	"overallVibe":            str(),
	"summaryText":            str(),
}, "recentInterests", "topAccountsInfluencing", "overallVibe", "summaryText")

var dataGraphicSchema = object(map[string]*genai.Schema{
	"type":        {Type: genai.TypeString, Description: "'bar', 'pie', or 'line'"},
	"labels":      strList(),
	"values":      arrayOf(&genai.Schema{Type: genai.TypeNumber}),
	"title":       str(),
	"description": str(),
}, "type", "labels", "values", "title")

var suggestionSchema = object(map[string]*genai.Schema{
	"id":                str(),
	"platform":          str(),
	"content":           str(),
	"rationale":         str(),
	"suggestedHashtags": strList(),
	"tone":              str(),
	"toneVariants": arrayOf(object(map[string]*genai.Schema{
		"tone":           str(),
		"contentEnglish": str(),
		"contentIndic":   str(),
		"indicLanguage":  str(),
	})),
	"visualPrompt":    str(),
	"videoPrompt":     str(),
	"engagementLevel": str(),
	"platformTips":    strList(),
	"festivalInfo": object(map[string]*genai.Schema{
		"name":        str(),
		"isGreeting":  {Type: genai.TypeBoolean},
		"overlayText": str(),
	}),
	"dataGraphic": dataGraphicSchema,
})

// SuggestionsSchema wraps the post suggestion shape in a "suggestions" array.
var SuggestionsSchema = object(map[string]*genai.Schema{
	"suggestions": arrayOf(suggestionSchema),
})
