package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fpang/creator-studio/internal/brand"
)

// FormatDurationShort formats a duration in a short format (M:SS or H:MM:SS).
func FormatDurationShort(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// PrintVoice writes a voice analysis.
func PrintVoice(w io.Writer, v brand.VoiceAnalysis) {
	fmt.Fprintf(w, "Voice: %s\n", v.VoiceDescription)
	printList(w, "Themes", v.CommonThemes)
	printList(w, "Style", v.StyleKeywords)
}

// PrintBriefing writes a strategic briefing.
func PrintBriefing(w io.Writer, b brand.StrategicBriefing) {
	fmt.Fprintf(w, "%s\n", b.Overview)
	for _, g := range b.KeyGoals {
		fmt.Fprintf(w, "  * %s\n", g)
	}
	if b.TrendingContext != "" {
		fmt.Fprintf(w, "\n%s\n", b.TrendingContext)
	}
}

// PrintTrends writes trends grouped by scope.
func PrintTrends(w io.Writer, t brand.RegionalTrends) {
	printTopics(w, "City", t.City)
	printTopics(w, "State", t.State)
	printTopics(w, "National", t.National)
}

func printTopics(w io.Writer, heading string, topics []brand.TrendingTopic) {
	if len(topics) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", heading)
	for _, t := range topics {
		fmt.Fprintf(w, "  - %s: %s\n", t.Title, t.Context)
	}
}

// PrintSuggestions writes each suggestion with its ID, content and tone
// variants.
func PrintSuggestions(w io.Writer, suggestions []brand.PostSuggestion) {
	for i, s := range suggestions {
		fmt.Fprintf(w, "\n[%d] %s (%s)\n", i+1, s.ID, s.Platform)
		fmt.Fprintf(w, "    %s\n", s.Content)
		if len(s.SuggestedHashtags) > 0 {
			fmt.Fprintf(w, "    %s\n", strings.Join(s.SuggestedHashtags, " "))
		}
		if s.FestivalInfo != nil {
			fmt.Fprintf(w, "    Festival: %s\n", s.FestivalInfo.Name)
		}
		for _, v := range s.ToneVariants {
			fmt.Fprintf(w, "    %s: %s\n", v.Tone, v.ContentEnglish)
		}
	}
}

// PrintSources lists grounding citations.
func PrintSources(w io.Writer, sources []brand.GroundingSource) {
	if len(sources) == 0 {
		return
	}
	fmt.Fprintln(w, "\nSources")
	for _, s := range sources {
		fmt.Fprintf(w, "  - %s <%s>\n", s.Title, s.URI)
	}
}

// PrintTranslations writes language: text lines in name order.
func PrintTranslations(w io.Writer, results map[string]string) {
	langs := make([]string, 0, len(results))
	for l := range results {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	for _, l := range langs {
		fmt.Fprintf(w, "%s: %s\n", l, results[l])
	}
}

func printList(w io.Writer, label string, items []string) {
	if len(items) > 0 {
		fmt.Fprintf(w, "%s: %s\n", label, strings.Join(items, ", "))
	}
}
