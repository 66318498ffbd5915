package chat

import (
	"encoding/base64"

	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/brand"
)

// defaultSourceTitle labels a web citation that came back without a title.
const defaultSourceTitle = "Source"

// GroundingSources returns the web citations attached to the first
// candidate, in order and without deduplication.
func GroundingSources(resp *genai.GenerateContentResponse) []brand.GroundingSource {
	sources := []brand.GroundingSource{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return sources
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return sources
	}
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = defaultSourceTitle
		}
		sources = append(sources, brand.GroundingSource{Title: title, URI: chunk.Web.URI})
	}
	return sources
}

// ImageDataURI re-encodes the first inline image part of the first
// candidate as a PNG data URI.
func ImageDataURI(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", ErrNoImageData
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return "data:image/png;base64," + base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
		}
	}
	return "", ErrNoImageData
}
