package studio

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fpang/creator-studio/internal/assets"
	"github.com/fpang/creator-studio/internal/chat"
)

// Poster is a generated still for a suggestion.
type Poster struct {
	SuggestionID string `json:"suggestionId"`
	Prompt       string `json:"prompt"`
	DataURI      string `json:"dataUri"`
	ShareURL     string `json:"shareUrl,omitempty"`
}

// Video is a generated clip for a suggestion.
type Video struct {
	SuggestionID string `json:"suggestionId"`
	Prompt       string `json:"prompt"`
	URI          string `json:"uri"`
	ShareURL     string `json:"shareUrl,omitempty"`
	Polls        int    `json:"polls"`
}

// GeneratePoster renders a square poster for the suggestion: a festival
// greeting when the post carries festival metadata, an engaging social
// poster otherwise.
func (s *Session) GeneratePoster(ctx context.Context, suggestionID string) (Poster, error) {
	sugg, v, err := s.suggestion(suggestionID)
	if err != nil {
		return Poster{}, err
	}

	data := assets.PosterData{Name: v.profile.Name}
	if sugg.FestivalInfo != nil {
		data.Festival = sugg.FestivalInfo.Name
	}
	prompt := assets.RenderPosterPrompt(data)

	uri, err := chat.GenerateImage(ctx, s.provider, s.opts.Policy, prompt)
	if err != nil {
		return Poster{}, err
	}
	if err := s.commit(v.generation, func() {}); err != nil {
		return Poster{}, err
	}

	poster := Poster{SuggestionID: suggestionID, Prompt: prompt, DataURI: uri}
	if s.opts.Publisher != nil {
		url, err := s.opts.Publisher.PublishPoster(ctx, suggestionID, uri)
		if err != nil {
			log.Warn().Err(err).Str("suggestion", suggestionID).Msg("Failed to publish poster")
		} else {
			poster.ShareURL = url
		}
	}
	return poster, nil
}

// VideoPrompt builds the cinematic prompt for a suggestion. Festival posts
// are prefixed with the festival name and overlay message.
func VideoPrompt(videoPrompt, content, festival, overlay string) string {
	prompt := strings.TrimSpace(videoPrompt)
	if prompt == "" {
		prompt = strings.TrimSpace(content)
	}
	if festival == "" {
		return prompt
	}
	return assets.RenderFestivalVideoPrompt(assets.FestivalVideoData{
		Festival: festival,
		Overlay:  overlay,
		Prompt:   prompt,
	})
}

// VideoRequest tunes a suggestion's video. A blank Overlay keeps the
// festival overlay text the suggestion came with.
type VideoRequest struct {
	Aspect  chat.AspectRatio
	Overlay string
}

// GenerateVideo produces a clip for the suggestion and records its URI on
// the suggestion when the session has not moved on.
func (s *Session) GenerateVideo(ctx context.Context, suggestionID string, req VideoRequest) (Video, error) {
	sugg, v, err := s.suggestion(suggestionID)
	if err != nil {
		return Video{}, err
	}

	var festival, overlay string
	if sugg.FestivalInfo != nil {
		festival, overlay = sugg.FestivalInfo.Name, sugg.FestivalInfo.OverlayText
		if edited := strings.TrimSpace(req.Overlay); edited != "" {
			overlay = edited
		}
	}
	prompt := VideoPrompt(sugg.VideoPrompt, sugg.Content, festival, overlay)

	result, err := chat.GenerateVideo(ctx, s.provider, s.opts.Policy, prompt, req.Aspect, s.opts.Poll)
	if err != nil {
		return Video{}, fmt.Errorf("video for %s: %w", suggestionID, err)
	}

	err = s.commit(v.generation, func() {
		for i := range s.suggestions {
			if s.suggestions[i].ID == suggestionID {
				s.suggestions[i].VideoURI = result.URI
			}
		}
	})
	if err != nil {
		log.Warn().Err(err).Str("suggestion", suggestionID).Msg("Discarding video result")
		return Video{}, err
	}

	video := Video{SuggestionID: suggestionID, Prompt: prompt, URI: result.URI, Polls: result.Polls}
	if s.opts.Publisher != nil {
		url, err := s.opts.Publisher.PublishVideo(ctx, suggestionID, result.URI)
		if err != nil {
			log.Warn().Err(err).Str("suggestion", suggestionID).Msg("Failed to publish video")
		} else {
			video.ShareURL = url
		}
	}
	return video, nil
}
