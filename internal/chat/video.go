package chat

// video.go drives Veo video generation. Submission returns a long-running
// operation that is polled at a fixed interval until it is done, fails, or
// exhausts its attempt or duration bound.

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/metrics"
)

// AspectRatio is a video frame shape.
type AspectRatio string

const (
	AspectLandscape AspectRatio = "16:9"
	AspectPortrait  AspectRatio = "9:16"
)

// ParseAspectRatio accepts "16:9", "9:16", "landscape", or "portrait".
// Blank input selects landscape.
func ParseAspectRatio(s string) (AspectRatio, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "16:9", "landscape", "wide":
		return AspectLandscape, nil
	case "9:16", "portrait", "vertical":
		return AspectPortrait, nil
	}
	return "", fmt.Errorf("unsupported aspect ratio %q", s)
}

// VideoResolution is the fixed output resolution.
const VideoResolution = "720p"

// VideoConfig returns the generation parameters: one clip at 720p in the
// requested aspect ratio.
func VideoConfig(aspect AspectRatio) *genai.GenerateVideosConfig {
	if aspect == "" {
		aspect = AspectLandscape
	}
	return &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     VideoResolution,
		AspectRatio:    string(aspect),
	}
}

// PollOptions bounds the poll loop. Zero fields take the defaults.
type PollOptions struct {
	Interval    time.Duration
	MaxAttempts int
	MaxDuration time.Duration
}

// DefaultPollOptions polls every 10 seconds for at most 60 attempts or 10 minutes.
func DefaultPollOptions() PollOptions {
	return PollOptions{
		Interval:    10 * time.Second,
		MaxAttempts: 60,
		MaxDuration: 10 * time.Minute,
	}
}

func (o PollOptions) withDefaults() PollOptions {
	def := DefaultPollOptions()
	if o.Interval <= 0 {
		o.Interval = def.Interval
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = def.MaxAttempts
	}
	if o.MaxDuration <= 0 {
		o.MaxDuration = def.MaxDuration
	}
	return o
}

// VideoResult describes a finished video.
type VideoResult struct {
	URI       string        `json:"uri"`
	Operation string        `json:"operation"`
	Polls     int           `json:"polls"`
	Elapsed   time.Duration `json:"elapsed"`
}

// GenerateVideo submits a video job and polls it to completion.
func GenerateVideo(ctx context.Context, p Provider, policy ModelPolicy, prompt string, aspect AspectRatio, opts PollOptions) (VideoResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return VideoResult{}, ErrEmptyPrompt
	}
	policy = policy.orDefault()
	log.Info().
		Str("model", policy.Video).
		Str("aspect", string(aspect)).
		Int("prompt_length", len(prompt)).
		Msg("Submitting video generation...")

	submitStart := time.Now()
	op, err := p.GenerateVideos(ctx, policy.Video, prompt, VideoConfig(aspect))
	if err != nil {
		metrics.New().Dimension("Capability", string(CapabilityVideo)).Count("GeminiApiErrors").Flush()
		log.Error().Err(err).Msg("Video submission failed")
		return VideoResult{}, fmt.Errorf("failed to generate content: %w", err)
	}
	if op == nil {
		return VideoResult{}, ErrEmptyResponse
	}

	result, err := PollVideo(ctx, p, op, opts)
	result.Elapsed = time.Since(submitStart)

	m := metrics.New().
		Dimension("Capability", string(CapabilityVideo)).
		Duration("VideoGenerationMs", result.Elapsed).
		Metric("VideoPolls", float64(result.Polls), metrics.UnitCount).
		Count("GeminiApiCalls")
	if err != nil {
		m.Count("GeminiApiErrors")
	}
	m.Flush()
	return result, err
}

// PollVideo waits for op to finish. It fetches status once per interval,
// never more than MaxAttempts times, and gives up after MaxDuration with
// ErrVideoTimeout. Cancellation of ctx returns ctx.Err(). A finished
// operation yields its first video URI, a *VideoFailedError, or
// ErrNoVideoURI. A nil op returns ErrEmptyResponse.
func PollVideo(ctx context.Context, p Provider, op *genai.GenerateVideosOperation, opts PollOptions) (VideoResult, error) {
	if op == nil {
		return VideoResult{}, ErrEmptyResponse
	}
	opts = opts.withDefaults()
	result := VideoResult{Operation: op.Name}

	pollCtx, cancel := context.WithTimeoutCause(ctx, opts.MaxDuration, ErrVideoTimeout)
	defer cancel()

	stopped := func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrVideoTimeout
	}

	for !op.Done {
		if result.Polls >= opts.MaxAttempts {
			log.Warn().Str("operation", op.Name).Int("polls", result.Polls).Msg("Video poll attempts exhausted")
			return result, ErrVideoTimeout
		}

		timer := time.NewTimer(opts.Interval)
		select {
		case <-pollCtx.Done():
			timer.Stop()
			return result, stopped()
		case <-timer.C:
		}

		next, err := p.GetVideosOperation(pollCtx, op)
		result.Polls++
		if err != nil {
			if pollCtx.Err() != nil {
				return result, stopped()
			}
			log.Error().Err(err).Str("operation", op.Name).Msg("Failed to fetch video operation status")
			return result, fmt.Errorf("failed to poll video operation: %w", err)
		}
		if next == nil {
			return result, ErrEmptyResponse
		}
		op = next
		log.Debug().Str("operation", op.Name).Int("poll", result.Polls).Bool("done", op.Done).Msg("Video operation status")
	}

	if op.Error != nil {
		failed := newVideoFailedError(op.Name, op.Error)
		log.Error().Err(failed).Msg("Video generation failed")
		return result, failed
	}

	uri := firstVideoURI(op)
	if uri == "" {
		log.Error().Str("operation", op.Name).Msg("Video operation finished without a URI")
		return result, ErrNoVideoURI
	}
	result.URI = uri
	log.Info().Str("operation", op.Name).Int("polls", result.Polls).Msg("Video generation complete")
	return result, nil
}

func firstVideoURI(op *genai.GenerateVideosOperation) string {
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return ""
	}
	v := op.Response.GeneratedVideos[0]
	if v == nil || v.Video == nil {
		return ""
	}
	return v.Video.URI
}

// AuthorizedVideoURL appends the API key as the "key" query parameter so
// the video file can be downloaded directly.
func AuthorizedVideoURL(uri, apiKey string) (string, error) {
	if uri == "" {
		return "", ErrNoVideoURI
	}
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid video URI: %w", err)
	}
	if apiKey == "" {
		return u.String(), nil
	}
	q := u.Query()
	q.Set("key", apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// IsVideoTimeout reports whether err means the poll loop ran out of attempts or time.
func IsVideoTimeout(err error) bool {
	return errors.Is(err, ErrVideoTimeout)
}
