package chat

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrEmptyResponse is returned when the provider answers with no response at all.
	ErrEmptyResponse = errors.New("received empty response from Gemini API")

	// ErrEmptyFeed is returned, without calling the provider, when an
	// activity feed is blank.
	ErrEmptyFeed = errors.New("activity feed is empty")

	// ErrEmptyMessage is returned when a chat turn has no text.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrEmptyPrompt is returned when an image or video prompt is blank.
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrMissingLanguage is returned when a translation has no target language.
	ErrMissingLanguage = errors.New("target language is required")

	// ErrNoImageData is returned when an image response carries no inline image part.
	ErrNoImageData = errors.New("no image data returned from model")

	// ErrNoVideoURI is returned when a video operation completes without a
	// downloadable video.
	ErrNoVideoURI = errors.New("video operation finished without a video URI")

	// ErrVideoTimeout is returned when the poll loop exhausts its attempt or
	// duration bound. It matches context.DeadlineExceeded under errors.Is.
	ErrVideoTimeout = fmt.Errorf("video generation timed out: %w", context.DeadlineExceeded)
)

// VideoFailedError reports a video operation that finished with an error.
type VideoFailedError struct {
	Operation string
	Code      int
	Message   string
}

func (e *VideoFailedError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("video operation %s failed (code %d): %s", e.Operation, e.Code, e.Message)
	}
	return fmt.Sprintf("video operation %s failed: %s", e.Operation, e.Message)
}

// newVideoFailedError reads the google.rpc.Status map carried by a failed operation.
func newVideoFailedError(name string, status map[string]any) *VideoFailedError {
	e := &VideoFailedError{Operation: name, Message: "unknown error"}
	switch code := status["code"].(type) {
	case float64:
		e.Code = int(code)
	case int:
		e.Code = code
	case int32:
		e.Code = int(code)
	case int64:
		e.Code = int(code)
	}
	if msg, ok := status["message"].(string); ok && msg != "" {
		e.Message = msg
	}
	return e
}
