package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/metrics"
)

// ValidationModel is the cheap model used to probe a key.
const ValidationModel = "gemini-3-flash-preview"

// ValidationError represents a specific type of API key validation failure.
type ValidationError struct {
	Type    ValidationErrorType
	Message string
	Err     error
}

// ValidationErrorType categorizes validation failures.
type ValidationErrorType int

const (
	// ErrTypeNoKey indicates no API key was found.
	ErrTypeNoKey ValidationErrorType = iota
	// ErrTypeInvalidKey indicates the API key is invalid or revoked.
	ErrTypeInvalidKey
	// ErrTypeNetworkError indicates a network connectivity issue.
	ErrTypeNetworkError
	// ErrTypeQuotaExceeded indicates the API quota has been exceeded.
	ErrTypeQuotaExceeded
	// ErrTypeUnknown indicates an unknown error occurred.
	ErrTypeUnknown
)

func (t ValidationErrorType) String() string {
	switch t {
	case ErrTypeNoKey:
		return "no_key"
	case ErrTypeInvalidKey:
		return "invalid"
	case ErrTypeNetworkError:
		return "network_error"
	case ErrTypeQuotaExceeded:
		return "quota"
	default:
		return "unknown"
	}
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ContentGenerator is satisfied by both the chat provider and genai's Models
// service.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ValidateAPIKey verifies the key behind gen by making a minimal call.
// It returns nil if the key is valid, or a ValidationError with a specific
// type indicating the nature of the failure.
func ValidateAPIKey(ctx context.Context, gen ContentGenerator) error {
	log.Debug().Msg("Validating API key with Gemini API")

	start := time.Now()
	resp, err := gen.GenerateContent(ctx, ValidationModel, genai.Text("hi"), nil)
	elapsed := time.Since(start)

	var valErr *ValidationError
	switch {
	case err != nil:
		valErr = ClassifyError(err)
	case resp == nil || len(resp.Candidates) == 0:
		log.Warn().Msg("API key validation returned empty response")
		valErr = &ValidationError{Type: ErrTypeUnknown, Message: "API returned empty response"}
	}

	result := "success"
	if valErr != nil {
		result = valErr.Type.String()
	}
	metrics.New().
		Dimension("Result", result).
		Duration("ApiKeyValidationMs", elapsed).
		Count("ApiKeyValidationResult").
		Flush()

	log.Debug().Str("result", result).Dur("duration", elapsed).Msg("API key validation result")
	if valErr != nil {
		return valErr
	}
	log.Info().Msg("API key validated successfully")
	return nil
}

// messageRule maps substrings of an unstructured error message to a kind.
type messageRule struct {
	markers []string
	kind    ValidationErrorType
	message string
}

var messageRules = []messageRule{
	{
		markers: []string{"api key not valid", "invalid api key", "api_key_invalid", "permission denied"},
		kind:    ErrTypeInvalidKey,
		message: "API key is invalid or has been revoked",
	},
	{
		markers: []string{"quota", "resource exhausted", "rate limit"},
		kind:    ErrTypeQuotaExceeded,
		message: "API quota exceeded or rate limited",
	},
	{
		markers: []string{"connection", "network", "timeout", "dial", "no such host", "unreachable"},
		kind:    ErrTypeNetworkError,
		message: "Network error - check your internet connection",
	},
}

// statusKinds maps Gemini HTTP status codes to a kind and operator message.
var statusKinds = map[int]struct {
	kind    ValidationErrorType
	message string
}{
	http.StatusBadRequest:          {ErrTypeInvalidKey, "Bad request - API key may be malformed"},
	http.StatusUnauthorized:        {ErrTypeInvalidKey, "API key is invalid, expired, or lacks permissions"},
	http.StatusForbidden:           {ErrTypeInvalidKey, "API key is invalid, expired, or lacks permissions"},
	http.StatusTooManyRequests:     {ErrTypeQuotaExceeded, "API rate limit exceeded - try again later"},
	http.StatusInternalServerError: {ErrTypeNetworkError, "Gemini API server error - try again later"},
	http.StatusBadGateway:          {ErrTypeNetworkError, "Gemini API server error - try again later"},
	http.StatusServiceUnavailable:  {ErrTypeNetworkError, "Gemini API server error - try again later"},
	http.StatusGatewayTimeout:      {ErrTypeNetworkError, "Gemini API server error - try again later"},
}

// ClassifyError maps a key lookup or Gemini error onto a ValidationError.
// Structured API errors are classified by status code, anything else by
// message markers. It returns nil for a nil error.
func ClassifyError(err error) *ValidationError {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNoAPIKey) {
		return &ValidationError{Type: ErrTypeNoKey, Message: "No API key configured", Err: err}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if k, ok := statusKinds[apiErr.Code]; ok {
			log.Error().Int("code", apiErr.Code).Stringer("kind", k.kind).Msg("Gemini API error")
			return &ValidationError{Type: k.kind, Message: k.message, Err: err}
		}
		log.Error().Int("code", apiErr.Code).Str("message", apiErr.Message).Msg("Unclassified Gemini API error")
		return &ValidationError{Type: ErrTypeUnknown, Message: apiErr.Message, Err: err}
	}

	lower := strings.ToLower(err.Error())
	for _, rule := range messageRules {
		for _, marker := range rule.markers {
			if strings.Contains(lower, marker) {
				log.Error().Err(err).Stringer("kind", rule.kind).Msg("Gemini call failed")
				return &ValidationError{Type: rule.kind, Message: rule.message, Err: err}
			}
		}
	}

	log.Error().Err(err).Msg("Unknown Gemini error")
	return &ValidationError{Type: ErrTypeUnknown, Message: "Failed to validate API key", Err: err}
}
