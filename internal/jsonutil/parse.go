// Package jsonutil provides utilities for extracting and parsing JSON from
// model responses that may be wrapped in markdown code fences or embedded in prose.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrEmptyPayload is returned by ParseJSON when the raw text is blank.
var ErrEmptyPayload = errors.New("empty payload")

// StripMarkdownFences removes ```json ... ``` or ``` ... ``` wrapping from text.
// Returns the content between the fences, or the original text if no fences are found.
func StripMarkdownFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 3 {
		return text
	}

	endIdx := len(lines) - 1
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			endIdx = i
			break
		}
	}

	return strings.Join(lines[1:endIdx], "\n")
}

// ExtractJSON finds and returns the JSON content (object or array) from text
// that may contain surrounding non-JSON content.
// It finds the first { or [ and matches it with the last corresponding } or ].
func ExtractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)

	objIdx := strings.Index(text, "{")
	arrIdx := strings.Index(text, "[")

	if objIdx == -1 && arrIdx == -1 {
		return "", fmt.Errorf("no JSON content found")
	}

	var startIdx int
	var endChar string

	if arrIdx == -1 || (objIdx != -1 && objIdx <= arrIdx) {
		startIdx = objIdx
		endChar = "}"
	} else {
		startIdx = arrIdx
		endChar = "]"
	}

	text = text[startIdx:]
	endIdx := strings.LastIndex(text, endChar)
	if endIdx == -1 {
		return "", fmt.Errorf("no closing %s found", endChar)
	}

	return text[:endIdx+1], nil
}

// ParseJSON strips markdown fences from raw model text, extracts JSON
// content (object or array), and unmarshals it into T. Blank input yields
// ErrEmptyPayload.
func ParseJSON[T any](raw string) (T, error) {
	var zero T
	if strings.TrimSpace(raw) == "" {
		return zero, ErrEmptyPayload
	}

	text := StripMarkdownFences(raw)
	jsonStr, err := ExtractJSON(text)
	if err != nil {
		return zero, fmt.Errorf("%w (raw length: %d)", err, len(raw))
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("invalid JSON: %w (text: %s)", err, preview(jsonStr, 200))
	}
	return result, nil
}

// DecodeStatus classifies the outcome of a lenient decode.
type DecodeStatus int

const (
	// Decoded means the payload parsed cleanly.
	Decoded DecodeStatus = iota
	// EmptyPayload means the provider returned no text at all.
	EmptyPayload
	// MalformedPayload means text was returned but did not parse.
	MalformedPayload
)

func (s DecodeStatus) String() string {
	switch s {
	case Decoded:
		return "decoded"
	case EmptyPayload:
		return "empty"
	case MalformedPayload:
		return "malformed"
	}
	return fmt.Sprintf("DecodeStatus(%d)", int(s))
}

// DecodeLenient parses raw into T and falls back to the given default when
// the payload is empty or malformed. Malformed payloads are logged with the
// raw text; the status tells callers which case occurred.
func DecodeLenient[T any](raw string, fallback T) (T, DecodeStatus) {
	result, err := ParseJSON[T](raw)
	switch {
	case err == nil:
		return result, Decoded
	case errors.Is(err, ErrEmptyPayload):
		log.Warn().Msg("Model returned an empty payload, using empty default")
		return fallback, EmptyPayload
	default:
		log.Error().
			Err(err).
			Str("raw", preview(raw, 2000)).
			Msg("Model returned a malformed payload, using empty default")
		return fallback, MalformedPayload
	}
}

func preview(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
