package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fpang/creator-studio/internal/brand"
	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/studio"
)

// maxBodyBytes bounds request bodies. Reference images travel inline.
const maxBodyBytes = 20 << 20

var errSessionNotFound = errors.New("session not found")

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("Failed to write response")
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string             `json:"error"`
	Fields []brand.FieldError `json:"fields,omitempty"`
}

// httpError sends a JSON error response. internalDetails are logged but
// never returned to the caller.
func httpError(w http.ResponseWriter, status int, clientMsg string, internalDetails ...string) {
	if len(internalDetails) > 0 {
		log.Error().
			Int("status", status).
			Str("clientMsg", clientMsg).
			Strs("internalDetails", internalDetails).
			Msg("HTTP error with internal details")
	}
	respondJSON(w, status, errorBody{Error: clientMsg})
}

// decodeBody reads a JSON body into dst and runs its validate tags.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &brand.ValidationError{Fields: []brand.FieldError{{Field: "body", Rule: "required"}}}
		}
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	return brand.Struct(dst)
}

var errBadJSON = errors.New("invalid JSON body")

// respondError maps a domain error onto a status code.
func respondError(w http.ResponseWriter, err error) {
	var (
		verr   *brand.ValidationError
		failed *chat.VideoFailedError
	)
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, errBadJSON),
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrMissingLanguage),
		errors.Is(err, chat.ErrEmptyPrompt):
		httpError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errSessionNotFound), errors.Is(err, studio.ErrUnknownSuggestion):
		httpError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, studio.ErrNotBootstrapped),
		errors.Is(err, studio.ErrStale),
		errors.Is(err, studio.ErrClosed),
		errors.Is(err, chat.ErrEmptyFeed):
		httpError(w, http.StatusConflict, err.Error())
	case chat.IsVideoTimeout(err), errors.Is(err, context.DeadlineExceeded):
		httpError(w, http.StatusGatewayTimeout, "generation timed out", err.Error())
	case errors.As(err, &failed):
		httpError(w, http.StatusBadGateway, "video generation failed", err.Error())
	default:
		httpError(w, http.StatusBadGateway, "content generation failed", err.Error())
	}
}
