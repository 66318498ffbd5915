package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/fpang/creator-studio/internal/brand"
	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/media"
	"github.com/fpang/creator-studio/internal/studio"
)

type demoRequest struct {
	Platform brand.Platform  `json:"platform" validate:"omitempty,oneof=Facebook X LinkedIn Instagram"`
	Location *brand.Location `json:"location"`
}

type createSessionRequest struct {
	Profile *brand.BrandProfile `json:"profile" validate:"required_without=Demo"`
	Demo    *demoRequest        `json:"demo" validate:"required_without=Profile"`
}

type createSessionResponse struct {
	ID       string          `json:"id"`
	Snapshot studio.Snapshot `json:"snapshot"`
}

type pulseRequest struct {
	Feed string `json:"feed"`
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type translateRequest struct {
	Tone      string   `json:"tone"`
	Language  string   `json:"language" validate:"required_without=Languages"`
	Languages []string `json:"languages" validate:"omitempty,dive,required"`
}

type translateResponse struct {
	Language     string            `json:"language,omitempty"`
	Text         string            `json:"text,omitempty"`
	Translations map[string]string `json:"translations,omitempty"`
	Errors       string            `json:"errors,omitempty"`
}

type translateTextRequest struct {
	Text     string `json:"text" validate:"required"`
	Language string `json:"language" validate:"required"`
}

type videoRequest struct {
	Aspect  string `json:"aspect" validate:"omitempty,oneof=16:9 9:16 landscape portrait wide vertical"`
	Overlay string `json:"overlay" validate:"omitempty,max=200"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.Len()})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	langs := s.opts.Languages
	if len(langs) == 0 {
		langs = brand.IndianLanguages
	}
	respondJSON(w, http.StatusOK, map[string][]string{"languages": langs})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, err)
		return
	}

	profile := req.Profile
	if profile == nil {
		demo, err := brand.DemoProfile(req.Demo.Platform, req.Demo.Location)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "demo profile unavailable", err.Error())
			return
		}
		profile = demo
	}
	for i, img := range profile.ReferenceImages {
		prepared, err := media.PrepareReferenceImage(img.Data, media.DefaultMaxDimension)
		if err != nil {
			respondError(w, &brand.ValidationError{Fields: []brand.FieldError{{Field: "ReferenceImages", Rule: "image"}}})
			return
		}
		profile.ReferenceImages[i] = prepared
	}

	session := studio.New(s.provider, s.opts)
	if err := session.Bootstrap(r.Context(), profile); err != nil {
		respondError(w, err)
		return
	}
	id := s.sessions.Add(session)
	log.Info().Str("sessionId", id).Str("name", profile.Name).Msg("Session created")
	respondJSON(w, http.StatusCreated, createSessionResponse{ID: id, Snapshot: session.Snapshot()})
}

func (s *Server) session(r *http.Request) (*studio.Session, error) {
	session, ok := s.sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		return nil, errSessionNotFound
	}
	return session, nil
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Remove(chi.URLParam(r, "id")) {
		respondError(w, errSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePulse(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req pulseRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	result, err := session.RefreshWithPulse(r.Context(), req.Feed)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req chatRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	reply, err := session.Chat(r.Context(), req.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req translateRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	sid := chi.URLParam(r, "sid")

	if len(req.Languages) > 0 {
		results, err := session.TranslateAll(r.Context(), sid, req.Tone, req.Languages)
		if err != nil && len(results) == 0 {
			respondError(w, err)
			return
		}
		resp := translateResponse{Translations: results}
		if err != nil {
			resp.Errors = err.Error()
		}
		respondJSON(w, http.StatusOK, resp)
		return
	}

	text, err := session.Translate(r.Context(), sid, req.Tone, req.Language)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, translateResponse{Language: req.Language, Text: text})
}

func (s *Server) handleTranslateText(w http.ResponseWriter, r *http.Request) {
	var req translateTextRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, err)
		return
	}
	text, err := chat.Translate(r.Context(), s.provider, s.opts.Policy, req.Text, req.Language)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, translateResponse{Language: req.Language, Text: text})
}

func (s *Server) handlePoster(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		respondError(w, err)
		return
	}
	poster, err := session.GeneratePoster(r.Context(), chi.URLParam(r, "sid"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, poster)
}

func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req videoRequest
	if r.ContentLength != 0 {
		if err := decodeBody(w, r, &req); err != nil && !isEmptyBody(err) {
			respondError(w, err)
			return
		}
	}
	aspect, err := chat.ParseAspectRatio(req.Aspect)
	if err != nil {
		respondError(w, &brand.ValidationError{Fields: []brand.FieldError{{Field: "aspect", Rule: "oneof"}}})
		return
	}
	video, err := session.GenerateVideo(r.Context(), chi.URLParam(r, "sid"), studio.VideoRequest{Aspect: aspect, Overlay: req.Overlay})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, video)
}

func isEmptyBody(err error) bool {
	var verr *brand.ValidationError
	return errors.As(err, &verr) && len(verr.Fields) == 1 && verr.Fields[0].Field == "body"
}
