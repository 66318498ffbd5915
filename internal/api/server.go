// Package api exposes creator sessions over a JSON HTTP API. It backs both
// the local web server and the Lambda function.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog/log"

	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/metrics"
	"github.com/fpang/creator-studio/internal/studio"
)

// Server routes API requests to sessions in its registry.
type Server struct {
	provider chat.Provider
	opts     studio.Options
	sessions *Registry
}

// NewServer creates a Server whose sessions share provider and opts.
func NewServer(provider chat.Provider, opts studio.Options) *Server {
	opts.Policy = opts.Policy.Merge(chat.DefaultModelPolicy())
	return &Server{
		provider: provider,
		opts:     opts,
		sessions: NewRegistry(),
	}
}

// Sessions returns the server's registry.
func (s *Server) Sessions() *Registry { return s.sessions }

// Handler builds the router with its middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(withLogging)
	r.Use(withMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/languages", s.handleLanguages)
		r.Post("/translate", s.handleTranslateText)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/pulse", s.handlePulse)
			r.Post("/chat", s.handleChat)
			r.Route("/suggestions/{sid}", func(r chi.Router) {
				r.Post("/translate", s.handleTranslate)
				r.Post("/poster", s.handlePoster)
				r.Post("/video", s.handleVideo)
			})
		})
	})

	return gzhttp.GzipHandler(r)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Str("requestId", chimiddleware.GetReqID(r.Context())).
			Dur("duration", time.Since(start)).
			Msg("API request")
	})
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

// withMetrics emits RequestLatencyMs and RequestCount per route pattern.
func withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sr, r)

		endpoint := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			endpoint = rc.RoutePattern()
		}
		metrics.New().
			Dimension("Endpoint", endpoint).
			Duration("RequestLatencyMs", time.Since(start)).
			Count("RequestCount").
			Property("method", r.Method).
			Property("statusCode", strconv.Itoa(sr.statusCode)).
			Flush()
	})
}
