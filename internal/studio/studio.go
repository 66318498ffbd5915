// Package studio orchestrates one creator's working session: the bootstrap
// pipeline (voice, briefing, trends, suggestions, chat), pulse refreshes,
// translations, posters, and videos.
//
// Every state-mutating operation is tagged with the session generation at
// start. A successful Bootstrap or RefreshWithPulse advances the generation
// when it commits, as does Close; a result whose tag no longer matches is
// discarded with ErrStale rather than overwriting newer state. Failed
// operations leave the generation alone.
package studio

import (
	"context"
	"errors"
	"sync"

	"github.com/fpang/creator-studio/internal/brand"
	"github.com/fpang/creator-studio/internal/chat"
)

var (
	// ErrNotBootstrapped is returned by operations that need a bootstrapped session.
	ErrNotBootstrapped = errors.New("session has not been bootstrapped")

	// ErrStale is returned when newer work superseded the operation.
	ErrStale = errors.New("session changed while the request was in flight")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("session is closed")

	// ErrUnknownSuggestion is returned for a suggestion ID not in the current batch.
	ErrUnknownSuggestion = errors.New("unknown suggestion")
)

// Publisher stores generated media somewhere shareable and returns a URL.
type Publisher interface {
	PublishPoster(ctx context.Context, suggestionID, dataURI string) (string, error)
	PublishVideo(ctx context.Context, suggestionID, videoURI string) (string, error)
}

// Options configures a Session. Zero values take defaults.
type Options struct {
	Policy           chat.ModelPolicy
	Poll             chat.PollOptions
	Languages        []string
	TranslateWorkers int
	Publisher        Publisher
}

// Session holds one creator context.
type Session struct {
	provider chat.Provider
	opts     Options

	mu          sync.Mutex
	generation  uint64
	closed      bool
	profile     *brand.BrandProfile
	voice       *brand.VoiceAnalysis
	briefing    *brand.StrategicBriefing
	trends      *brand.RegionalTrends
	suggestions []brand.PostSuggestion
	sources     []brand.GroundingSource
	greeting    string
	chat        *chat.Session

	memo *translationMemo
}

// New creates an empty session.
func New(provider chat.Provider, opts Options) *Session {
	opts.Policy = opts.Policy.Merge(chat.DefaultModelPolicy())
	if len(opts.Languages) == 0 {
		opts.Languages = brand.IndianLanguages
	}
	if opts.TranslateWorkers <= 0 {
		opts.TranslateWorkers = 4
	}
	return &Session{
		provider: provider,
		opts:     opts,
		memo:     newTranslationMemo(),
	}
}

// Languages is the translation menu.
func (s *Session) Languages() []string {
	return append([]string(nil), s.opts.Languages...)
}

// tag returns the current generation without requiring a bootstrapped
// session.
func (s *Session) tag() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	return s.generation, nil
}

// view is the state an operation reads at start, tagged with its generation.
type view struct {
	generation uint64
	profile    *brand.BrandProfile
	voice      brand.VoiceAnalysis
	chat       *chat.Session
}

func (s *Session) current() (view, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return view{}, ErrClosed
	}
	if s.profile == nil || s.voice == nil {
		return view{}, ErrNotBootstrapped
	}
	return view{
		generation: s.generation,
		profile:    s.profile,
		voice:      *s.voice,
		chat:       s.chat,
	}, nil
}

// commit runs apply under the lock when gen is still current.
func (s *Session) commit(gen uint64, apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.generation != gen {
		return ErrStale
	}
	apply()
	return nil
}

// replace is commit for operations that supersede the current state: on
// success the generation advances so work tagged against the old state is
// discarded.
func (s *Session) replace(gen uint64, apply func()) error {
	return s.commit(gen, func() {
		apply()
		s.generation++
	})
}

// suggestion returns a copy of the suggestion with id together with the
// current view.
func (s *Session) suggestion(id string) (brand.PostSuggestion, view, error) {
	v, err := s.current()
	if err != nil {
		return brand.PostSuggestion{}, v, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sugg := range s.suggestions {
		if sugg.ID == id {
			return sugg, v, nil
		}
	}
	return brand.PostSuggestion{}, v, ErrUnknownSuggestion
}

// Close advances the generation so in-flight work is discarded, and drops
// the chat session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.closed = true
	s.chat = nil
}
