package studio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/fpang/creator-studio/internal/brand"
	"github.com/fpang/creator-studio/internal/chat"
)

type translationKey struct {
	content  string
	language string
}

type translationEntry struct {
	done chan struct{}
	text string
	err  error
}

// translationMemo caches translations by (content, language). Concurrent
// requests for the same key share one provider call; failures are not
// cached.
type translationMemo struct {
	mu      sync.Mutex
	entries map[translationKey]*translationEntry
}

func newTranslationMemo() *translationMemo {
	return &translationMemo{entries: make(map[translationKey]*translationEntry)}
}

func (m *translationMemo) get(ctx context.Context, key translationKey, fill func(context.Context) (string, error)) (string, error) {
	m.mu.Lock()
	if e, ok := m.entries[key]; ok {
		m.mu.Unlock()
		select {
		case <-e.done:
			if e.err == nil {
				return e.text, nil
			}
			// The owner failed and removed the entry; try again.
			return m.get(ctx, key, fill)
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	e := &translationEntry{done: make(chan struct{})}
	m.entries[key] = e
	m.mu.Unlock()

	e.text, e.err = fill(ctx)
	if e.err != nil {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
	}
	close(e.done)
	return e.text, e.err
}

// Translate returns a suggestion's text in lang. The tone variant's English
// content is the source, falling back to the post content. When lang is the
// variant's own local language, its local content is returned without a
// provider call; if that content is missing, the translation is stored on
// the variant so later snapshots carry it.
func (s *Session) Translate(ctx context.Context, suggestionID, tone, lang string) (string, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return "", chat.ErrMissingLanguage
	}
	sugg, v, err := s.suggestion(suggestionID)
	if err != nil {
		return "", err
	}

	variant := sugg.Variant(tone)
	ownLanguage := variant != nil && variant.IndicLanguage != "" &&
		strings.Contains(strings.ToLower(variant.IndicLanguage), strings.ToLower(lang))
	if ownLanguage && variant.ContentIndic != "" {
		return variant.ContentIndic, nil
	}

	source := sugg.SourceText(tone)
	text, err := s.memo.get(ctx, translationKey{content: source, language: lang}, func(ctx context.Context) (string, error) {
		return chat.Translate(ctx, s.provider, s.opts.Policy, source, lang)
	})
	if err != nil {
		return "", err
	}
	if ownLanguage {
		s.storeIndic(v.generation, suggestionID, variant.Tone, text)
	}
	return text, nil
}

// storeIndic fills a variant's missing local content. The variant slice is
// replaced rather than edited so earlier copies stay untouched.
func (s *Session) storeIndic(gen uint64, suggestionID string, tone brand.Tone, text string) {
	err := s.commit(gen, func() {
		for i := range s.suggestions {
			if s.suggestions[i].ID != suggestionID {
				continue
			}
			variants := append([]brand.ToneVariant(nil), s.suggestions[i].ToneVariants...)
			for j := range variants {
				if variants[j].Tone == tone && variants[j].ContentIndic == "" {
					variants[j].ContentIndic = text
				}
			}
			s.suggestions[i].ToneVariants = variants
		}
	})
	if err != nil {
		log.Debug().Err(err).Str("suggestion", suggestionID).Msg("Local translation not stored on variant")
	}
}

// TranslateAll translates a suggestion into every language in langs (the
// session's menu when empty) on a bounded worker pool. It returns whatever
// succeeded along with the joined per-language errors.
func (s *Session) TranslateAll(ctx context.Context, suggestionID, tone string, langs []string) (map[string]string, error) {
	if len(langs) == 0 {
		langs = s.opts.Languages
	}
	if _, _, err := s.suggestion(suggestionID); err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		results = make(map[string]string, len(langs))
		errs    []error
	)
	p := pool.New().WithMaxGoroutines(s.opts.TranslateWorkers)
	for _, lang := range langs {
		p.Go(func() {
			text, err := s.Translate(ctx, suggestionID, tone, lang)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", lang, err))
				return
			}
			results[lang] = text
		})
	}
	p.Wait()

	if len(errs) > 0 {
		log.Warn().Int("failed", len(errs)).Int("translated", len(results)).Msg("Some translations failed")
	}
	return results, errors.Join(errs...)
}
