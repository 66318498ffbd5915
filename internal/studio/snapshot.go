package studio

import (
	"context"

	"github.com/fpang/creator-studio/internal/brand"
)

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	Generation   uint64                   `json:"generation"`
	Bootstrapped bool                     `json:"bootstrapped"`
	Closed       bool                     `json:"closed"`
	Profile      *brand.BrandProfile      `json:"profile,omitempty"`
	Voice        *brand.VoiceAnalysis     `json:"voice,omitempty"`
	Briefing     *brand.StrategicBriefing `json:"briefing,omitempty"`
	Trends       *brand.RegionalTrends    `json:"trends,omitempty"`
	Suggestions  []brand.PostSuggestion   `json:"suggestions"`
	Sources      []brand.GroundingSource  `json:"sources"`
	Transcript   []brand.ChatMessage      `json:"transcript"`
}

// Snapshot copies the current state. Reference image bytes are omitted.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		Generation:   s.generation,
		Bootstrapped: s.profile != nil && s.voice != nil,
		Closed:       s.closed,
		Suggestions:  append([]brand.PostSuggestion{}, s.suggestions...),
		Sources:      append([]brand.GroundingSource{}, s.sources...),
	}
	if s.profile != nil {
		p := *s.profile
		p.ReferenceImages = nil
		snap.Profile = &p
	}
	if s.voice != nil {
		v := *s.voice
		snap.Voice = &v
	}
	if s.briefing != nil {
		b := *s.briefing
		snap.Briefing = &b
	}
	if s.trends != nil {
		t := *s.trends
		snap.Trends = &t
	}
	s.mu.Unlock()

	snap.Transcript = s.Transcript()
	return snap
}

// Chat sends a message to the strategist and returns the reply.
func (s *Session) Chat(ctx context.Context, text string) (string, error) {
	v, err := s.current()
	if err != nil {
		return "", err
	}
	if v.chat == nil {
		return "", ErrNotBootstrapped
	}
	return v.chat.Send(ctx, text)
}

// Transcript returns the greeting followed by the conversation history.
// It is empty before bootstrap.
func (s *Session) Transcript() []brand.ChatMessage {
	s.mu.Lock()
	greeting, session := s.greeting, s.chat
	s.mu.Unlock()

	transcript := []brand.ChatMessage{}
	if greeting != "" {
		transcript = append(transcript, brand.ChatMessage{Role: brand.RoleModel, Text: greeting})
	}
	if session != nil {
		transcript = append(transcript, session.History()...)
	}
	return transcript
}
