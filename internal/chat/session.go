package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/assets"
	"github.com/fpang/creator-studio/internal/brand"
)

// PlaceholderReply stands in for a model turn that came back empty.
const PlaceholderReply = "Synchronizing data nodes..."

// ChatSetup holds what is needed to open the strategist conversation.
type ChatSetup struct {
	Model             string
	SystemInstruction string
	Greeting          string
}

// ChatConfig derives the persona, greeting, and model for a creator's
// conversation from their profile and voice analysis.
func ChatConfig(policy ModelPolicy, profile *brand.BrandProfile, voice brand.VoiceAnalysis) ChatSetup {
	policy = policy.orDefault()
	data := assets.ChatData{
		Name:             profile.Name,
		FirstName:        firstName(profile.Name),
		Locality:         profile.Location.String(),
		VoiceDescription: voice.VoiceDescription,
	}
	return ChatSetup{
		Model:             policy.Reasoning,
		SystemInstruction: assets.RenderChatSystemInstruction(data),
		Greeting:          assets.RenderGreeting(data),
	}
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}

// Session is a multi-turn conversation with a fixed system instruction and
// web search grounding. Turns are serialized: a second Send waits for the
// first to settle. Each turn resends the full history.
type Session struct {
	provider Provider
	model    string
	config   *genai.GenerateContentConfig

	mu      sync.Mutex
	history []brand.ChatMessage
}

// NewSession opens a conversation.
func NewSession(p Provider, model, systemInstruction string) *Session {
	return &Session{
		provider: p,
		model:    model,
		config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
			Tools:             []*genai.Tool{googleSearch()},
		},
	}
}

// NewSession opens a conversation from a setup.
func (c ChatSetup) NewSession(p Provider) *Session {
	return NewSession(p, c.Model, c.SystemInstruction)
}

// Send submits a user turn and returns the model's reply. History grows by
// exactly [user, model] on success and is left untouched on failure.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contents := make([]*genai.Content, 0, len(s.history)+1)
	for _, msg := range s.history {
		contents = append(contents, &genai.Content{
			Role:  string(msg.Role),
			Parts: []*genai.Part{{Text: msg.Text}},
		})
	}
	contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{{Text: text}}})

	resp, err := generateContents(ctx, s.provider, CapabilityChat, s.model, contents, s.config)
	if err != nil {
		return "", err
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		log.Warn().Int("turn", len(s.history)/2+1).Msg("Empty chat reply, using placeholder")
		reply = PlaceholderReply
	}

	s.history = append(s.history,
		brand.ChatMessage{Role: brand.RoleUser, Text: text},
		brand.ChatMessage{Role: brand.RoleModel, Text: reply},
	)
	log.Debug().Int("history", len(s.history)).Msg("Chat turn complete")
	return reply, nil
}

// History returns a copy of the conversation so far.
func (s *Session) History() []brand.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]brand.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}
