package chat_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/brand"
	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/chat/chattest"
)

func TestSessionTwoTurns(t *testing.T) {
	p := &chattest.Provider{Replies: []chattest.Reply{
		{Resp: chattest.Text("Post at 7pm.")},
		{Resp: chattest.Text("Use #MakeInIndia.")},
	}}
	s := chat.NewSession(p, chat.ModelGemini3ProPreview, "You are Kalki")

	_, err := s.Send(context.Background(), "When should I post?")
	require.NoError(t, err)
	reply, err := s.Send(context.Background(), "Which hashtag?")
	require.NoError(t, err)
	assert.Equal(t, "Use #MakeInIndia.", reply)

	assert.Equal(t, []brand.ChatMessage{
		{Role: brand.RoleUser, Text: "When should I post?"},
		{Role: brand.RoleModel, Text: "Post at 7pm."},
		{Role: brand.RoleUser, Text: "Which hashtag?"},
		{Role: brand.RoleModel, Text: "Use #MakeInIndia."},
	}, s.History())

	calls := p.Calls()
	require.Len(t, calls, 2)
	second := calls[1]
	require.Len(t, second.Contents, 3)
	assert.Equal(t, genai.RoleUser, second.Contents[0].Role)
	assert.Equal(t, genai.RoleModel, second.Contents[1].Role)
	assert.Equal(t, "Which hashtag?", second.Prompt())
	assert.Equal(t, "You are Kalki", second.Config.SystemInstruction.Parts[0].Text)
	assert.NotNil(t, second.Config.Tools[0].GoogleSearch)
}

func TestSessionFailureKeepsHistory(t *testing.T) {
	p := &chattest.Provider{Replies: []chattest.Reply{
		{Resp: chattest.Text("First answer")},
		{Err: errors.New("network down")},
	}}
	s := chat.NewSession(p, "m", "sys")

	_, err := s.Send(context.Background(), "one")
	require.NoError(t, err)
	_, err = s.Send(context.Background(), "two")
	require.Error(t, err)

	assert.Equal(t, []brand.ChatMessage{
		{Role: brand.RoleUser, Text: "one"},
		{Role: brand.RoleModel, Text: "First answer"},
	}, s.History())
}

func TestSessionEmptyReplyPlaceholder(t *testing.T) {
	p := &chattest.Provider{Replies: []chattest.Reply{{Resp: chattest.Text("  ")}}}
	s := chat.NewSession(p, "m", "sys")

	reply, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, chat.PlaceholderReply, reply)

	_, err = s.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)
	assert.Len(t, s.History(), 2)
}

func TestSessionSerializesConcurrentSends(t *testing.T) {
	p := &chattest.Provider{Handler: func(c chattest.Call) (*genai.GenerateContentResponse, error) {
		return chattest.Text("re: " + c.Prompt()), nil
	}}
	s := chat.NewSession(p, "m", "sys")

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Send(context.Background(), fmt.Sprintf("q%d", i))
		}()
	}
	wg.Wait()

	history := s.History()
	require.Len(t, history, 16)
	for i := 0; i < len(history); i += 2 {
		assert.Equal(t, brand.RoleUser, history[i].Role)
		assert.Equal(t, brand.RoleModel, history[i+1].Role)
		assert.Equal(t, "re: "+history[i].Text, history[i+1].Text)
	}
	for i, call := range p.Calls() {
		assert.Len(t, call.Contents, 2*i+1)
	}
}

func TestHistoryIsCopy(t *testing.T) {
	p := &chattest.Provider{Replies: []chattest.Reply{{Resp: chattest.Text("a")}}}
	s := chat.NewSession(p, "m", "sys")
	_, err := s.Send(context.Background(), "q")
	require.NoError(t, err)

	h := s.History()
	h[0].Text = "mutated"
	assert.Equal(t, "q", s.History()[0].Text)
}
