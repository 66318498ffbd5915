// Package chattest provides a scripted in-memory model provider for tests.
package chattest

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// ErrScriptExhausted is returned when a call arrives after every scripted
// reply has been consumed.
var ErrScriptExhausted = errors.New("chattest: no scripted reply left")

// Call records one GenerateContent request.
type Call struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// Prompt returns the first text part of the last content in the call.
func (c Call) Prompt() string {
	if len(c.Contents) == 0 {
		return ""
	}
	for _, part := range c.Contents[len(c.Contents)-1].Parts {
		if part != nil && part.Text != "" {
			return part.Text
		}
	}
	return ""
}

// Reply is one scripted GenerateContent outcome.
type Reply struct {
	Resp *genai.GenerateContentResponse
	Err  error
}

// Provider is a thread-safe fake. GenerateContent is answered by Handler
// when set, otherwise by Replies in order. GenerateVideos returns
// VideoOps[0] and each GetVideosOperation returns the next entry, repeating
// the last one once the script runs out.
type Provider struct {
	Handler func(Call) (*genai.GenerateContentResponse, error)
	Replies []Reply

	VideoOps    []*genai.GenerateVideosOperation
	VideoErr    error
	VideoPrompt string

	mu           sync.Mutex
	calls        []Call
	next         int
	videoFetches int
}

func (p *Provider) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	call := Call{Model: model, Contents: contents, Config: config}

	p.mu.Lock()
	p.calls = append(p.calls, call)
	handler := p.Handler
	var reply Reply
	exhausted := false
	if handler == nil {
		if p.next < len(p.Replies) {
			reply = p.Replies[p.next]
			p.next++
		} else {
			exhausted = true
		}
	}
	p.mu.Unlock()

	if handler != nil {
		return handler(call)
	}
	if exhausted {
		return nil, ErrScriptExhausted
	}
	return reply.Resp, reply.Err
}

func (p *Provider) GenerateVideos(ctx context.Context, model, prompt string, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.VideoPrompt = prompt
	if p.VideoErr != nil {
		return nil, p.VideoErr
	}
	if len(p.VideoOps) == 0 {
		return nil, ErrScriptExhausted
	}
	return p.VideoOps[0], nil
}

func (p *Provider) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.videoFetches++
	if len(p.VideoOps) == 0 {
		return nil, ErrScriptExhausted
	}
	i := min(p.videoFetches, len(p.VideoOps)-1)
	return p.VideoOps[i], nil
}

// Calls returns a copy of the recorded content calls.
func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Call(nil), p.calls...)
}

// CallCount returns how many content calls were made.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// VideoFetches returns how many status fetches the poll loop made.
func (p *Provider) VideoFetches() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.videoFetches
}

// Text builds a response whose first candidate carries text.
func Text(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(text, genai.RoleModel)}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: int32(len(text)),
		},
	}
}

// JSON builds a text response holding v marshaled as JSON.
func JSON(v any) *genai.GenerateContentResponse {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return Text(string(data))
}

// Image builds a response with a text part followed by an inline image.
func Image(data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{
			Role: genai.RoleModel,
			Parts: []*genai.Part{
				{Text: "Here is your poster."},
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}},
			},
		}}},
	}
}

// WithWebSources attaches web grounding chunks (title, uri pairs) to resp.
func WithWebSources(resp *genai.GenerateContentResponse, pairs ...string) *genai.GenerateContentResponse {
	meta := &genai.GroundingMetadata{}
	for i := 0; i+1 < len(pairs); i += 2 {
		meta.GroundingChunks = append(meta.GroundingChunks, &genai.GroundingChunk{
			Web: &genai.GroundingChunkWeb{Title: pairs[i], URI: pairs[i+1]},
		})
	}
	resp.Candidates[0].GroundingMetadata = meta
	return resp
}

// PendingOp is an unfinished video operation.
func PendingOp(name string) *genai.GenerateVideosOperation {
	return &genai.GenerateVideosOperation{Name: name}
}

// DoneOp is a finished video operation. An empty uri models a completed
// operation with no video.
func DoneOp(name, uri string) *genai.GenerateVideosOperation {
	op := &genai.GenerateVideosOperation{Name: name, Done: true, Response: &genai.GenerateVideosResponse{}}
	if uri != "" {
		op.Response.GeneratedVideos = []*genai.GeneratedVideo{{Video: &genai.Video{URI: uri}}}
	}
	return op
}

// FailedOp is a finished operation carrying an RPC status.
func FailedOp(name string, code int, message string) *genai.GenerateVideosOperation {
	return &genai.GenerateVideosOperation{
		Name:  name,
		Done:  true,
		Error: map[string]any{"code": float64(code), "message": message},
	}
}

// Contains reports whether the call's prompt contains every fragment.
func (c Call) Contains(fragments ...string) bool {
	prompt := c.Prompt()
	for _, f := range fragments {
		if !strings.Contains(prompt, f) {
			return false
		}
	}
	return true
}
