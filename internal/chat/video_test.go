package chat_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/chat/chattest"
)

func fastPoll() chat.PollOptions {
	return chat.PollOptions{Interval: time.Millisecond, MaxAttempts: 50, MaxDuration: 5 * time.Second}
}

func TestGenerateVideoPollsUntilDone(t *testing.T) {
	const pending = 3
	ops := []*genai.GenerateVideosOperation{chattest.PendingOp("op")}
	for range pending {
		ops = append(ops, chattest.PendingOp("op"))
	}
	ops = append(ops, chattest.DoneOp("op", "https://generativelanguage.googleapis.com/v1beta/files/v1:download?alt=media"))
	p := &chattest.Provider{VideoOps: ops}

	result, err := chat.GenerateVideo(context.Background(), p, chat.ModelPolicy{}, "Monsoon over Marine Drive", chat.AspectPortrait, fastPoll())
	require.NoError(t, err)
	assert.Contains(t, result.URI, "files/v1:download")
	assert.LessOrEqual(t, p.VideoFetches(), pending+1)
	assert.Equal(t, pending+1, result.Polls)
	assert.Equal(t, "Monsoon over Marine Drive", p.VideoPrompt)
}

func TestGenerateVideoAlreadyDone(t *testing.T) {
	p := &chattest.Provider{VideoOps: []*genai.GenerateVideosOperation{chattest.DoneOp("op", "https://v/1")}}

	result, err := chat.GenerateVideo(context.Background(), p, chat.ModelPolicy{}, "x", chat.AspectLandscape, fastPoll())
	require.NoError(t, err)
	assert.Equal(t, "https://v/1", result.URI)
	assert.Zero(t, p.VideoFetches())
}

func TestPollVideoDoneWithoutURI(t *testing.T) {
	p := &chattest.Provider{VideoOps: []*genai.GenerateVideosOperation{chattest.PendingOp("op"), chattest.DoneOp("op", "")}}

	result, err := chat.PollVideo(context.Background(), p, chattest.PendingOp("op"), fastPoll())
	assert.ErrorIs(t, err, chat.ErrNoVideoURI)
	assert.Empty(t, result.URI)
}

func TestPollVideoNilOperation(t *testing.T) {
	p := &chattest.Provider{}

	_, err := chat.PollVideo(context.Background(), p, nil, fastPoll())
	assert.ErrorIs(t, err, chat.ErrEmptyResponse)
	assert.Zero(t, p.VideoFetches())
}

func TestPollVideoOperationError(t *testing.T) {
	p := &chattest.Provider{VideoOps: []*genai.GenerateVideosOperation{chattest.PendingOp("op"), chattest.FailedOp("op", 3, "prompt blocked")}}

	_, err := chat.PollVideo(context.Background(), p, chattest.PendingOp("op"), fastPoll())
	var failed *chat.VideoFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 3, failed.Code)
	assert.Equal(t, "prompt blocked", failed.Message)
}

func TestPollVideoMaxAttempts(t *testing.T) {
	p := &chattest.Provider{VideoOps: []*genai.GenerateVideosOperation{chattest.PendingOp("op")}}
	opts := fastPoll()
	opts.MaxAttempts = 4

	_, err := chat.PollVideo(context.Background(), p, chattest.PendingOp("op"), opts)
	assert.ErrorIs(t, err, chat.ErrVideoTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, chat.IsVideoTimeout(err))
	assert.Equal(t, 4, p.VideoFetches())
}

func TestPollVideoMaxDuration(t *testing.T) {
	p := &chattest.Provider{VideoOps: []*genai.GenerateVideosOperation{chattest.PendingOp("op")}}
	opts := chat.PollOptions{Interval: time.Hour, MaxAttempts: 10, MaxDuration: 20 * time.Millisecond}

	_, err := chat.PollVideo(context.Background(), p, chattest.PendingOp("op"), opts)
	assert.ErrorIs(t, err, chat.ErrVideoTimeout)
	assert.Zero(t, p.VideoFetches())
}

func TestPollVideoCancelled(t *testing.T) {
	p := &chattest.Provider{VideoOps: []*genai.GenerateVideosOperation{chattest.PendingOp("op")}}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	opts := chat.PollOptions{Interval: 5 * time.Millisecond, MaxAttempts: 100000, MaxDuration: time.Minute}
	_, err := chat.PollVideo(ctx, p, chattest.PendingOp("op"), opts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, chat.IsVideoTimeout(err))
}

func TestGenerateVideoSubmitError(t *testing.T) {
	boom := errors.New("veo unavailable")
	p := &chattest.Provider{VideoErr: boom}

	_, err := chat.GenerateVideo(context.Background(), p, chat.ModelPolicy{}, "x", "", fastPoll())
	assert.ErrorIs(t, err, boom)

	_, err = chat.GenerateVideo(context.Background(), p, chat.ModelPolicy{}, "  ", "", fastPoll())
	assert.ErrorIs(t, err, chat.ErrEmptyPrompt)
}

func TestAuthorizedVideoURL(t *testing.T) {
	got, err := chat.AuthorizedVideoURL("https://generativelanguage.googleapis.com/v1beta/files/abc:download?alt=media", "SECRET")
	require.NoError(t, err)
	assert.Contains(t, got, "alt=media")
	assert.Contains(t, got, "key=SECRET")

	_, err = chat.AuthorizedVideoURL("", "SECRET")
	assert.ErrorIs(t, err, chat.ErrNoVideoURI)
}
