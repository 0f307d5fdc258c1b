// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// CANNED
// =============================================================================

func TestClassifyPrompt(t *testing.T) {
	tests := []struct {
		prompt string
		want   Kind
	}{
		{"suggest orders", KindProposal},
		{"Transcribe recording", KindTranscript},
		{"draft assessment", KindNote},
		{"", KindProposal},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ClassifyPrompt(tc.prompt), tc.prompt)
	}
}

func TestCanned(t *testing.T) {
	c := NewCanned(0)

	resp, err := c.Generate(context.Background(), Request{ID: "r1", Prompt: "suggest orders"})
	require.NoError(t, err)
	assert.Equal(t, "r1", resp.RequestID)
	assert.Equal(t, KindProposal, resp.Kind)
	assert.NotEmpty(t, resp.Items)

	resp, err = c.Generate(context.Background(), Request{Prompt: "transcribe"})
	require.NoError(t, err)
	assert.Equal(t, KindTranscript, resp.Kind)

	c.Note = nil
	_, err = c.Generate(context.Background(), Request{Prompt: "draft"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestCanned_Cancel(t *testing.T) {
	c := NewCanned(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := c.Generate(ctx, Request{Prompt: "suggest"})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Generate did not return after cancel")
	}
}

// =============================================================================
// THROTTLED
// =============================================================================

func TestThrottled(t *testing.T) {
	th := NewThrottled(NewCanned(0), 1)

	_, err := th.Generate(context.Background(), Request{Prompt: "suggest"})
	require.NoError(t, err, "first request uses the burst")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = th.Generate(ctx, Request{Prompt: "suggest"})
	assert.Error(t, err, "second request within the minute exceeds the deadline")
}

func TestThrottled_Unlimited(t *testing.T) {
	th := NewThrottled(NewCanned(0), 0)
	for i := 0; i < 5; i++ {
		_, err := th.Generate(context.Background(), Request{Prompt: "suggest"})
		require.NoError(t, err)
	}
}

// =============================================================================
// OLLAMA
// =============================================================================

func TestOllama_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "json", req.Format)

		json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{Role: "assistant", Content: `{"kind":"proposal","items":["Order CBC"," - Recheck BP "]}`},
			Done:    true,
		})
	}))
	defer srv.Close()

	o := NewOllama(OllamaConfig{BaseURL: srv.URL + "/", Model: "test-model"})
	resp, err := o.Generate(context.Background(), Request{ID: "r1", Prompt: "suggest", Context: "Patient stable."})
	require.NoError(t, err)
	assert.Equal(t, Response{RequestID: "r1", Kind: KindProposal, Items: []string{"Order CBC", "Recheck BP"}}, resp)
}

func TestOllama_Errors(t *testing.T) {
	t.Run("model not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := NewOllama(OllamaConfig{BaseURL: srv.URL}).Generate(context.Background(), Request{Prompt: "x"})
		assert.ErrorIs(t, err, ErrModelNotFound)
	})

	t.Run("server error message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"out of memory"}`))
		}))
		defer srv.Close()

		_, err := NewOllama(OllamaConfig{BaseURL: srv.URL}).Generate(context.Background(), Request{Prompt: "x"})
		var ce *ClientError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "out of memory", ce.Message)
	})

	t.Run("not running", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewOllama(OllamaConfig{BaseURL: url}).Generate(context.Background(), Request{Prompt: "x"})
		assert.ErrorIs(t, err, ErrNotRunning)
	})
}

func TestParseGenerated_PlainLines(t *testing.T) {
	resp, err := parseGenerated(Request{Prompt: "transcribe"}, "- first line\n\n* second line\n")
	require.NoError(t, err)
	assert.Equal(t, KindTranscript, resp.Kind)
	assert.Equal(t, []string{"first line", "second line"}, resp.Items)

	_, err = parseGenerated(Request{}, "   \n")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
