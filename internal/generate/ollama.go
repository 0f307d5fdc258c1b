// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError is an error talking to the Ollama server.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches client errors by type, so wrapped sentinels compare equal.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	return ok && t.Type == e.Type
}

// ErrorType categorizes client errors.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeModelNotFound
	ErrTypeInvalidResponse
)

// Sentinel errors for errors.Is checks.
var (
	ErrNotRunning    = &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running"}
	ErrTimeout       = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrModelNotFound = &ClientError{Type: ErrTypeModelNotFound, Message: "model not found"}
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// OllamaConfig configures the Ollama generator.
type OllamaConfig struct {
	// BaseURL is the server address (default: http://127.0.0.1:11434)
	BaseURL string

	// Model is the model to use (default: "llama3.1:8b")
	Model string

	// Timeout for a whole request (default: 60s)
	Timeout time.Duration
}

// DefaultOllamaConfig returns the default configuration.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		BaseURL: "http://127.0.0.1:11434",
		Model:   "llama3.1:8b",
		Timeout: 60 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Ollama generates content with a local Ollama server. The model is asked
// for a JSON object {"kind": ..., "items": [...]}.
type Ollama struct {
	config     OllamaConfig
	httpClient *http.Client
}

// NewOllama creates a generator, filling zero config fields with defaults.
func NewOllama(config OllamaConfig) *Ollama {
	def := DefaultOllamaConfig()
	if config.BaseURL == "" {
		config.BaseURL = def.BaseURL
	}
	if config.Model == "" {
		config.Model = def.Model
	}
	if config.Timeout == 0 {
		config.Timeout = def.Timeout
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Ollama{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

type apiError struct {
	Error string `json:"error"`
}

// generated is the JSON shape the model is asked to produce.
type generated struct {
	Kind  string   `json:"kind"`
	Items []string `json:"items"`
}

const systemPrompt = `You assist a clinician writing a visit note. ` +
	`Reply with a JSON object {"kind": K, "items": [...]}. ` +
	`K is "proposal" for suggested actions (one short action per item), ` +
	`"transcript" for transcribed dictation, or "note" for drafted note text.`

// Generate sends a non-streaming chat request.
func (o *Ollama) Generate(ctx context.Context, req Request) (Response, error) {
	user := req.Prompt
	if req.Context != "" {
		user = "Note so far:\n" + req.Context + "\n\nRequest: " + req.Prompt
	}

	body, err := json.Marshal(chatRequest{
		Model: o.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: user},
		},
		Stream: false,
		Format: "json",
	})
	if err != nil {
		return Response{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.config.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return Response{}, &ClientError{Type: ErrTypeUnknown, Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Response{}, context.Canceled
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return Response{}, ErrTimeout
		}
		return Response{}, &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Response{}, ErrModelNotFound
	}
	if resp.StatusCode != http.StatusOK {
		var e apiError
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return Response{}, &ClientError{Type: ErrTypeInvalidResponse, Message: e.Error}
		}
		return Response{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "chat request failed: " + resp.Status}
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return Response{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return parseGenerated(req, chat.Message.Content)
}

// parseGenerated decodes model output. Output that is not the requested
// JSON is treated as plain lines of the kind implied by the prompt.
func parseGenerated(req Request, content string) (Response, error) {
	out := Response{RequestID: req.ID}

	var g generated
	if err := json.Unmarshal([]byte(content), &g); err == nil && len(g.Items) > 0 {
		kind, err := ParseKind(g.Kind)
		if err != nil {
			kind = ClassifyPrompt(req.Prompt)
		}
		out.Kind = kind
		out.Items = cleanItems(g.Items)
	} else {
		out.Kind = ClassifyPrompt(req.Prompt)
		out.Items = cleanItems(strings.Split(content, "\n"))
	}

	if len(out.Items) == 0 {
		return Response{}, ErrEmptyResponse
	}
	return out, nil
}

func cleanItems(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "-*•"))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
