// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// REQUEST / RESPONSE
// =============================================================================

// Kind is the kind of generated content.
type Kind string

const (
	// KindProposal is a batch of suggested actions shown as an AI proposal.
	KindProposal Kind = "proposal"

	// KindTranscript is transcribed dictation appended to the note.
	KindTranscript Kind = "transcript"

	// KindNote is drafted note text appended to the note.
	KindNote Kind = "note"
)

// ParseKind parses a response kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindProposal, KindTranscript, KindNote:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Request asks a service for content.
type Request struct {
	// ID correlates the response with the request.
	ID string

	// Prompt is the instruction, e.g. "suggest orders".
	Prompt string

	// Context is the plain text of the note so far.
	Context string
}

// Response is the content produced for a request.
type Response struct {
	RequestID string
	Kind      Kind
	Items     []string
}

// Service generates content.
type Service interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

var (
	// ErrUnknownKind is returned for unrecognized response kinds.
	ErrUnknownKind = errors.New("unknown response kind")

	// ErrEmptyResponse is returned when a service produced no items.
	ErrEmptyResponse = errors.New("empty response")
)

// ClassifyPrompt picks the response kind implied by a prompt.
func ClassifyPrompt(prompt string) Kind {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "transcri"), strings.Contains(p, "dictat"), strings.Contains(p, "record"):
		return KindTranscript
	case strings.Contains(p, "draft"), strings.Contains(p, "summar"), strings.Contains(p, "write"):
		return KindNote
	}
	return KindProposal
}
