// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/generate"
)

// =============================================================================
// GENERATION
// =============================================================================

// GenerationMsg delivers a generation result to the event loop.
type GenerationMsg struct {
	Token    uint64
	Response generate.Response
	Err      error
}

// RequestGeneration starts a generation request and returns the command that
// runs it. A new request cancels the one in flight; only the result of the
// latest request is applied.
func (s *Session) RequestGeneration(prompt string) tea.Cmd {
	ctx, token := s.gen.begin()

	req := generate.Request{
		ID:      uuid.New().String(),
		Prompt:  prompt,
		Context: s.doc.PlainText(),
	}
	svc := s.generator
	s.logger.Printf("GENERATION_START | token=%d request=%s", token, req.ID)

	return func() tea.Msg {
		resp, err := svc.Generate(ctx, req)
		return GenerationMsg{Token: token, Response: resp, Err: err}
	}
}

// CancelGeneration cancels the request in flight. Its result, if it still
// arrives, is ignored.
func (s *Session) CancelGeneration() {
	if s.gen.invalidate() {
		s.logger.Printf("GENERATION_CANCELED | token=%d", s.gen.latest())
	}
}

// Generating reports whether a request is in flight.
func (s *Session) Generating() bool {
	return s.gen.busy()
}

// HandleGeneration applies a generation result. Proposals replace any
// pending proposal; transcripts and notes are appended as text.
func (s *Session) HandleGeneration(msg GenerationMsg) error {
	if !s.gen.settle(msg.Token) {
		s.logger.Printf("GENERATION_STALE | token=%d latest=%d", msg.Token, s.gen.latest())
		return editErr("generate", ErrStaleGeneration)
	}

	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return nil
		}
		s.logger.Printf("GENERATION_FAILED | token=%d error=%v", msg.Token, msg.Err)
		return editErr("generate", msg.Err)
	}

	resp := msg.Response
	s.logger.Printf("GENERATION_APPLIED | token=%d kind=%s items=%d", msg.Token, resp.Kind, len(resp.Items))
	switch resp.Kind {
	case generate.KindProposal:
		_, err := s.CreateOrReplaceAiProposal(resp.RequestID, resp.Items)
		return err
	case generate.KindTranscript, generate.KindNote:
		return s.appendText(strings.Join(resp.Items, "\n"))
	}
	return editErr("generate", generate.ErrUnknownKind)
}

// appendText adds text at the end of the document on its own line. The
// caret stays where it is.
func (s *Session) appendText(text string) error {
	if text == "" {
		return nil
	}
	if plain := s.doc.PlainText(); plain != "" && !strings.HasSuffix(plain, "\n") {
		text = "\n" + text
	}

	s.menu.Close()
	end := s.doc.End()
	if _, err := s.doc.InsertText(end, text); err != nil {
		return editErr("generate", err)
	}
	s.revalidate()
	return nil
}

// hasProposal reports whether the document holds an AI proposal.
func (s *Session) hasProposal() bool {
	return s.doc.Find(document.KindAiProposal) >= 0
}
