// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"fmt"

	"github.com/jeranaias/chartpad/internal/commands"
	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/menu"
	"github.com/jeranaias/chartpad/internal/trigger"
)

// =============================================================================
// COMMIT / INSERTION ENGINE
// =============================================================================

// CommitCandidate resolves a committed menu candidate into a document
// mutation. The trigger token is always removed first. Deferred commands
// then open a modal and leave the document alone until it is confirmed.
func (s *Session) CommitCandidate(c menu.Candidate, t trigger.Type, token document.Range) error {
	if err := s.doc.ValidateRange(token); err != nil || !s.doc.SingleRun(token) {
		s.logger.Printf("INSERT_DROPPED | op=commit type=%s reason=token_out_of_range", t)
		return editErr("commit", ErrNoActiveRange)
	}

	var cmd *commands.Command
	switch t {
	case trigger.Slash:
		cmd = s.registry.Get(c.ID)
		if cmd == nil {
			cmd = &commands.Command{ID: c.ID, Label: c.Label}
		}
	case trigger.Variable, trigger.Clinical:
	default:
		return editErr("commit", fmt.Errorf("unknown menu type %s", t))
	}

	p, err := s.doc.DeleteRange(token)
	if err != nil {
		return editErr("commit", err)
	}
	s.tracker.Collapse(p)
	s.logger.Printf("COMMIT | type=%s id=%s", t, c.ID)

	switch t {
	case trigger.Slash:
		if cmd.Deferred {
			return s.openDeferred(cmd, p)
		}
		return s.insertPayload("commit", p, document.SlashCard{
			CommandID: cmd.ID,
			TitleText: "Untitled " + cmd.Label,
		})

	case trigger.Variable:
		caret, err := s.doc.InsertText(p, s.patient.Resolve(c.ID, c.Label))
		if err != nil {
			return editErr("commit", err)
		}
		s.setCaret(caret)
		return nil

	default:
		return s.insertPayload("commit", p, document.ClinicalChip{
			Label:    c.Label,
			Category: c.Category,
		})
	}
}

// insertPayload builds an object and inserts it at p.
func (s *Session) insertPayload(op string, p document.Position, payload document.Payload) error {
	seg, err := document.NewObject(payload)
	if err != nil {
		s.logger.Printf("INSERT_DROPPED | op=%s kind=%s error=%v", op, payload.Kind(), err)
		return editErr(op, err)
	}
	if err := s.insertObject(p, seg); err != nil {
		s.logger.Printf("INSERT_DROPPED | op=%s kind=%s error=%v", op, seg.Kind(), err)
		return editErr(op, err)
	}
	return nil
}

// openDeferred saves the caret and opens the modal for a deferred command.
// Focus moves to the modal, so the live caret is cleared.
func (s *Session) openDeferred(cmd *commands.Command, p document.Position) error {
	payload, err := s.defaults.PayloadFor(cmd.Object)
	if err != nil {
		s.logger.Printf("INSERT_DROPPED | op=commit command=%s error=%v", cmd.ID, err)
		return editErr("commit", err)
	}
	s.abandonModal()

	s.tracker.Collapse(p)
	s.tracker.Save(s.doc.Revision())
	s.tracker.Clear()
	return s.openModal(payload, "")
}
