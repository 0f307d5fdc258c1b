// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/modal"
	"github.com/jeranaias/chartpad/internal/selection"
)

// =============================================================================
// MODAL LIFECYCLE
// =============================================================================

func (s *Session) openModal(payload document.Payload, editingID string) error {
	form, err := modal.NewForm(payload, editingID)
	if err != nil {
		return editErr("modal", err)
	}
	s.form = form
	s.menu.Close()
	s.composer = nil
	s.logger.Printf("MODAL_OPEN | kind=%s editing=%t", form.Kind(), form.Editing())
	if s.hooks.OnModalOpen != nil {
		s.hooks.OnModalOpen(form)
	}
	return nil
}

func (s *Session) closeModal(confirmed bool) {
	if s.form == nil {
		return
	}
	s.logger.Printf("MODAL_CLOSE | kind=%s confirmed=%t", s.form.Kind(), confirmed)
	s.form = nil
	if s.hooks.OnModalClose != nil {
		s.hooks.OnModalClose(confirmed)
	}
}

// abandonModal drops an open modal without committing it.
func (s *Session) abandonModal() {
	if s.form == nil {
		return
	}
	if !s.form.Editing() {
		s.tracker.Discard()
	}
	s.closeModal(false)
}

// BeginEdit opens the appointment or order card with the given segment ID
// in its modal. Any modal already open is abandoned. A card whose stored
// payload is malformed is not opened and nothing changes.
func (s *Session) BeginEdit(id string) error {
	idx := s.doc.IndexOf(id)
	seg, ok := s.doc.At(idx)
	if !ok {
		s.logger.Printf("EDIT_ABORTED | id=%s reason=not_found", id)
		return editErr("begin edit", ErrEditTargetMissing)
	}
	if !modal.Editable(seg.Kind()) {
		return editErr("begin edit", fmt.Errorf("%w: %s", ErrNotEditable, seg.Kind()))
	}
	if err := seg.Payload.Validate(); err != nil {
		s.logger.Printf("EDIT_ABORTED | id=%s kind=%s error=%v", id, seg.Kind(), err)
		return editErr("begin edit", fmt.Errorf("%w: %w", ErrMalformedPayload, err))
	}

	s.abandonModal()
	s.tracker.Clear()
	return s.openModal(seg.Payload, id)
}

// ConfirmModal confirms the open modal with its current form payload.
func (s *Session) ConfirmModal() error {
	if s.form == nil {
		return editErr("confirm", ErrNoModal)
	}
	return s.ResolveEdit(s.form.Payload())
}

// ResolveEdit confirms the open modal with payload. An edit replaces the
// card in place, keeping its ID; a fresh insertion goes where the caret was
// when the modal opened. An incomplete payload keeps the modal open.
func (s *Session) ResolveEdit(payload document.Payload) error {
	if s.form == nil {
		return editErr("confirm", ErrNoModal)
	}
	if payload == nil || payload.Kind() != s.form.Kind() {
		return editErr("confirm", fmt.Errorf("%w: expected %s payload", ErrInvalidPayload, s.form.Kind()))
	}
	seg, err := document.NewObject(payload)
	if err != nil {
		s.logger.Printf("MODAL_INVALID | kind=%s error=%v", payload.Kind(), err)
		return editErr("confirm", err)
	}

	if s.form.Editing() {
		return s.replaceEdited(seg)
	}
	return s.insertDeferred(seg)
}

func (s *Session) replaceEdited(seg document.Segment) error {
	id := s.form.EditingID
	idx := s.doc.IndexOf(id)
	if idx < 0 {
		s.logger.Printf("EDIT_ABORTED | id=%s reason=target_missing", id)
		s.closeModal(false)
		s.setCaret(s.doc.End())
		return editErr("confirm", ErrEditTargetMissing)
	}

	seg.ID = id
	if err := s.doc.ReplaceSegment(idx, seg); err != nil {
		return editErr("confirm", err)
	}
	s.logger.Printf("EDIT_RESOLVED | id=%s kind=%s", id, seg.Kind())
	s.closeModal(true)
	s.setCaret(s.after(idx))
	return nil
}

func (s *Session) insertDeferred(seg document.Segment) error {
	r, err := s.tracker.Restore(s.doc)
	switch {
	case err == nil:
		p, derr := s.doc.DeleteRange(r)
		if derr != nil {
			return editErr("confirm", derr)
		}
		if ierr := s.insertObject(p, seg); ierr != nil {
			return editErr("confirm", ierr)
		}
		s.closeModal(true)
		return nil

	case errors.Is(err, selection.ErrStale):
		s.logger.Printf("SAVED_RANGE_STALE | kind=%s error=%v placing=end", seg.Kind(), err)
		if ierr := s.insertObject(s.doc.End(), seg); ierr != nil {
			return editErr("confirm", ierr)
		}
		s.closeModal(true)
		return editErr("confirm", ErrStaleSavedRange)

	default:
		s.logger.Printf("INSERT_DROPPED | kind=%s reason=no_saved_range", seg.Kind())
		s.closeModal(false)
		s.setCaret(s.doc.End())
		return editErr("confirm", ErrNoActiveRange)
	}
}

// CancelEdit closes the open modal without touching the document. The caret
// returns to where it was before the modal opened, or after the edited card.
func (s *Session) CancelEdit() {
	if s.form == nil {
		return
	}
	if s.form.Editing() {
		if idx := s.doc.IndexOf(s.form.EditingID); idx >= 0 {
			s.setCaret(s.after(idx))
		} else {
			s.setCaret(s.doc.End())
		}
	} else if _, err := s.tracker.Restore(s.doc); err != nil {
		s.setCaret(s.doc.End())
	}
	s.closeModal(false)
}

// =============================================================================
// AI PROPOSAL
// =============================================================================

// CreateOrReplaceAiProposal removes any existing proposal and appends a new
// one at the end of the document. It returns the new segment's ID.
func (s *Session) CreateOrReplaceAiProposal(requestID string, items []string) (string, error) {
	seg, err := document.NewObject(document.AiProposal{RequestID: requestID, Items: items})
	if err != nil {
		return "", editErr("proposal", err)
	}

	s.menu.Close()
	if idx := s.doc.Find(document.KindAiProposal); idx >= 0 {
		old, _ := s.removeSegment(idx)
		s.logger.Printf("PROPOSAL_REPLACED | old=%s", old.ID)
	}
	if _, err := s.doc.InsertAt(s.doc.End(), seg); err != nil {
		return "", editErr("proposal", err)
	}
	s.revalidate()
	s.logger.Printf("PROPOSAL_CREATED | id=%s items=%d", seg.ID, len(items))
	return seg.ID, nil
}

// Proposal returns the pending AI proposal, if any.
func (s *Session) Proposal() (document.AiProposal, bool) {
	seg, ok := s.doc.At(s.doc.Find(document.KindAiProposal))
	if !ok {
		return document.AiProposal{}, false
	}
	p, ok := seg.Payload.(document.AiProposal)
	return p, ok
}

// ApproveAiProposal replaces the proposal with its items as plain text and
// reports the items through OnProposalApproved.
func (s *Session) ApproveAiProposal() error {
	idx := s.doc.Find(document.KindAiProposal)
	seg, ok := s.doc.At(idx)
	if !ok {
		return editErr("approve", ErrEditTargetMissing)
	}
	p, _ := seg.Payload.(document.AiProposal)

	s.menu.Close()
	if err := s.doc.ReplaceSegment(idx, document.TextRun(strings.Join(p.Items, "\n"))); err != nil {
		return editErr("approve", err)
	}
	s.revalidate()
	s.logger.Printf("PROPOSAL_APPROVED | id=%s items=%d", seg.ID, len(p.Items))
	if s.hooks.OnProposalApproved != nil {
		s.hooks.OnProposalApproved(p.Items)
	}
	return nil
}

// DiscardAiProposal removes the proposal. It is a no-op when there is none.
func (s *Session) DiscardAiProposal() {
	idx := s.doc.Find(document.KindAiProposal)
	if idx < 0 {
		return
	}
	s.menu.Close()
	removed, _ := s.removeSegment(idx)
	s.logger.Printf("PROPOSAL_DISCARDED | id=%s", removed.ID)
}

// =============================================================================
// MENTIONS AND ATTACHMENTS
// =============================================================================

// InsertMention inserts a mention tag at the caret.
func (s *Session) InsertMention(name string) error {
	return s.insertAtCaret("mention", document.Mention{Name: name})
}

// InsertAttachment inserts an attachment tag at the caret.
func (s *Session) InsertAttachment(name string, size int64) error {
	return s.insertAtCaret("attachment", document.Attachment{Name: name, Size: size})
}

func (s *Session) insertAtCaret(op string, payload document.Payload) error {
	r, ok := s.tracker.Active()
	if !ok {
		s.logger.Printf("INSERT_DROPPED | op=%s reason=no_active_range", op)
		return editErr(op, ErrNoActiveRange)
	}
	if err := payload.Validate(); err != nil {
		return editErr(op, err)
	}
	s.menu.Close()
	s.composer = nil
	p, err := s.doc.DeleteRange(r)
	if err != nil {
		return editErr(op, err)
	}
	return s.insertPayload(op, p, payload)
}
