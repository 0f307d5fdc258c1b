// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/menu"
	"github.com/jeranaias/chartpad/internal/util"
)

// =============================================================================
// COMMENT ANNOTATION
// =============================================================================

// CommentComposer is the prompt shown for a non-collapsed selection.
type CommentComposer struct {
	Range   document.Range
	Preview string
	Anchor  menu.Point

	// Revision is the document revision the selection belongs to.
	Revision uint64
}

// Comment is a submitted comment thread.
type Comment struct {
	ID        string
	SegmentID string
	Text      string
	Body      string
	Static    bool
	CreatedAt time.Time
}

// SetSelection sets the live range. A non-collapsed range made while no
// menu is open opens the comment composer with a snapshot of the selected
// text; a collapsed range dismisses it.
func (s *Session) SetSelection(r document.Range) error {
	if err := s.doc.ValidateRange(r); err != nil {
		return editErr("select", err)
	}
	s.tracker.Select(r)
	s.composer = nil

	if r.Collapsed() || s.menu.IsOpen() {
		return nil
	}
	start, _ := r.Ordered()
	s.composer = &CommentComposer{
		Range:    r,
		Preview:  s.doc.TextIn(r),
		Anchor:   s.anchor(s.doc, start),
		Revision: s.doc.Revision(),
	}
	return nil
}

// Composer returns the open comment composer.
func (s *Session) Composer() (CommentComposer, bool) {
	if s.composer == nil {
		return CommentComposer{}, false
	}
	return *s.composer, true
}

// CancelComment closes the composer without changing the document.
func (s *Session) CancelComment() {
	s.composer = nil
}

// SubmitComment attaches body to the composer's selection. A selection
// inside one text run is wrapped in a highlight carrying that text. Any
// other selection is replaced by a static highlight holding its flattened
// text.
func (s *Session) SubmitComment(body string) (Comment, error) {
	c := s.composer
	if c == nil {
		return Comment{}, editErr("comment", ErrNoActiveRange)
	}
	if strings.TrimSpace(body) == "" {
		return Comment{}, editErr("comment", ErrInvalidPayload)
	}
	if c.Revision != s.doc.Revision() {
		s.composer = nil
		s.logger.Printf("INSERT_DROPPED | op=comment reason=selection_changed")
		return Comment{}, editErr("comment", ErrNoActiveRange)
	}

	highlight := document.CommentHighlight{
		CommentID: uuid.New().String(),
		Text:      c.Preview,
		Body:      body,
		Static:    !s.doc.SingleRun(c.Range),
	}
	if highlight.Static {
		highlight.Text = util.Flatten(c.Preview)
	}
	seg, err := document.NewObject(highlight)
	if err != nil {
		return Comment{}, editErr("comment", err)
	}

	p, err := s.doc.DeleteRange(c.Range)
	if err != nil {
		return Comment{}, editErr("comment", err)
	}
	if err := s.insertObject(p, seg); err != nil {
		return Comment{}, editErr("comment", err)
	}
	s.composer = nil

	comment := Comment{
		ID:        highlight.CommentID,
		SegmentID: seg.ID,
		Text:      highlight.Text,
		Body:      body,
		Static:    highlight.Static,
		CreatedAt: time.Now(),
	}
	s.comments = append(s.comments, comment)
	s.logger.Printf("COMMENT_ADDED | id=%s static=%t", comment.ID, comment.Static)
	return comment, nil
}

// Comments returns the submitted comments in order.
func (s *Session) Comments() []Comment {
	return append([]Comment(nil), s.comments...)
}
