// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/menu"
	"github.com/jeranaias/chartpad/internal/modal"
)

// ModalView is the read-only state of an open modal.
type ModalView struct {
	Kind      document.Kind
	EditingID string
	Fields    []modal.Field
	Err       string
}

// View is a read-only projection of the session for rendering.
type View struct {
	Segments []document.Segment
	Revision uint64

	// Selection is nil while focus is in a modal.
	Selection *document.Range

	Menu        menu.State
	Composer    *CommentComposer
	Modal       *ModalView
	Generating  bool
	HasProposal bool
}

// Snapshot returns the current view.
func (s *Session) Snapshot() View {
	v := View{
		Segments:    s.doc.Segments(),
		Revision:    s.doc.Revision(),
		Menu:        s.menu.State(),
		Generating:  s.gen.busy(),
		HasProposal: s.hasProposal(),
	}
	if r, ok := s.tracker.Active(); ok {
		v.Selection = &r
	}
	if c, ok := s.Composer(); ok {
		v.Composer = &c
	}
	if s.form != nil {
		mv := &ModalView{
			Kind:      s.form.Kind(),
			EditingID: s.form.EditingID,
			Fields:    s.form.Fields(),
		}
		if err := s.form.Validate(); err != nil {
			mv.Err = err.Error()
		}
		v.Modal = mv
	}
	return v
}
