// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package selection

import (
	"errors"
	"fmt"

	"github.com/jeranaias/chartpad/internal/document"
)

var (
	// ErrNoSavedRange is returned by Restore when nothing was saved.
	ErrNoSavedRange = errors.New("no saved range")

	// ErrStale is returned by Restore when the document changed after Save.
	ErrStale = errors.New("saved range is stale")
)

// SavedRange is a serializable snapshot of a range and the document
// revision it belongs to.
type SavedRange struct {
	Range    document.Range `json:"range"`
	Revision uint64         `json:"revision"`
}

// Tracker holds the active range (if any) and at most one saved range.
type Tracker struct {
	active *document.Range
	saved  *SavedRange
}

// NewTracker creates a tracker with a caret at p.
func NewTracker(p document.Position) *Tracker {
	r := document.Caret(p)
	return &Tracker{active: &r}
}

// Active returns the live range.
func (t *Tracker) Active() (document.Range, bool) {
	if t.active == nil {
		return document.Range{}, false
	}
	return *t.active, true
}

// Caret returns the focus of the live range.
func (t *Tracker) Caret() (document.Position, bool) {
	if t.active == nil {
		return document.Position{}, false
	}
	return t.active.Focus, true
}

// Collapse places a caret at p.
func (t *Tracker) Collapse(p document.Position) {
	r := document.Caret(p)
	t.active = &r
}

// Select sets the live range.
func (t *Tracker) Select(r document.Range) {
	t.active = &r
}

// Clear drops the live range; there is no caret until one is placed again.
func (t *Tracker) Clear() {
	t.active = nil
}

// Save snapshots the live range at the given revision. It replaces any
// earlier saved range. Without a live range nothing is saved.
func (t *Tracker) Save(rev uint64) (SavedRange, bool) {
	if t.active == nil {
		return SavedRange{}, false
	}
	t.saved = &SavedRange{Range: *t.active, Revision: rev}
	return *t.saved, true
}

// Saved returns the pending saved range.
func (t *Tracker) Saved() (SavedRange, bool) {
	if t.saved == nil {
		return SavedRange{}, false
	}
	return *t.saved, true
}

// Discard drops the saved range.
func (t *Tracker) Discard() {
	t.saved = nil
}

// Restore consumes the saved range and re-selects it in doc. The saved range
// is cleared whether or not restoring succeeds.
func (t *Tracker) Restore(doc *document.Document) (document.Range, error) {
	if t.saved == nil {
		return document.Range{}, ErrNoSavedRange
	}
	saved := *t.saved
	t.saved = nil

	if saved.Revision != doc.Revision() {
		return document.Range{}, fmt.Errorf("%w: saved at revision %d, document at %d",
			ErrStale, saved.Revision, doc.Revision())
	}
	if err := doc.ValidateRange(saved.Range); err != nil {
		return document.Range{}, fmt.Errorf("%w: %v", ErrStale, err)
	}
	t.Select(saved.Range)
	return saved.Range, nil
}
