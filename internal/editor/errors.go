// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"errors"

	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/menu"
)

// Recoverable session errors.
var (
	// ErrMalformedPayload: an object's stored payload failed validation when
	// re-opened for editing. The edit is aborted.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrNoActiveRange: an insertion was attempted without a caret.
	ErrNoActiveRange = errors.New("no active range")

	// ErrStaleSavedRange: the document changed while a modal was open. The
	// object was inserted at the end of the document instead.
	ErrStaleSavedRange = errors.New("saved range is stale")

	// ErrEmptyCandidates: a menu was committed with nothing selected. The
	// session logs it and closes the menu without reporting an error.
	ErrEmptyCandidates = menu.ErrNoCandidate

	// ErrInvalidPayload: a modal was confirmed with an incomplete payload.
	// The modal stays open.
	ErrInvalidPayload = document.ErrInvalidPayload

	// ErrNotEditable: the object kind has no modal.
	ErrNotEditable = errors.New("object is not editable")

	// ErrEditTargetMissing: the object being edited no longer exists.
	ErrEditTargetMissing = errors.New("edit target no longer exists")

	// ErrNoModal: confirm was called with no modal open.
	ErrNoModal = errors.New("no modal open")

	// ErrStaleGeneration: a generation result arrived after a newer request
	// or a cancel and was ignored.
	ErrStaleGeneration = errors.New("stale generation result")
)

// EditError records the session operation that failed.
type EditError struct {
	Op  string
	Err error
}

func (e *EditError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *EditError) Unwrap() error {
	return e.Err
}

// Is matches another EditError with the same Op.
func (e *EditError) Is(target error) bool {
	t, ok := target.(*EditError)
	return ok && t.Op == e.Op
}

func editErr(op string, err error) error {
	return &EditError{Op: op, Err: err}
}
