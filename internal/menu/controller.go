// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"errors"
	"slices"

	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/trigger"
	"github.com/jeranaias/chartpad/internal/util"
)

// ErrNoCandidate is returned when a commit has nothing to commit. The menu
// is closed anyway.
var ErrNoCandidate = errors.New("no candidate to commit")

// =============================================================================
// TYPES
// =============================================================================

// Candidate is one selectable menu entry.
type Candidate struct {
	ID       string
	Label    string
	Detail   string
	Category string
}

// Point is a screen position in cells.
type Point struct {
	X, Y int
}

// State is a snapshot of the menu.
type State struct {
	Open       bool
	Type       trigger.Type
	Filter     string
	Candidates []Candidate
	Selected   int
	Anchor     Point

	// Token is the trigger text a commit removes.
	Token document.Range
}

// Direction is a navigation direction.
type Direction int

const (
	Up Direction = iota
	Down
)

// Committer turns a committed candidate into a document mutation.
type Committer interface {
	CommitCandidate(c Candidate, t trigger.Type, token document.Range) error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the menu state.
type Controller struct {
	committer Committer
	state     State

	// Candidate sources, set by the owner. Each returns the full list;
	// the controller filters.
	SlashFn     func() []Candidate
	VariablesFn func() []Candidate
	ClinicalFn  func() []Candidate
}

// NewController creates a closed menu that commits into c.
func NewController(c Committer) *Controller {
	return &Controller{committer: c}
}

// Open replaces any open menu with a menu of type t. Slash menus show the
// full command list; other menus keep candidates whose label contains the
// filter, ignoring case.
func (m *Controller) Open(t trigger.Type, filter string, anchor Point, token document.Range) {
	m.state = State{
		Open:       true,
		Type:       t,
		Filter:     filter,
		Candidates: m.candidates(t, filter),
		Selected:   0,
		Anchor:     anchor,
		Token:      token,
	}
}

func (m *Controller) candidates(t trigger.Type, filter string) []Candidate {
	var source func() []Candidate
	switch t {
	case trigger.Slash:
		if m.SlashFn == nil {
			return nil
		}
		return m.SlashFn()
	case trigger.Variable:
		source = m.VariablesFn
	case trigger.Clinical:
		source = m.ClinicalFn
	}
	if source == nil {
		return nil
	}

	var out []Candidate
	for _, c := range source() {
		if filter == "" || util.ContainsFold(c.Label, filter) {
			out = append(out, c)
		}
	}
	return out
}

// Navigate moves the selection, wrapping at both ends. It does nothing when
// the menu is closed or empty.
func (m *Controller) Navigate(dir Direction) {
	n := len(m.state.Candidates)
	if !m.state.Open || n == 0 {
		return
	}
	step := 1
	if dir == Up {
		step = -1
	}
	m.state.Selected = (m.state.Selected + step + n) % n
}

// Hover selects index without committing. Out-of-range indices are ignored.
func (m *Controller) Hover(index int) {
	if !m.state.Open || index < 0 || index >= len(m.state.Candidates) {
		return
	}
	m.state.Selected = index
}

// Commit commits the selected candidate.
func (m *Controller) Commit() error {
	return m.CommitAt(m.state.Selected)
}

// CommitAt forwards the candidate at index to the committer and closes the
// menu. An empty menu or an out-of-range index closes without committing
// and returns ErrNoCandidate.
func (m *Controller) CommitAt(index int) error {
	st := m.state
	m.Close()

	if !st.Open || index < 0 || index >= len(st.Candidates) {
		return ErrNoCandidate
	}
	if m.committer == nil {
		return nil
	}
	return m.committer.CommitCandidate(st.Candidates[index], st.Type, st.Token)
}

// Close closes the menu regardless of its state.
func (m *Controller) Close() {
	m.state = State{}
}

// IsOpen reports whether a menu is open.
func (m *Controller) IsOpen() bool {
	return m.state.Open
}

// State returns a snapshot of the menu.
func (m *Controller) State() State {
	st := m.state
	st.Candidates = slices.Clone(st.Candidates)
	return st
}

// Selected returns the highlighted candidate.
func (m *Controller) Selected() (Candidate, bool) {
	if !m.state.Open || m.state.Selected >= len(m.state.Candidates) {
		return Candidate{}, false
	}
	return m.state.Candidates[m.state.Selected], true
}
