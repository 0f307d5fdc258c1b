// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"io"
	"log"
	"strings"

	"github.com/jeranaias/chartpad/internal/catalog"
	"github.com/jeranaias/chartpad/internal/commands"
	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/generate"
	"github.com/jeranaias/chartpad/internal/menu"
	"github.com/jeranaias/chartpad/internal/modal"
	"github.com/jeranaias/chartpad/internal/patient"
	"github.com/jeranaias/chartpad/internal/selection"
	"github.com/jeranaias/chartpad/internal/trigger"
	"github.com/jeranaias/chartpad/internal/util"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Hooks notify the embedding application of out-of-band events.
type Hooks struct {
	// OnModalOpen is called when a form opens, fresh or for editing.
	OnModalOpen func(f *modal.Form)

	// OnModalClose is called when a form closes.
	OnModalClose func(confirmed bool)

	// OnProposalApproved receives the items of an approved AI proposal.
	OnProposalApproved func(items []string)
}

// AnchorFunc maps a document position to the screen cell a menu is
// anchored at.
type AnchorFunc func(doc *document.Document, p document.Position) menu.Point

// Config configures a Session. Zero fields get defaults.
type Config struct {
	// Document to edit (default: an empty document)
	Document *document.Document

	Patient  patient.Context
	Catalog  *catalog.Catalog
	Registry *commands.Registry
	Defaults modal.Defaults

	// Generator answers generation requests (default: canned, no delay)
	Generator generate.Service

	// Logger receives one line per recovered error and lifecycle event
	// (default: discards)
	Logger *log.Logger

	Hooks  Hooks
	Anchor AnchorFunc
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the single owner of all editor state.
type Session struct {
	doc      *document.Document
	tracker  *selection.Tracker
	menu     *menu.Controller
	detector *trigger.Detector

	registry *commands.Registry
	patient  patient.Context
	catalog  *catalog.Catalog
	defaults modal.Defaults

	// form is the open modal; form.EditingID is the editing reference
	form *modal.Form

	composer *CommentComposer
	comments []Comment

	generator generate.Service
	gen       genSlot

	logger *log.Logger
	hooks  Hooks
	anchor AnchorFunc
}

// New creates a session with the caret at the end of the document.
func New(cfg Config) *Session {
	if cfg.Document == nil {
		cfg.Document = document.New()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = commands.NewRegistry()
	}
	if cfg.Defaults == (modal.Defaults{}) {
		cfg.Defaults = modal.StandardDefaults()
	}
	if cfg.Generator == nil {
		cfg.Generator = generate.NewCanned(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	if cfg.Anchor == nil {
		cfg.Anchor = TextAnchor
	}

	s := &Session{
		doc:       cfg.Document,
		tracker:   selection.NewTracker(cfg.Document.End()),
		detector:  trigger.NewDetector(cfg.Catalog),
		registry:  cfg.Registry,
		patient:   cfg.Patient,
		catalog:   cfg.Catalog,
		defaults:  cfg.Defaults,
		generator: cfg.Generator,
		logger:    cfg.Logger,
		hooks:     cfg.Hooks,
		anchor:    cfg.Anchor,
	}

	s.menu = menu.NewController(s)
	s.menu.SlashFn = s.slashCandidates
	s.menu.VariablesFn = variableCandidates
	s.menu.ClinicalFn = s.clinicalCandidates
	return s
}

// TextAnchor anchors at the display column and line of p in the plain-text
// projection of the document.
func TextAnchor(doc *document.Document, p document.Position) menu.Point {
	before := doc.TextIn(document.Range{Anchor: document.Position{}, Focus: p})
	line := before
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		line = before[i+1:]
	}
	return menu.Point{
		X: util.StringWidth(line),
		Y: strings.Count(before, "\n"),
	}
}

// =============================================================================
// CANDIDATE SOURCES
// =============================================================================

func (s *Session) slashCandidates() []menu.Candidate {
	cmds := s.registry.All()
	out := make([]menu.Candidate, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, menu.Candidate{ID: c.ID, Label: c.Label, Detail: c.Description, Category: c.Category})
	}
	return out
}

func variableCandidates() []menu.Candidate {
	vars := patient.Variables()
	out := make([]menu.Candidate, 0, len(vars))
	for _, v := range vars {
		out = append(out, menu.Candidate{ID: v.ID, Label: v.Label, Detail: v.Description})
	}
	return out
}

func (s *Session) clinicalCandidates() []menu.Candidate {
	entries := s.catalog.Entries()
	out := make([]menu.Candidate, 0, len(entries))
	for _, e := range entries {
		out = append(out, menu.Candidate{ID: e.Label, Label: e.Label, Category: e.Category})
	}
	return out
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Document returns a copy of the document.
func (s *Session) Document() *document.Document {
	return document.FromSegments(s.doc.Segments()...)
}

// PlainText returns the flattened text of the document.
func (s *Session) PlainText() string {
	return s.doc.PlainText()
}

// MarshalJSON encodes the document.
func (s *Session) MarshalJSON() ([]byte, error) {
	return s.doc.MarshalJSON()
}

// Selection returns the live range, if there is one.
func (s *Session) Selection() (document.Range, bool) {
	return s.tracker.Active()
}

// SavedRange returns the range saved while a modal is open.
func (s *Session) SavedRange() (selection.SavedRange, bool) {
	return s.tracker.Saved()
}

// Menu returns a snapshot of the menu.
func (s *Session) Menu() menu.State {
	return s.menu.State()
}

// Form returns the open modal form, or nil. Fields are edited through the
// returned form and confirmed with ConfirmModal.
func (s *Session) Form() *modal.Form {
	return s.form
}

// EditingID returns the ID of the object open for editing, if any.
func (s *Session) EditingID() (string, bool) {
	if s.form == nil || !s.form.Editing() {
		return "", false
	}
	return s.form.EditingID, true
}

// Patient returns the patient context.
func (s *Session) Patient() patient.Context {
	return s.patient
}

// =============================================================================
// CARET HELPERS
// =============================================================================

// setCaret collapses the selection at p, falling back to the document end
// when p is no longer valid.
func (s *Session) setCaret(p document.Position) {
	p = s.doc.Normalize(p)
	if s.doc.ValidatePosition(p) != nil {
		p = s.doc.End()
	}
	s.tracker.Collapse(p)
}

// revalidate keeps the live range valid after a structural change made
// away from the caret.
func (s *Session) revalidate() {
	r, ok := s.tracker.Active()
	if !ok {
		return
	}
	if s.doc.ValidateRange(r) != nil {
		s.tracker.Collapse(s.doc.End())
		return
	}
	if r.Collapsed() {
		s.tracker.Collapse(s.doc.Normalize(r.Focus))
	}
}

// after returns the caret position just after the segment at i.
func (s *Session) after(i int) document.Position {
	return s.doc.Normalize(document.Position{Segment: i + 1})
}

// insertObject inserts seg at p and collapses the caret after it.
func (s *Session) insertObject(p document.Position, seg document.Segment) error {
	idx, err := s.doc.InsertAt(p, seg)
	if err != nil {
		return err
	}
	s.setCaret(s.after(idx))
	return nil
}

// removeSegment deletes the segment at idx, merges the text runs that
// become adjacent, and keeps the caret on the same spot.
func (s *Session) removeSegment(idx int) (document.Segment, error) {
	caret, hasCaret := s.tracker.Caret()
	if hasCaret {
		caret = s.doc.Normalize(caret)
	}

	removed, err := s.doc.RemoveAt(idx)
	if err != nil {
		return removed, err
	}
	if caret.Segment > idx {
		caret.Segment--
	}

	if join, ok := s.doc.MergeRuns(idx - 1); ok {
		switch {
		case caret.Segment == idx:
			caret = document.Position{Segment: idx - 1, Offset: join.Offset + caret.Offset}
		case caret.Segment > idx:
			caret.Segment--
		}
	}

	if hasCaret {
		s.setCaret(caret)
	}
	return removed, nil
}
