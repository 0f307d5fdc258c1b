// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"errors"

	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/menu"
	"github.com/jeranaias/chartpad/internal/modal"
	"github.com/jeranaias/chartpad/internal/trigger"
)

// =============================================================================
// KEY EVENTS
// =============================================================================

// Key identifies an input key.
type Key int

const (
	KeyRune Key = iota
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyEnter
	KeyTab
	KeyEscape
)

// KeyEvent is one input event. Text holds the typed characters for KeyRune.
type KeyEvent struct {
	Key  Key
	Text string
}

// Char returns the event for typing r.
func Char(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Text: string(r)}
}

// Class returns the detection class of the key.
func (k Key) Class() trigger.EventClass {
	switch k {
	case KeyRune:
		return trigger.EventCharacter
	case KeyBackspace, KeyDelete:
		return trigger.EventControl
	}
	return trigger.EventNavigation
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// HandleKey applies one input event. Character and editing keys run trigger
// detection afterwards; navigation keys never do. While a menu is open the
// navigation keys drive it.
func (s *Session) HandleKey(ev KeyEvent) error {
	if s.menu.IsOpen() {
		switch ev.Key {
		case KeyUp:
			s.menu.Navigate(menu.Up)
			return nil
		case KeyDown:
			s.menu.Navigate(menu.Down)
			return nil
		case KeyEnter, KeyTab:
			return s.commitMenu()
		case KeyEscape:
			s.menu.Close()
			return nil
		case KeyLeft, KeyRight, KeyHome, KeyEnd:
			s.menu.Close()
		}
	}

	r, ok := s.tracker.Active()
	if !ok {
		if ev.Key.Class() != trigger.EventNavigation {
			s.logger.Printf("INSERT_DROPPED | key=%d reason=no_active_range", ev.Key)
			return editErr("key", ErrNoActiveRange)
		}
		return nil
	}

	s.composer = nil

	var err error
	switch ev.Key {
	case KeyRune:
		err = s.insertText(r, ev.Text)
	case KeyEnter:
		err = s.insertText(r, "\n")
	case KeyBackspace:
		err = s.deleteBackward(r)
	case KeyDelete:
		err = s.deleteForward(r)
	case KeyLeft:
		s.setCaret(s.left(r))
	case KeyRight:
		s.setCaret(s.right(r))
	case KeyHome:
		s.setCaret(document.Position{})
	case KeyEnd:
		s.setCaret(s.doc.End())
	case KeyEscape:
		s.tracker.Collapse(r.Focus)
	}
	if err != nil {
		s.logger.Printf("INSERT_DROPPED | key=%d error=%v", ev.Key, err)
		return editErr("key", err)
	}

	if ev.Key.Class() != trigger.EventNavigation {
		s.detect(ev.Key.Class())
	}
	return nil
}

// Type feeds text through HandleKey one character at a time. Newlines are
// sent as Enter. It stops at the first error.
func (s *Session) Type(text string) error {
	for _, r := range text {
		ev := Char(r)
		if r == '\n' {
			ev = KeyEvent{Key: KeyEnter}
		}
		if err := s.HandleKey(ev); err != nil {
			return err
		}
	}
	return nil
}

// MoveCaret places a collapsed caret at p.
func (s *Session) MoveCaret(p document.Position) error {
	if err := s.doc.ValidatePosition(p); err != nil {
		return editErr("move", err)
	}
	s.menu.Close()
	s.composer = nil
	s.tracker.Collapse(s.doc.Normalize(p))
	return nil
}

// ExtendSelection moves the focus of the live range one step, keeping its
// anchor, and hands the result to SetSelection.
func (s *Session) ExtendSelection(forward bool) error {
	r, ok := s.tracker.Active()
	if !ok {
		return editErr("select", ErrNoActiveRange)
	}
	s.menu.Close()
	step := document.Caret(r.Focus)
	focus := s.left(step)
	if forward {
		focus = s.right(step)
	}
	return s.SetSelection(document.Range{Anchor: s.doc.Normalize(r.Anchor), Focus: focus})
}

// CardBeforeCaret returns the ID of the nearest appointment or order card
// before the caret.
func (s *Session) CardBeforeCaret() (string, bool) {
	caret, ok := s.tracker.Caret()
	if !ok {
		return "", false
	}
	for i := min(caret.Segment, s.doc.Len()) - 1; i >= 0; i-- {
		seg, _ := s.doc.At(i)
		if modal.Editable(seg.Kind()) {
			return seg.ID, true
		}
	}
	return "", false
}

// HoverMenu highlights the candidate at index, as a pointer does when it
// moves over the menu. Out-of-range indices are ignored.
func (s *Session) HoverMenu(index int) {
	s.menu.Hover(index)
}

// CommitMenuAt commits the candidate at index and closes the menu. With no
// candidate at index the menu just closes.
func (s *Session) CommitMenuAt(index int) error {
	return s.settleCommit(s.menu.CommitAt(index))
}

func (s *Session) commitMenu() error {
	return s.settleCommit(s.menu.Commit())
}

// settleCommit absorbs an empty commit: the menu is already closed and the
// trigger text stays as typed.
func (s *Session) settleCommit(err error) error {
	if errors.Is(err, ErrEmptyCandidates) {
		s.logger.Printf("MENU_EMPTY_COMMIT | closed without commit")
		return nil
	}
	return err
}

// detect runs the trigger detector at the caret and opens, replaces, or
// closes the menu.
func (s *Session) detect(class trigger.EventClass) {
	caret, ok := s.tracker.Caret()
	if !ok {
		return
	}
	res, run := s.detector.Detect(s.doc, caret, class)
	if !run {
		return
	}
	if res.Type == trigger.None {
		s.menu.Close()
		return
	}
	s.menu.Open(res.Type, res.Filter, s.anchor(s.doc, res.Token.Anchor), res.Token)
}

// =============================================================================
// EDITING
// =============================================================================

func (s *Session) insertText(r document.Range, text string) error {
	p, err := s.doc.DeleteRange(r)
	if err != nil {
		return err
	}
	p, err = s.doc.InsertText(s.doc.Normalize(p), text)
	if err != nil {
		return err
	}
	s.setCaret(p)
	return nil
}

// deleteBackward removes the selection, or the rune or whole object before
// the caret.
func (s *Session) deleteBackward(r document.Range) error {
	if !r.Collapsed() {
		p, err := s.doc.DeleteRange(r)
		if err != nil {
			return err
		}
		s.setCaret(p)
		return nil
	}

	p := s.doc.Normalize(r.Focus)
	if s.doc.InText(p) && p.Offset > 0 {
		_, err := s.doc.DeleteRange(document.Range{
			Anchor: document.Position{Segment: p.Segment, Offset: p.Offset - 1},
			Focus:  p,
		})
		if err != nil {
			return err
		}
		s.setCaret(document.Position{Segment: p.Segment, Offset: p.Offset - 1})
		return nil
	}

	prev, ok := s.doc.At(p.Segment - 1)
	if !ok {
		return nil
	}
	if prev.IsText() && prev.RuneLen() > 0 {
		n := prev.RuneLen()
		_, err := s.doc.DeleteRange(document.Range{
			Anchor: document.Position{Segment: p.Segment - 1, Offset: n - 1},
			Focus:  document.Position{Segment: p.Segment - 1, Offset: n},
		})
		return err
	}
	_, err := s.removeSegment(p.Segment - 1)
	return err
}

// deleteForward removes the selection, or the rune or whole object after
// the caret.
func (s *Session) deleteForward(r document.Range) error {
	if !r.Collapsed() {
		return s.deleteBackward(r)
	}

	p := s.doc.Normalize(r.Focus)
	next := p.Segment
	if s.doc.InText(p) {
		if p.Offset < s.runeLen(p.Segment) {
			_, err := s.doc.DeleteRange(document.Range{
				Anchor: p,
				Focus:  document.Position{Segment: p.Segment, Offset: p.Offset + 1},
			})
			return err
		}
		next = p.Segment + 1
	}

	seg, ok := s.doc.At(next)
	if !ok {
		return nil
	}
	if seg.IsText() && seg.RuneLen() > 0 {
		_, err := s.doc.DeleteRange(document.Range{
			Anchor: document.Position{Segment: next},
			Focus:  document.Position{Segment: next, Offset: 1},
		})
		return err
	}
	_, err := s.removeSegment(next)
	return err
}

func (s *Session) runeLen(i int) int {
	seg, _ := s.doc.At(i)
	return seg.RuneLen()
}

// =============================================================================
// CARET MOVEMENT
// =============================================================================

// left returns the caret one step left, stepping over objects as a unit.
// A selection collapses to its start.
func (s *Session) left(r document.Range) document.Position {
	if !r.Collapsed() {
		start, _ := r.Ordered()
		return start
	}
	p := s.doc.Normalize(r.Focus)
	if s.doc.InText(p) && p.Offset > 0 {
		return document.Position{Segment: p.Segment, Offset: p.Offset - 1}
	}
	prev, ok := s.doc.At(p.Segment - 1)
	if !ok {
		return p
	}
	if prev.IsText() && prev.RuneLen() > 0 {
		return document.Position{Segment: p.Segment - 1, Offset: prev.RuneLen() - 1}
	}
	return s.doc.Normalize(document.Position{Segment: p.Segment - 1})
}

// right returns the caret one step right, stepping over objects as a unit.
// A selection collapses to its end.
func (s *Session) right(r document.Range) document.Position {
	if !r.Collapsed() {
		_, end := r.Ordered()
		return end
	}
	p := s.doc.Normalize(r.Focus)
	next := p.Segment
	if s.doc.InText(p) {
		if p.Offset < s.runeLen(p.Segment) {
			return document.Position{Segment: p.Segment, Offset: p.Offset + 1}
		}
		next = p.Segment + 1
	}
	seg, ok := s.doc.At(next)
	if !ok {
		return p
	}
	if seg.IsText() {
		return document.Position{Segment: next, Offset: min(1, seg.RuneLen())}
	}
	return s.after(next)
}
