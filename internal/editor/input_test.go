// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/trigger"
)

func TestKeyClass(t *testing.T) {
	tests := []struct {
		key  Key
		want trigger.EventClass
	}{
		{KeyRune, trigger.EventCharacter},
		{KeyBackspace, trigger.EventControl},
		{KeyDelete, trigger.EventControl},
		{KeyLeft, trigger.EventNavigation},
		{KeyEnter, trigger.EventNavigation},
		{KeyEscape, trigger.EventNavigation},
		{KeyTab, trigger.EventNavigation},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.key.Class(), "key %d", tc.key)
	}
}

func TestTyping(t *testing.T) {
	s, _ := newSession(t, nil)
	require.NoError(t, s.Type("Café\nok"))
	assert.Equal(t, "Café\nok", s.PlainText())
	assert.Equal(t, document.Position{Segment: 0, Offset: 7}, caret(t, s))
}

func TestBackspace_RemovesObjectAsUnit(t *testing.T) {
	chip := object(t, document.ClinicalChip{Label: "Lipid Panel", Category: "Lab"})
	s, _ := newSession(t, document.FromSegments(document.TextRun("Started "), chip))
	assert.Equal(t, document.Position{Segment: 2}, caret(t, s))

	require.NoError(t, s.HandleKey(key(KeyBackspace)))
	assert.Equal(t, []document.Kind{document.KindText}, kinds(s))
	assert.Equal(t, document.Position{Segment: 0, Offset: 8}, caret(t, s))

	require.NoError(t, s.HandleKey(key(KeyBackspace)))
	assert.Equal(t, "Started", s.PlainText())
}

func TestBackspace_MergesRuns(t *testing.T) {
	chip := object(t, document.ClinicalChip{Label: "Lipid Panel", Category: "Lab"})
	s, _ := newSession(t, document.FromSegments(document.TextRun("a"), chip, document.TextRun("b")))
	require.NoError(t, s.MoveCaret(document.Position{Segment: 2, Offset: 0}))

	require.NoError(t, s.HandleKey(key(KeyBackspace)))
	assert.Equal(t, []document.Kind{document.KindText}, kinds(s))
	assert.Equal(t, "ab", s.PlainText())
	assert.Equal(t, document.Position{Segment: 0, Offset: 1}, caret(t, s))
}

func TestDelete_Forward(t *testing.T) {
	chip := object(t, document.ClinicalChip{Label: "Lipid Panel", Category: "Lab"})
	s, _ := newSession(t, document.FromSegments(document.TextRun("a"), chip, document.TextRun("bc")))
	require.NoError(t, s.MoveCaret(document.Position{Segment: 0, Offset: 1}))

	require.NoError(t, s.HandleKey(key(KeyDelete)))
	assert.Equal(t, "abc", s.PlainText())
	assert.Equal(t, document.Position{Segment: 0, Offset: 1}, caret(t, s))

	require.NoError(t, s.HandleKey(key(KeyDelete)))
	assert.Equal(t, "ac", s.PlainText())

	require.NoError(t, s.HandleKey(key(KeyEnd)))
	require.NoError(t, s.HandleKey(key(KeyDelete)), "delete at the end is a no-op")
	assert.Equal(t, "ac", s.PlainText())
}

func TestBackspace_Selection(t *testing.T) {
	s, _ := newSession(t, document.FromSegments(document.TextRun("Patient reports")))
	require.NoError(t, s.SetSelection(document.Range{
		Anchor: document.Position{Segment: 0, Offset: 7},
		Focus:  document.Position{Segment: 0, Offset: 15},
	}))
	require.NoError(t, s.HandleKey(key(KeyBackspace)))
	assert.Equal(t, "Patient", s.PlainText())
}

func TestCaretMovement(t *testing.T) {
	chip := object(t, document.ClinicalChip{Label: "Lipid Panel", Category: "Lab"})
	s, _ := newSession(t, document.FromSegments(document.TextRun("a"), chip, document.TextRun("b")))
	require.NoError(t, s.MoveCaret(document.Position{Segment: 0, Offset: 1}))

	steps := []struct {
		key  Key
		want document.Position
	}{
		{KeyRight, document.Position{Segment: 2, Offset: 0}},
		{KeyRight, document.Position{Segment: 2, Offset: 1}},
		{KeyRight, document.Position{Segment: 2, Offset: 1}},
		{KeyLeft, document.Position{Segment: 2, Offset: 0}},
		{KeyLeft, document.Position{Segment: 0, Offset: 1}},
		{KeyLeft, document.Position{Segment: 0, Offset: 0}},
		{KeyLeft, document.Position{Segment: 0, Offset: 0}},
		{KeyEnd, document.Position{Segment: 2, Offset: 1}},
		{KeyHome, document.Position{Segment: 0, Offset: 0}},
	}
	for i, step := range steps {
		require.NoError(t, s.HandleKey(key(step.key)))
		assert.Equal(t, step.want, caret(t, s), "step %d", i)
	}
}

func TestCaretMovement_ObjectAtStart(t *testing.T) {
	chip := object(t, document.ClinicalChip{Label: "Lipid Panel", Category: "Lab"})
	s, _ := newSession(t, document.FromSegments(chip))
	assert.Equal(t, document.Position{Segment: 1}, caret(t, s))

	require.NoError(t, s.HandleKey(key(KeyLeft)))
	assert.Equal(t, document.Position{Segment: 0}, caret(t, s))

	require.NoError(t, s.Type("x"))
	assert.Equal(t, []document.Kind{document.KindText, document.KindClinicalChip}, kinds(s))
	assert.Equal(t, "xLipid Panel", s.PlainText())
}

func TestNavigationDoesNotDetect(t *testing.T) {
	s, _ := newSession(t, document.FromSegments(document.TextRun("/")))
	require.NoError(t, s.HandleKey(key(KeyEnd)))
	assert.False(t, s.Menu().Open, "moving onto a trigger does not open the menu")

	require.NoError(t, s.HandleKey(key(KeyLeft)))
	require.NoError(t, s.HandleKey(key(KeyRight)))
	assert.False(t, s.Menu().Open)
}

func TestMoveCaret_Invalid(t *testing.T) {
	s, _ := newSession(t, document.FromSegments(document.TextRun("ab")))
	err := s.MoveCaret(document.Position{Segment: 0, Offset: 5})
	assert.ErrorIs(t, err, document.ErrOutOfRange)
	assert.Equal(t, document.Position{Segment: 0, Offset: 2}, caret(t, s))
}

func TestExtendSelection_OpensComposer(t *testing.T) {
	s, _ := newSession(t, document.FromSegments(document.TextRun("Patient reports chest pain")))
	require.NoError(t, s.MoveCaret(document.Position{Offset: 26}))

	for i := 0; i < 4; i++ {
		require.NoError(t, s.ExtendSelection(false))
	}

	r, ok := s.Selection()
	require.True(t, ok)
	assert.Equal(t, document.Position{Offset: 26}, r.Anchor)
	assert.Equal(t, document.Position{Offset: 22}, r.Focus)

	c, ok := s.Composer()
	require.True(t, ok, "a non-collapsed selection opens the composer")
	assert.Equal(t, "pain", c.Preview)

	require.NoError(t, s.ExtendSelection(true))
	c, _ = s.Composer()
	assert.Equal(t, "ain", c.Preview)
}

func TestCardBeforeCaret(t *testing.T) {
	appt := object(t, document.Appointment{Date: "2026-01-10", Time: "10:00"})
	s, _ := newSession(t, document.FromSegments(
		document.TextRun("See "),
		appt,
		document.TextRun(" then"),
	))

	id, ok := s.CardBeforeCaret()
	require.True(t, ok)
	assert.Equal(t, appt.ID, id)

	require.NoError(t, s.MoveCaret(document.Position{Offset: 2}))
	_, ok = s.CardBeforeCaret()
	assert.False(t, ok, "no card precedes the caret")
}
