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

// =============================================================================
// SCENARIOS
// =============================================================================

func TestScenario_SlashCard(t *testing.T) {
	s, _ := newSession(t, nil)

	require.NoError(t, s.Type("Patient reports /"))
	st := s.Menu()
	require.True(t, st.Open)
	require.Equal(t, trigger.Slash, st.Type)
	require.Equal(t, "task", st.Candidates[2].ID)

	require.NoError(t, s.HandleKey(key(KeyDown)))
	require.NoError(t, s.HandleKey(key(KeyDown)))
	require.NoError(t, s.HandleKey(key(KeyEnter)))

	segs := s.Snapshot().Segments
	require.Len(t, segs, 2)
	assert.Equal(t, "Patient reports ", segs[0].Text)
	assert.Equal(t, document.SlashCard{CommandID: "task", TitleText: "Untitled Task"}, segs[1].Payload)
	assert.False(t, s.Menu().Open)
	assert.Equal(t, document.Position{Segment: 2}, caret(t, s))
}

func TestScenario_ClinicalChip(t *testing.T) {
	s, _ := newSession(t, nil)

	require.NoError(t, s.Type("Started ato"))
	st := s.Menu()
	require.True(t, st.Open)
	require.Equal(t, trigger.Clinical, st.Type)
	require.Equal(t, "ato", st.Filter)
	require.Len(t, st.Candidates, 1)

	require.NoError(t, s.HandleKey(key(KeyEnter)))

	segs := s.Snapshot().Segments
	require.Len(t, segs, 2)
	assert.Equal(t, "Started ", segs[0].Text)
	assert.Equal(t, document.ClinicalChip{Label: "Atorvastatin 20mg", Category: "eRx"}, segs[1].Payload)
	assert.False(t, s.Menu().Open)
}

func TestScenario_DeferredAppointment(t *testing.T) {
	s, _ := newSession(t, nil)
	require.NoError(t, s.Type("Plan: today"))
	require.NoError(t, s.MoveCaret(document.Position{Segment: 0, Offset: 6}))
	require.NoError(t, s.Type("/"))
	require.Equal(t, trigger.Slash, s.Menu().Type)

	// Appointment is first in the slash menu.
	require.NoError(t, s.HandleKey(key(KeyEnter)))

	form := s.Form()
	require.NotNil(t, form, "modal opens")
	assert.Equal(t, document.KindAppointmentCard, form.Kind())
	assert.Equal(t, "Plan: today", s.PlainText(), "token removed, nothing inserted yet")
	assert.Equal(t, 0, s.Document().Count(document.KindAppointmentCard))
	_, saved := s.SavedRange()
	assert.True(t, saved)

	require.NoError(t, form.Set("date", "2026-01-10"))
	require.NoError(t, form.Set("time", "10:00"))
	require.NoError(t, s.ConfirmModal())

	assert.Nil(t, s.Form())
	_, saved = s.SavedRange()
	assert.False(t, saved, "saved range is cleared")

	segs := s.Snapshot().Segments
	require.Equal(t, []document.Kind{document.KindText, document.KindAppointmentCard, document.KindText}, kinds(s))
	assert.Equal(t, "Plan: ", segs[0].Text)
	assert.Equal(t, document.Appointment{Date: "2026-01-10", Time: "10:00", Reason: "Follow-up", Location: "Main Clinic"}, segs[1].Payload)
	assert.Equal(t, "today", segs[2].Text)
	assert.Equal(t, document.Position{Segment: 2, Offset: 0}, caret(t, s))
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestVariableResolution(t *testing.T) {
	s, _ := newSession(t, nil)
	require.NoError(t, s.Type("$name"))
	require.Equal(t, trigger.Variable, s.Menu().Type)
	require.NoError(t, s.HandleKey(key(KeyEnter)))

	assert.Equal(t, "Sarah Jenkins", s.PlainText())
	assert.Equal(t, []document.Kind{document.KindText}, kinds(s))
}

func TestTokenRemoval_Variable(t *testing.T) {
	tokens := []string{"$", "$n", "$na", "$nam", "$name"}
	for _, tok := range tokens {
		t.Run(tok, func(t *testing.T) {
			s, _ := newSession(t, document.FromSegments(document.TextRun("Pt:  today")))
			require.NoError(t, s.MoveCaret(document.Position{Segment: 0, Offset: 4}))
			require.NoError(t, s.Type(tok))
			require.Equal(t, trigger.Variable, s.Menu().Type)
			require.NoError(t, s.HandleKey(key(KeyEnter)))

			assert.Equal(t, "Pt: Sarah Jenkins today", s.PlainText())
		})
	}
}

func TestTokenRemoval_Clinical(t *testing.T) {
	tokens := []string{"ato", "ator", "atorv", "atorva", "Atorvastatin"}
	for _, tok := range tokens {
		t.Run(tok, func(t *testing.T) {
			s, _ := newSession(t, document.FromSegments(document.TextRun("Started  daily")))
			require.NoError(t, s.MoveCaret(document.Position{Segment: 0, Offset: 8}))
			require.NoError(t, s.Type(tok))
			require.Equal(t, trigger.Clinical, s.Menu().Type)
			require.NoError(t, s.HandleKey(key(KeyEnter)))

			segs := s.Snapshot().Segments
			require.Len(t, segs, 3)
			assert.Equal(t, "Started ", segs[0].Text)
			assert.Equal(t, document.KindClinicalChip, segs[1].Kind())
			assert.Equal(t, " daily", segs[2].Text)
		})
	}
}

func TestMenuMutualExclusion(t *testing.T) {
	s, _ := newSession(t, nil)

	steps := []struct {
		ev   KeyEvent
		want trigger.Type
	}{
		{Char(' '), trigger.None},
		{Char('/'), trigger.Slash},
		{key(KeyBackspace), trigger.None},
		{Char('$'), trigger.Variable},
		{Char('n'), trigger.Variable},
		{Char(' '), trigger.None},
		{Char('a'), trigger.None},
		{Char('t'), trigger.None},
		{Char('o'), trigger.Clinical},
		{key(KeyBackspace), trigger.None},
		{Char(' '), trigger.None},
		{Char('/'), trigger.Slash},
	}

	for i, step := range steps {
		require.NoError(t, s.HandleKey(step.ev), "step %d", i)
		st := s.Menu()
		if step.want == trigger.None {
			assert.False(t, st.Open, "step %d: menu should be closed", i)
			continue
		}
		assert.True(t, st.Open, "step %d", i)
		assert.Equal(t, step.want, st.Type, "step %d", i)
	}
}

func TestMenuKeyNavigation(t *testing.T) {
	s, _ := newSession(t, nil)
	require.NoError(t, s.Type("/"))
	n := len(s.Menu().Candidates)

	require.NoError(t, s.HandleKey(key(KeyUp)))
	assert.Equal(t, n-1, s.Menu().Selected, "Up from 0 wraps to last")
	require.NoError(t, s.HandleKey(key(KeyDown)))
	assert.Equal(t, 0, s.Menu().Selected, "Down from last wraps to 0")

	require.NoError(t, s.HandleKey(key(KeyEscape)))
	assert.False(t, s.Menu().Open)
	assert.Equal(t, "/", s.PlainText(), "escape leaves the text alone")
}

func TestMenuClosesOnCaretMove(t *testing.T) {
	s, _ := newSession(t, nil)
	require.NoError(t, s.Type("ato"))
	require.True(t, s.Menu().Open)

	require.NoError(t, s.HandleKey(key(KeyLeft)))
	assert.False(t, s.Menu().Open)
	assert.Equal(t, document.Position{Segment: 0, Offset: 2}, caret(t, s))
}

func TestEmptyCommit(t *testing.T) {
	s, buf := newSession(t, nil)
	require.NoError(t, s.Type("$zz"))
	st := s.Menu()
	require.True(t, st.Open)
	require.Empty(t, st.Candidates)

	require.NoError(t, s.HandleKey(key(KeyEnter)), "an empty commit is a quiet close")
	assert.False(t, s.Menu().Open)
	assert.Equal(t, "$zz", s.PlainText())
	assert.Contains(t, buf.String(), "MENU_EMPTY_COMMIT")
}

func TestCommitCandidate_TokenOutOfRange(t *testing.T) {
	s, buf := newSession(t, document.FromSegments(document.TextRun("ab")))
	rev := s.Snapshot().Revision

	err := s.CommitCandidate(
		s.slashCandidates()[2],
		trigger.Slash,
		document.Range{Anchor: document.Position{Segment: 0, Offset: 1}, Focus: document.Position{Segment: 0, Offset: 9}},
	)
	assert.ErrorIs(t, err, ErrNoActiveRange)
	assert.Equal(t, rev, s.Snapshot().Revision, "document unchanged")
	assert.Contains(t, buf.String(), "INSERT_DROPPED")
}

func TestCommit_GenericSlashCommands(t *testing.T) {
	tests := []struct {
		index int
		id    string
		title string
	}{
		{2, "task", "Untitled Task"},
		{3, "note", "Untitled Internal Note"},
		{4, "referral", "Untitled Referral"},
		{5, "followup", "Untitled Follow-up"},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			s, _ := newSession(t, nil)
			require.NoError(t, s.Type("/"))
			require.NoError(t, s.menu.CommitAt(tc.index))
			assert.Equal(t, []document.Kind{document.KindSlashCard}, kinds(s))
			assert.Equal(t, document.SlashCard{CommandID: tc.id, TitleText: tc.title}, s.Snapshot().Segments[0].Payload)
			assert.Nil(t, s.Form())
		})
	}
}

func TestHoverMenuThenCommitAt(t *testing.T) {
	s, _ := newSession(t, nil)
	require.NoError(t, s.Type("Plan: /"))
	require.True(t, s.Menu().Open)

	s.HoverMenu(2)
	assert.Equal(t, 2, s.Menu().Selected)
	s.HoverMenu(-1)
	assert.Equal(t, 2, s.Menu().Selected, "out-of-range hover is ignored")

	require.NoError(t, s.CommitMenuAt(s.Menu().Selected))
	assert.False(t, s.Menu().Open)
	assert.Equal(t, []document.Kind{document.KindText, document.KindSlashCard}, kinds(s))
	assert.Equal(t, "task", s.Snapshot().Segments[1].Payload.(document.SlashCard).CommandID)
}

func TestCommitMenuAt_OutOfRange(t *testing.T) {
	s, buf := newSession(t, nil)
	require.NoError(t, s.Type("Plan: /"))
	rev := s.Snapshot().Revision

	require.NoError(t, s.CommitMenuAt(99))
	assert.False(t, s.Menu().Open)
	assert.Equal(t, "Plan: /", s.PlainText())
	assert.Equal(t, rev, s.Snapshot().Revision, "document unchanged")
	assert.Contains(t, buf.String(), "MENU_EMPTY_COMMIT")
}
