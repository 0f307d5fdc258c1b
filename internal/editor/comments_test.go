// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chartpad/internal/document"
)

func span(seg1, off1, seg2, off2 int) document.Range {
	return document.Range{
		Anchor: document.Position{Segment: seg1, Offset: off1},
		Focus:  document.Position{Segment: seg2, Offset: off2},
	}
}

func TestComment_SingleRunWrap(t *testing.T) {
	s, buf := newSession(t, document.FromSegments(document.TextRun("Patient reports chest pain")))

	require.NoError(t, s.SetSelection(span(0, 16, 0, 26)))
	c, ok := s.Composer()
	require.True(t, ok)
	assert.Equal(t, "chest pain", c.Preview)
	assert.Equal(t, 16, c.Anchor.X)

	comment, err := s.SubmitComment("Clarify onset")
	require.NoError(t, err)
	assert.False(t, comment.Static)
	assert.Equal(t, "chest pain", comment.Text)

	segs := s.Snapshot().Segments
	require.Len(t, segs, 2)
	assert.Equal(t, "Patient reports ", segs[0].Text)
	assert.Equal(t, document.CommentHighlight{
		CommentID: comment.ID,
		Text:      "chest pain",
		Body:      "Clarify onset",
	}, segs[1].Payload)
	assert.Equal(t, comment.SegmentID, segs[1].ID)
	assert.Equal(t, "Patient reports chest pain", s.PlainText(), "text is preserved")

	_, ok = s.Composer()
	assert.False(t, ok)
	assert.Len(t, s.Comments(), 1)
	assert.Contains(t, buf.String(), "COMMENT_ADDED")
}

func TestComment_MultiSegmentFallback(t *testing.T) {
	chip := object(t, document.ClinicalChip{Label: "Lipid Panel", Category: "Lab"})
	s, _ := newSession(t, document.FromSegments(document.TextRun("Start "), chip, document.TextRun(" today")))

	require.NoError(t, s.SetSelection(span(0, 2, 2, 3)))
	comment, err := s.SubmitComment("Check timing")
	require.NoError(t, err)

	assert.True(t, comment.Static)
	assert.Equal(t, "art Lipid Panel to", comment.Text)
	assert.Equal(t, []document.Kind{document.KindText, document.KindCommentHighlight, document.KindText}, kinds(s))
	assert.Equal(t, "Start Lipid Panel today", s.PlainText())
}

func TestComment_Cancel(t *testing.T) {
	s, _ := newSession(t, document.FromSegments(document.TextRun("Patient reports chest pain")))
	rev := s.Snapshot().Revision

	require.NoError(t, s.SetSelection(span(0, 0, 0, 7)))
	s.CancelComment()

	_, ok := s.Composer()
	assert.False(t, ok)
	assert.Equal(t, rev, s.Snapshot().Revision)
	assert.Empty(t, s.Comments())

	_, err := s.SubmitComment("late")
	assert.ErrorIs(t, err, ErrNoActiveRange)
}

func TestComment_NotOpenedForCaretOrMenu(t *testing.T) {
	s, _ := newSession(t, document.FromSegments(document.TextRun("Patient")))

	require.NoError(t, s.SetSelection(span(0, 3, 0, 3)))
	_, ok := s.Composer()
	assert.False(t, ok, "collapsed selection")

	require.NoError(t, s.MoveCaret(document.Position{Segment: 0, Offset: 7}))
	require.NoError(t, s.Type(" /"))
	require.True(t, s.Menu().Open)
	require.NoError(t, s.SetSelection(span(0, 0, 0, 7)))
	_, ok = s.Composer()
	assert.False(t, ok, "menu open")
}

func TestComment_EmptyBodyKeepsComposer(t *testing.T) {
	s, _ := newSession(t, document.FromSegments(document.TextRun("Patient")))
	require.NoError(t, s.SetSelection(span(0, 0, 0, 7)))

	_, err := s.SubmitComment("   ")
	assert.ErrorIs(t, err, ErrInvalidPayload)
	_, ok := s.Composer()
	assert.True(t, ok)
}

func TestComment_DocumentChanged(t *testing.T) {
	doc := document.FromSegments(document.TextRun("Patient reports"))
	s, _ := newSession(t, doc)
	require.NoError(t, s.SetSelection(span(0, 0, 0, 7)))

	_, err := doc.InsertText(document.Position{}, "X")
	require.NoError(t, err)

	_, err = s.SubmitComment("note")
	assert.ErrorIs(t, err, ErrNoActiveRange)
	assert.Equal(t, "XPatient reports", s.PlainText())
}
