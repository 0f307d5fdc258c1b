// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chartpad/internal/document"
)

func TestSnapshot(t *testing.T) {
	s, _ := newSession(t, nil)

	v := s.Snapshot()
	require.NotNil(t, v.Selection)
	assert.Nil(t, v.Modal)
	assert.False(t, v.Menu.Open)

	require.NoError(t, s.Type("Next: /"))
	v = s.Snapshot()
	assert.True(t, v.Menu.Open)
	assert.Equal(t, 6, v.Menu.Anchor.X, "anchored at the trigger character")

	require.NoError(t, s.HandleKey(key(KeyEnter)))
	v = s.Snapshot()
	assert.Nil(t, v.Selection, "focus is in the modal")
	require.NotNil(t, v.Modal)
	assert.Equal(t, document.KindAppointmentCard, v.Modal.Kind)
	assert.Empty(t, v.Modal.EditingID)
	assert.NotEmpty(t, v.Modal.Err, "date and time are required")
}

func TestTextAnchor(t *testing.T) {
	doc := document.FromSegments(document.TextRun("line one\n日本 /"))
	p := TextAnchor(doc, document.Position{Segment: 0, Offset: 13})
	assert.Equal(t, 5, p.X, "wide runes take two columns")
	assert.Equal(t, 1, p.Y)
}
