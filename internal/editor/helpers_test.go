// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/patient"
)

var testPatient = patient.Context{
	Name:   "Sarah Jenkins",
	DOB:    "1978-04-12",
	Age:    47,
	Gender: "Female",
}

// newSession returns a session over doc (nil for an empty document) and
// the buffer its logger writes to.
func newSession(t *testing.T, doc *document.Document) (*Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s := New(Config{
		Document: doc,
		Patient:  testPatient,
		Logger:   log.New(&buf, "", 0),
	})
	return s, &buf
}

func object(t *testing.T, p document.Payload) document.Segment {
	t.Helper()
	seg, err := document.NewObject(p)
	require.NoError(t, err)
	return seg
}

func kinds(s *Session) []document.Kind {
	var out []document.Kind
	for _, seg := range s.Snapshot().Segments {
		out = append(out, seg.Kind())
	}
	return out
}

func caret(t *testing.T, s *Session) document.Position {
	t.Helper()
	r, ok := s.Selection()
	require.True(t, ok, "expected a live caret")
	require.True(t, r.Collapsed(), "expected a collapsed caret")
	return r.Focus
}

func key(k Key) KeyEvent {
	return KeyEvent{Key: k}
}
