// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
)

// =============================================================================
// SEGMENT
// =============================================================================

// Segment is one unit of a document: a text run when Payload is nil,
// otherwise an atomic embedded object.
type Segment struct {
	// ID identifies the segment for the lifetime of the document.
	// Text runs created by splitting share no identity guarantees.
	ID string

	// Text is the content of a text run. Unused for objects.
	Text string

	// Payload is the typed record of an embedded object, nil for text runs.
	Payload Payload
}

// TextRun creates a text segment.
func TextRun(content string) Segment {
	return Segment{ID: uuid.New().String(), Text: content}
}

// NewObject creates an embedded object segment after validating the payload.
func NewObject(p Payload) (Segment, error) {
	if p == nil {
		return Segment{}, fmt.Errorf("%w: nil payload", ErrInvalidPayload)
	}
	if err := p.Validate(); err != nil {
		return Segment{}, err
	}
	return Segment{ID: uuid.New().String(), Payload: p}, nil
}

// Kind returns the segment discriminant.
func (s Segment) Kind() Kind {
	if s.Payload == nil {
		return KindText
	}
	return s.Payload.Kind()
}

// IsText reports whether the segment is a text run.
func (s Segment) IsText() bool {
	return s.Payload == nil
}

// RuneLen returns the length of a text run in runes, 0 for objects.
func (s Segment) RuneLen() int {
	if !s.IsText() {
		return 0
	}
	return utf8.RuneCountInString(s.Text)
}

// Plain returns the flattened text of the segment.
func (s Segment) Plain() string {
	if s.IsText() {
		return s.Text
	}
	return s.Payload.Summary()
}

// =============================================================================
// JSON
// =============================================================================

type segmentJSON struct {
	ID      string          `json:"id"`
	Kind    Kind            `json:"kind"`
	Text    string          `json:"text,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MarshalJSON encodes the segment with a kind discriminant.
func (s Segment) MarshalJSON() ([]byte, error) {
	out := segmentJSON{ID: s.ID, Kind: s.Kind()}
	if s.IsText() {
		out.Text = s.Text
		return json.Marshal(out)
	}
	raw, err := json.Marshal(s.Payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", s.Kind(), err)
	}
	out.Payload = raw
	return json.Marshal(out)
}

// UnmarshalJSON decodes a segment. Payloads are decoded by kind but not
// validated; stored documents may hold incomplete payloads, which are caught
// when an object is re-opened for editing.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var in segmentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Kind == KindText || in.Kind == "" {
		*s = Segment{ID: in.ID, Text: in.Text}
		return nil
	}
	factory, ok := payloadFactories[in.Kind]
	if !ok {
		return fmt.Errorf("unknown segment kind %q", in.Kind)
	}
	p := factory()
	if len(in.Payload) > 0 {
		if err := json.Unmarshal(in.Payload, p); err != nil {
			return fmt.Errorf("%w: decode %s: %v", ErrInvalidPayload, in.Kind, err)
		}
	}
	*s = Segment{ID: in.ID, Payload: deref(p)}
	return nil
}
