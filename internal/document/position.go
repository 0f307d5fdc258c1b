// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import "fmt"

// Position addresses a caret location as (segment index, rune offset).
type Position struct {
	Segment int `json:"segment"`
	Offset  int `json:"offset"`
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Segment, p.Offset)
}

// Compare orders two positions by segment, then offset.
func (p Position) Compare(other Position) int {
	switch {
	case p.Segment < other.Segment:
		return -1
	case p.Segment > other.Segment:
		return 1
	case p.Offset < other.Offset:
		return -1
	case p.Offset > other.Offset:
		return 1
	}
	return 0
}

// Range is a selection between an anchor and a focus. Anchor == Focus is a
// collapsed caret.
type Range struct {
	Anchor Position `json:"anchor"`
	Focus  Position `json:"focus"`
}

// Caret returns a collapsed range at p.
func Caret(p Position) Range {
	return Range{Anchor: p, Focus: p}
}

// Collapsed reports whether the range is a caret.
func (r Range) Collapsed() bool {
	return r.Anchor == r.Focus
}

// Ordered returns the range endpoints as (start, end).
func (r Range) Ordered() (Position, Position) {
	if r.Anchor.Compare(r.Focus) <= 0 {
		return r.Anchor, r.Focus
	}
	return r.Focus, r.Anchor
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s..%s]", r.Anchor, r.Focus)
}
