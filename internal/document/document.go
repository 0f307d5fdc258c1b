// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	// ErrOutOfRange is returned for positions or indices outside the document.
	ErrOutOfRange = errors.New("position out of range")

	// ErrNotText is returned when a text operation targets an embedded object.
	ErrNotText = errors.New("segment is not a text run")
)

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is an ordered list of segments. Every mutation bumps the
// revision, which lets holders of saved positions detect staleness.
type Document struct {
	segs []Segment
	rev  uint64
}

// New creates a document holding a single empty text run.
func New() *Document {
	return &Document{segs: []Segment{TextRun("")}}
}

// FromSegments creates a document from existing segments.
func FromSegments(segs ...Segment) *Document {
	return &Document{segs: slices.Clone(segs)}
}

// Len returns the number of segments.
func (d *Document) Len() int {
	return len(d.segs)
}

// Revision returns the mutation counter.
func (d *Document) Revision() uint64 {
	return d.rev
}

// At returns the segment at index i.
func (d *Document) At(i int) (Segment, bool) {
	if i < 0 || i >= len(d.segs) {
		return Segment{}, false
	}
	return d.segs[i], true
}

// Segments returns a copy of the segment list.
func (d *Document) Segments() []Segment {
	return slices.Clone(d.segs)
}

// IndexOf returns the index of the segment with the given ID, or -1.
func (d *Document) IndexOf(id string) int {
	for i, s := range d.segs {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the index of the first segment of the given kind, or -1.
func (d *Document) Find(kind Kind) int {
	for i, s := range d.segs {
		if s.Kind() == kind {
			return i
		}
	}
	return -1
}

// Count returns how many segments have the given kind.
func (d *Document) Count(kind Kind) int {
	n := 0
	for _, s := range d.segs {
		if s.Kind() == kind {
			n++
		}
	}
	return n
}

// End returns the normalized end-of-document position.
func (d *Document) End() Position {
	return d.Normalize(Position{Segment: len(d.segs)})
}

func (d *Document) touch() {
	d.rev++
}

// =============================================================================
// POSITION HELPERS
// =============================================================================

// ValidatePosition reports whether p addresses a caret location in d.
func (d *Document) ValidatePosition(p Position) error {
	if p.Segment < 0 || p.Segment > len(d.segs) || p.Offset < 0 {
		return fmt.Errorf("%w: %s", ErrOutOfRange, p)
	}
	if p.Segment == len(d.segs) || !d.segs[p.Segment].IsText() {
		if p.Offset != 0 {
			return fmt.Errorf("%w: %s: offset on object boundary", ErrOutOfRange, p)
		}
		return nil
	}
	if p.Offset > d.segs[p.Segment].RuneLen() {
		return fmt.Errorf("%w: %s", ErrOutOfRange, p)
	}
	return nil
}

// ValidateRange reports whether both endpoints of r are valid.
func (d *Document) ValidateRange(r Range) error {
	if err := d.ValidatePosition(r.Anchor); err != nil {
		return err
	}
	return d.ValidatePosition(r.Focus)
}

// Normalize moves a boundary position onto the end of a directly preceding
// text run, so that typing continues that run.
func (d *Document) Normalize(p Position) Position {
	if p.Offset != 0 || p.Segment <= 0 || p.Segment > len(d.segs) {
		return p
	}
	if p.Segment < len(d.segs) && d.segs[p.Segment].IsText() {
		return p
	}
	prev := d.segs[p.Segment-1]
	if !prev.IsText() {
		return p
	}
	return Position{Segment: p.Segment - 1, Offset: prev.RuneLen()}
}

// InText reports whether p lies inside a text run.
func (d *Document) InText(p Position) bool {
	return p.Segment >= 0 && p.Segment < len(d.segs) && d.segs[p.Segment].IsText()
}

// =============================================================================
// SPLICE API
// =============================================================================

// SplitRunAt splits the text run at p into two runs and returns the index
// of the right half. Either half may be empty.
func (d *Document) SplitRunAt(p Position) (int, error) {
	if err := d.ValidatePosition(p); err != nil {
		return 0, err
	}
	if !d.InText(p) {
		return 0, fmt.Errorf("split at %s: %w", p, ErrNotText)
	}
	runes := []rune(d.segs[p.Segment].Text)
	d.segs[p.Segment].Text = string(runes[:p.Offset])
	right := TextRun(string(runes[p.Offset:]))
	d.segs = slices.Insert(d.segs, p.Segment+1, right)
	d.touch()
	return p.Segment + 1, nil
}

// InsertAt inserts seg at p, splitting a text run if p lies inside one, and
// returns the index the segment landed at. Inserting an object never leaves
// an empty text run on either side of it.
func (d *Document) InsertAt(p Position, seg Segment) (int, error) {
	if err := d.ValidatePosition(p); err != nil {
		return 0, err
	}

	idx := p.Segment
	if d.InText(p) {
		switch n := d.segs[p.Segment].RuneLen(); p.Offset {
		case 0:
			idx = p.Segment
		case n:
			idx = p.Segment + 1
		default:
			right, err := d.SplitRunAt(p)
			if err != nil {
				return 0, err
			}
			idx = right
		}
	}

	d.segs = slices.Insert(d.segs, idx, seg)
	if !seg.IsText() {
		idx = d.pruneAround(idx)
	}
	d.touch()
	return idx, nil
}

// pruneAround drops empty text runs adjacent to idx and returns the
// segment's new index.
func (d *Document) pruneAround(idx int) int {
	if idx+1 < len(d.segs) && d.segs[idx+1].IsText() && d.segs[idx+1].Text == "" {
		d.segs = slices.Delete(d.segs, idx+1, idx+2)
	}
	if idx-1 >= 0 && d.segs[idx-1].IsText() && d.segs[idx-1].Text == "" {
		d.segs = slices.Delete(d.segs, idx-1, idx)
		idx--
	}
	return idx
}

// Append adds seg at the end of the document and returns its index.
func (d *Document) Append(seg Segment) int {
	d.segs = append(d.segs, seg)
	d.touch()
	return len(d.segs) - 1
}

// ReplaceSegment swaps the segment at index i for seg.
func (d *Document) ReplaceSegment(i int, seg Segment) error {
	if i < 0 || i >= len(d.segs) {
		return fmt.Errorf("replace segment %d: %w", i, ErrOutOfRange)
	}
	d.segs[i] = seg
	d.touch()
	return nil
}

// RemoveAt deletes the segment at index i and returns it.
func (d *Document) RemoveAt(i int) (Segment, error) {
	if i < 0 || i >= len(d.segs) {
		return Segment{}, fmt.Errorf("remove segment %d: %w", i, ErrOutOfRange)
	}
	removed := d.segs[i]
	d.segs = slices.Delete(d.segs, i, i+1)
	d.touch()
	return removed, nil
}

// MergeRuns joins the text runs at i and i+1 and returns the position of the
// join. It reports false, and changes nothing, unless both are text runs.
func (d *Document) MergeRuns(i int) (Position, bool) {
	if i < 0 || i+1 >= len(d.segs) || !d.segs[i].IsText() || !d.segs[i+1].IsText() {
		return Position{}, false
	}
	join := Position{Segment: i, Offset: d.segs[i].RuneLen()}
	d.segs[i].Text += d.segs[i+1].Text
	d.segs = slices.Delete(d.segs, i+1, i+2)
	d.touch()
	return join, true
}

// InsertText splices s into the document at p and returns the caret after
// the inserted text. At an object boundary the text extends the preceding
// run or starts a new one.
func (d *Document) InsertText(p Position, s string) (Position, error) {
	if err := d.ValidatePosition(p); err != nil {
		return p, err
	}
	if s == "" {
		return p, nil
	}
	n := utf8.RuneCountInString(s)

	if d.InText(p) {
		runes := []rune(d.segs[p.Segment].Text)
		d.segs[p.Segment].Text = string(runes[:p.Offset]) + s + string(runes[p.Offset:])
		d.touch()
		return Position{Segment: p.Segment, Offset: p.Offset + n}, nil
	}

	if p.Segment > 0 && d.segs[p.Segment-1].IsText() {
		prev := &d.segs[p.Segment-1]
		offset := prev.RuneLen()
		prev.Text += s
		d.touch()
		return Position{Segment: p.Segment - 1, Offset: offset + n}, nil
	}

	d.segs = slices.Insert(d.segs, p.Segment, TextRun(s))
	d.touch()
	return Position{Segment: p.Segment, Offset: n}, nil
}

// DeleteRange removes everything between the endpoints of r, including
// whole objects that lie inside it, and returns the collapsed start.
func (d *Document) DeleteRange(r Range) (Position, error) {
	if err := d.ValidateRange(r); err != nil {
		return r.Anchor, err
	}
	start, end := r.Ordered()
	if start == end {
		return start, nil
	}

	if start.Segment == end.Segment {
		runes := []rune(d.segs[start.Segment].Text)
		d.segs[start.Segment].Text = string(runes[:start.Offset]) + string(runes[end.Offset:])
		d.touch()
		return start, nil
	}

	first := start.Segment
	if d.InText(start) {
		runes := []rune(d.segs[first].Text)
		d.segs[first].Text = string(runes[:start.Offset])
		first++
	}
	last := end.Segment
	if d.InText(end) {
		runes := []rune(d.segs[last].Text)
		d.segs[last].Text = string(runes[end.Offset:])
	}
	d.segs = slices.Delete(d.segs, first, last)
	d.touch()
	return start, nil
}

// =============================================================================
// PROJECTIONS
// =============================================================================

// TextIn returns the flattened text between the endpoints of r. Objects
// contribute their summary.
func (d *Document) TextIn(r Range) string {
	if d.ValidateRange(r) != nil {
		return ""
	}
	start, end := r.Ordered()
	var b strings.Builder
	for i := start.Segment; i <= end.Segment && i < len(d.segs); i++ {
		seg := d.segs[i]
		if !seg.IsText() {
			if i < end.Segment {
				b.WriteString(seg.Plain())
			}
			continue
		}
		runes := []rune(seg.Text)
		from, to := 0, len(runes)
		if i == start.Segment {
			from = start.Offset
		}
		if i == end.Segment {
			to = end.Offset
		}
		b.WriteString(string(runes[from:to]))
	}
	return b.String()
}

// SingleRun reports whether r lies entirely within one text run.
func (d *Document) SingleRun(r Range) bool {
	start, end := r.Ordered()
	return start.Segment == end.Segment && d.InText(start)
}

// PlainText returns the flattened text of the whole document.
func (d *Document) PlainText() string {
	var b strings.Builder
	for _, seg := range d.segs {
		b.WriteString(seg.Plain())
	}
	return b.String()
}

// MarshalJSON encodes the document as its segment list.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.segs)
}

// UnmarshalJSON decodes a segment list.
func (d *Document) UnmarshalJSON(data []byte) error {
	var segs []Segment
	if err := json.Unmarshal(data, &segs); err != nil {
		return err
	}
	d.segs = segs
	d.touch()
	return nil
}
