// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notepad

import (
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/menu"
	"github.com/jeranaias/chartpad/internal/util"
)

// =============================================================================
// OBJECT LAYOUT
// =============================================================================

// proposalHint is the last row of a rendered AI proposal.
const proposalHint = "M-a approve  M-d discard"

// label returns the single-line text an inline object renders as.
func label(seg document.Segment) string {
	switch p := seg.Payload.(type) {
	case document.SlashCard:
		return "[/" + p.TitleText + "]"
	case document.ClinicalChip:
		return " " + p.Label + " "
	case document.Appointment:
		return "[" + p.Summary() + "]"
	case document.Order:
		return "[" + p.Summary() + "]"
	case document.CommentHighlight:
		return util.Flatten(p.Text)
	}
	return util.Flatten(seg.Plain())
}

// proposalLines returns the rows of a rendered AI proposal.
func proposalLines(p document.AiProposal) []string {
	lines := make([]string, 0, len(p.Items)+2)
	lines = append(lines, "AI proposal")
	for _, item := range p.Items {
		lines = append(lines, "  - "+item)
	}
	return append(lines, proposalHint)
}

// cursor tracks the screen cell while laying out a document.
type cursor struct {
	x, y int
}

func (c *cursor) advance(s string) {
	for _, r := range s {
		if r == '\n' {
			c.y++
			c.x = 0
			continue
		}
		c.x += runewidth.RuneWidth(r)
	}
}

// block moves past a multi-row object, which always starts on its own row
// and leaves the cursor at the start of the row after it.
func (c *cursor) block(rows int) {
	if c.x > 0 {
		c.y++
	}
	c.y += rows
	c.x = 0
}

// Anchor maps a document position to the screen cell it renders at,
// relative to the top-left corner of the note body.
func Anchor(doc *document.Document, p document.Position) menu.Point {
	var c cursor
	for i := 0; i < doc.Len() && i <= p.Segment; i++ {
		seg, _ := doc.At(i)
		if seg.IsText() {
			text := seg.Text
			if i == p.Segment {
				runes := []rune(text)
				text = string(runes[:min(p.Offset, len(runes))])
			}
			c.advance(text)
			continue
		}
		if i == p.Segment {
			break
		}
		if prop, ok := seg.Payload.(document.AiProposal); ok {
			c.block(len(proposalLines(prop)))
			continue
		}
		c.advance(label(seg))
	}
	return menu.Point{X: c.x, Y: c.y}
}
