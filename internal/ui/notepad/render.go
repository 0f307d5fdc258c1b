// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notepad

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/editor"
	"github.com/jeranaias/chartpad/internal/ui/styles"
)

// =============================================================================
// DOCUMENT RENDERING
// =============================================================================

const placeholder = "Start typing. / for commands, $ for patient data."

type cellClass int

const (
	cellPlain cellClass = iota
	cellSelected
	cellCaret
)

// renderer paints a document, batching runs of cells that share a style.
// Its row structure matches Anchor exactly.
type renderer struct {
	theme *styles.Theme
	b     strings.Builder
	col   int

	run   []rune
	class cellClass

	caret    *document.Position
	selStart document.Position
	selEnd   document.Position
	hasSel   bool
}

func newRenderer(v editor.View, theme *styles.Theme) *renderer {
	r := &renderer{theme: theme}
	if v.Selection != nil {
		sel := *v.Selection
		if sel.Collapsed() {
			p := sel.Focus
			r.caret = &p
		} else {
			r.selStart, r.selEnd = sel.Ordered()
			r.hasSel = true
		}
	}
	return r
}

func (r *renderer) isCaret(p document.Position) bool {
	return r.caret != nil && *r.caret == p
}

func (r *renderer) selected(p document.Position) bool {
	return r.hasSel && p.Compare(r.selStart) >= 0 && p.Compare(r.selEnd) < 0
}

func (r *renderer) style(c cellClass) lipgloss.Style {
	switch c {
	case cellSelected:
		return r.theme.Selection
	case cellCaret:
		return r.theme.Caret
	}
	return r.theme.Text
}

func (r *renderer) flush() {
	if len(r.run) == 0 {
		return
	}
	r.b.WriteString(r.style(r.class).Render(string(r.run)))
	r.run = r.run[:0]
}

func (r *renderer) cell(ch rune, c cellClass) {
	if c != r.class {
		r.flush()
		r.class = c
	}
	r.run = append(r.run, ch)
	r.col++
}

func (r *renderer) newline() {
	r.flush()
	r.b.WriteByte('\n')
	r.col = 0
}

func (r *renderer) caretCell() {
	r.cell(' ', cellCaret)
}

// styled writes text that carries its own style.
func (r *renderer) styled(s lipgloss.Style, text string) {
	r.flush()
	r.b.WriteString(s.Render(text))
	r.col += lipgloss.Width(text)
}

func (r *renderer) text(i int, seg document.Segment) {
	runes := []rune(seg.Text)
	for j, ch := range runes {
		p := document.Position{Segment: i, Offset: j}
		switch {
		case r.isCaret(p) && ch == '\n':
			r.caretCell()
			r.newline()
		case r.isCaret(p):
			r.cell(ch, cellCaret)
		case ch == '\n':
			r.newline()
		case r.selected(p):
			r.cell(ch, cellSelected)
		default:
			r.cell(ch, cellPlain)
		}
	}
	if r.isCaret(document.Position{Segment: i, Offset: len(runes)}) {
		r.caretCell()
	}
}

func (r *renderer) object(i int, seg document.Segment) {
	p := document.Position{Segment: i}
	if r.isCaret(p) {
		r.caretCell()
	}

	if prop, ok := seg.Payload.(document.AiProposal); ok {
		r.proposal(prop)
		return
	}

	s := r.objectStyle(seg)
	if r.selected(p) {
		s = r.theme.Selection
	}
	r.styled(s, label(seg))
}

func (r *renderer) objectStyle(seg document.Segment) lipgloss.Style {
	switch seg.Kind() {
	case document.KindSlashCard:
		return r.theme.SlashCard
	case document.KindClinicalChip:
		return r.theme.Chip
	case document.KindAppointmentCard, document.KindOrderCard:
		return r.theme.Card
	case document.KindMentionTag:
		return r.theme.Mention
	case document.KindAttachmentTag:
		return r.theme.Attachment
	case document.KindCommentHighlight:
		return r.theme.CommentMark
	}
	return r.theme.Text
}

func (r *renderer) proposal(p document.AiProposal) {
	if r.col > 0 {
		r.newline()
	}
	lines := proposalLines(p)
	rows := make([]string, len(lines))
	rows[0] = r.theme.ProposalTitle.Render(lines[0])
	for i := 1; i < len(lines)-1; i++ {
		rows[i] = r.theme.Text.Render(lines[i])
	}
	rows[len(lines)-1] = r.theme.ShortcutDesc.Render(lines[len(lines)-1])

	r.flush()
	r.b.WriteString(r.theme.Proposal.Render(strings.Join(rows, "\n")))
	r.newline()
}

// renderDocument paints the note body of v.
func renderDocument(v editor.View, theme *styles.Theme) string {
	r := newRenderer(v, theme)
	for i, seg := range v.Segments {
		if seg.IsText() {
			r.text(i, seg)
			continue
		}
		r.object(i, seg)
	}
	if r.isCaret(document.Position{Segment: len(v.Segments)}) {
		r.caretCell()
	}
	if isEmpty(v.Segments) {
		r.styled(theme.ShortcutDesc, placeholder)
	}
	r.flush()
	return r.b.String()
}

func isEmpty(segs []document.Segment) bool {
	return len(segs) == 0 || (len(segs) == 1 && segs[0].IsText() && segs[0].Text == "")
}
