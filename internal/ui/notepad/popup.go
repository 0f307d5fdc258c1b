// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notepad

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chartpad/internal/editor"
	"github.com/jeranaias/chartpad/internal/menu"
	"github.com/jeranaias/chartpad/internal/trigger"
	"github.com/jeranaias/chartpad/internal/ui/styles"
	"github.com/jeranaias/chartpad/internal/util"
)

// =============================================================================
// MENU POPUP
// =============================================================================

const (
	popupWidth      = 48
	popupLabelWidth = 24
	popupMaxVisible = 8
)

// visibleWindow returns the slice of n items to show so that selected
// stays in view, centred where possible.
func visibleWindow(n, selected, maxVisible int) (int, int) {
	if n <= maxVisible {
		return 0, n
	}
	start := selected - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > n {
		end = n
		start = end - maxVisible
	}
	return start, end
}

func menuTitle(t trigger.Type) string {
	switch t {
	case trigger.Slash:
		return "Commands"
	case trigger.Variable:
		return "Patient data"
	case trigger.Clinical:
		return "Clinical terms"
	}
	return ""
}

// renderMenu renders the open menu as a bordered popup.
func renderMenu(st menu.State, theme *styles.Theme) string {
	header := theme.MenuDetail.Render(menuTitle(st.Type))
	if st.Filter != "" {
		header += theme.MenuDetail.Render(": " + st.Filter)
	}

	if len(st.Candidates) == 0 {
		body := theme.MenuEmpty.Render("No matches")
		return theme.MenuBox.Width(popupWidth).Render(header + "\n" + body)
	}

	start, end := visibleWindow(len(st.Candidates), st.Selected, popupMaxVisible)
	items := make([]string, 0, end-start+1)
	items = append(items, header)
	for i := start; i < end; i++ {
		items = append(items, renderCandidate(st.Candidates[i], i == st.Selected, theme))
	}
	if end < len(st.Candidates) || start > 0 {
		items = append(items, theme.MenuEmpty.Render(
			util.TruncateWidth(positionHint(st.Selected, len(st.Candidates)), popupWidth-2)))
	}
	return theme.MenuBox.Width(popupWidth).Render(strings.Join(items, "\n"))
}

// renderCandidate renders a single menu row.
func renderCandidate(c menu.Candidate, isSelected bool, theme *styles.Theme) string {
	labelStyle := theme.MenuItem.Width(popupLabelWidth)
	detailStyle := theme.MenuDetail
	indicator := "  "
	if isSelected {
		labelStyle = theme.MenuSelected.Width(popupLabelWidth)
		indicator = "> "
	}

	detail := c.Detail
	if detail == "" {
		detail = c.Category
	}
	detailWidth := popupWidth - popupLabelWidth - 4
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		theme.ShortcutKey.Render(indicator),
		labelStyle.Render(util.TruncateWidth(c.Label, popupLabelWidth)),
		detailStyle.Render(util.TruncateWidth(detail, detailWidth)),
	)
}

func positionHint(selected, n int) string {
	return fmt.Sprintf("item %d of %d", selected+1, n)
}

// =============================================================================
// COMMENT COMPOSER
// =============================================================================

// renderComposer renders the comment prompt for a selection.
func renderComposer(c editor.CommentComposer, input string, theme *styles.Theme) string {
	quote := util.TruncateWidth(util.Flatten(c.Preview), popupWidth-6)
	lines := []string{
		theme.CommentMarkBody.Render("Comment on \"" + quote + "\""),
		input,
		theme.ShortcutDesc.Render("Enter submit  Esc cancel"),
	}
	return theme.MenuBox.BorderForeground(styles.Amber).Width(popupWidth).Render(strings.Join(lines, "\n"))
}

// =============================================================================
// OVERLAY
// =============================================================================

// popupOrigin returns the body row a popup is placed under and its left
// column, kept within width.
func popupOrigin(rows int, at menu.Point, popupW, width int) (int, int) {
	row := at.Y
	if row >= rows {
		row = rows - 1
	}
	if row < 0 {
		row = 0
	}

	x := at.X
	if width > 0 && x+popupW > width {
		x = width - popupW
	}
	if x < 0 {
		x = 0
	}
	return row, x
}

// overlay inserts popup below row at.Y of body, indented to at.X but kept
// within width.
func overlay(body []string, at menu.Point, popup string, width int) []string {
	row, x := popupOrigin(len(body), at, lipgloss.Width(popup), width)
	indented := lipgloss.NewStyle().MarginLeft(x).Render(popup)

	out := make([]string, 0, len(body)+lipgloss.Height(popup))
	out = append(out, body[:row+1]...)
	out = append(out, strings.Split(indented, "\n")...)
	return append(out, body[row+1:]...)
}

// menuHit maps a cell (x, y), relative to the first body row, to the index
// of the candidate drawn there.
func menuHit(st menu.State, bodyRows int, x, y, width int, theme *styles.Theme) (int, bool) {
	if !st.Open || len(st.Candidates) == 0 {
		return 0, false
	}
	popup := renderMenu(st, theme)
	popupW := lipgloss.Width(popup)
	row, left := popupOrigin(bodyRows, st.Anchor, popupW, width)
	if x < left || x >= left+popupW {
		return 0, false
	}

	// Below the body row, past the top frame and the title line
	line := y - (row + 1) - theme.MenuBox.GetBorderTopSize() - theme.MenuBox.GetPaddingTop() - 1
	start, end := visibleWindow(len(st.Candidates), st.Selected, popupMaxVisible)
	if line < 0 || start+line >= end {
		return 0, false
	}
	return start + line, true
}
