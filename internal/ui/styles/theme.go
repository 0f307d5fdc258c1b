// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// NOTE BODY STYLES
	// ==========================================================================

	Text      lipgloss.Style
	Caret     lipgloss.Style
	Selection lipgloss.Style

	// ==========================================================================
	// EMBEDDED OBJECT STYLES
	// ==========================================================================

	SlashCard       lipgloss.Style
	Chip            lipgloss.Style
	Card            lipgloss.Style
	CardTitle       lipgloss.Style
	Proposal        lipgloss.Style
	ProposalTitle   lipgloss.Style
	Mention         lipgloss.Style
	Attachment      lipgloss.Style
	CommentMark     lipgloss.Style
	CommentMarkBody lipgloss.Style

	// ==========================================================================
	// MENU STYLES
	// ==========================================================================

	MenuBox      lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	MenuDetail   lipgloss.Style
	MenuEmpty    lipgloss.Style

	// ==========================================================================
	// MODAL STYLES
	// ==========================================================================

	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style
	FieldLabel lipgloss.Style
	FieldFocus lipgloss.Style
	FieldError lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	PatientBadge lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
}

// NewTheme creates a theme. name is "dark", "light" or "auto"; "auto" (or
// empty) asks the terminal for its background.
func NewTheme(name string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(name) {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Note body
	t.Text = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Caret = lipgloss.NewStyle().Reverse(true)
	t.Selection = lipgloss.NewStyle().
		Background(SelectionBg).
		Foreground(TextPrimary)

	// Embedded objects
	t.SlashCard = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.Chip = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Emerald)

	t.Card = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(CyanDeep)

	t.CardTitle = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	// Left border only, so a proposal takes exactly one line per row
	t.Proposal = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(Purple).
		PaddingLeft(1)

	t.ProposalTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.Mention = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)

	t.Attachment = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.CommentMark = lipgloss.NewStyle().
		Background(AmberDeep).
		Foreground(TextPrimary)

	t.CommentMarkBody = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	// Menu
	t.MenuBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.MenuItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.MenuSelected = lipgloss.NewStyle().
		Background(Cyan).
		Foreground(Surface).
		Bold(true)

	t.MenuDetail = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.MenuEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Modal
	t.ModalBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.ModalTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		MarginBottom(1)

	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(10)

	t.FieldFocus = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Width(10)

	t.FieldError = lipgloss.NewStyle().
		Foreground(Rose)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.PatientBadge = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Cyan).
		Bold(true).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)
}

// SetSize updates the layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// ContentWidth returns the usable note width, capped at maxWidth when it is
// positive.
func (t *Theme) ContentWidth(maxWidth int) int {
	w := t.Width - 2
	if maxWidth > 0 && w > maxWidth {
		w = maxWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}
