// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notepad

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chartpad/internal/editor"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the application shortcuts. Plain typing, arrows, Enter,
// Tab and Esc go to the note itself and are not listed here.
type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Copy        key.Binding
	SelectLeft  key.Binding
	SelectRight key.Binding
	Generate    key.Binding
	CancelGen   key.Binding
	Approve     key.Binding
	Discard     key.Binding
	EditCard    key.Binding
	Mention     key.Binding
	Attach      key.Binding

	// Modal and prompt keys
	Confirm   key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("C-q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "toggle help"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy note"),
		),
		SelectLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("S-left", "select"),
		),
		SelectRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("S-right", "select"),
		),
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "ask AI"),
		),
		CancelGen: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "cancel AI"),
		),
		Approve: key.NewBinding(
			key.WithKeys("alt+a"),
			key.WithHelp("M-a", "approve proposal"),
		),
		Discard: key.NewBinding(
			key.WithKeys("alt+d"),
			key.WithHelp("M-d", "discard proposal"),
		),
		EditCard: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "edit card"),
		),
		Mention: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "mention"),
		),
		Attach: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "attach file"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("Tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("S-Tab", "previous field"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Copy, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Note
		{k.SelectLeft, k.SelectRight, k.Copy, k.EditCard},
		// Insert
		{k.Mention, k.Attach},
		// AI
		{k.Generate, k.CancelGen, k.Approve, k.Discard},
		// App
		{k.Help, k.Quit},
	}
}

// =============================================================================
// TRANSLATION
// =============================================================================

// editorKeys maps terminal keys to editor keys.
var editorKeys = map[tea.KeyType]editor.Key{
	tea.KeyBackspace: editor.KeyBackspace,
	tea.KeyDelete:    editor.KeyDelete,
	tea.KeyLeft:      editor.KeyLeft,
	tea.KeyRight:     editor.KeyRight,
	tea.KeyUp:        editor.KeyUp,
	tea.KeyDown:      editor.KeyDown,
	tea.KeyHome:      editor.KeyHome,
	tea.KeyEnd:       editor.KeyEnd,
	tea.KeyEnter:     editor.KeyEnter,
	tea.KeyTab:       editor.KeyTab,
	tea.KeyEsc:       editor.KeyEscape,
}

// Translate converts a terminal key into editor events. Typed runes become
// one event each so that trigger detection sees every character. Keys the
// editor does not understand yield nothing.
func Translate(msg tea.KeyMsg) []editor.KeyEvent {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		out := make([]editor.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == '\n' || r == '\r' {
				out = append(out, editor.KeyEvent{Key: editor.KeyEnter})
				continue
			}
			out = append(out, editor.Char(r))
		}
		return out
	case tea.KeySpace:
		return []editor.KeyEvent{editor.Char(' ')}
	}
	if k, ok := editorKeys[msg.Type]; ok {
		return []editor.KeyEvent{{Key: k}}
	}
	return nil
}
