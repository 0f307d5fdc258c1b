// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notepad provides the interactive terminal editor for chartpad.
//
// The Model is a thin Bubble Tea adapter over an editor.Session: every
// keystroke is translated into editor key events, and every frame is drawn
// from the session's read-only Snapshot. Widget state (form inputs, the
// comment box, the AI prompt and the spinner) is the only state it owns.
//
// # Key Types
//
//   - Model: Bubble Tea model for the note editor
//   - KeyMap: Application shortcuts, rendered through bubbles/help
//   - Options: Theme, width cap, clipboard and logger
//
// # Usage
//
//	rt, _ := cli.NewRuntime(cfg, cli.RuntimeOptions{Anchor: notepad.Anchor})
//	m := notepad.New(rt.Session, notepad.Options{Theme: cfg.UI.Theme})
//	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
//
// Anchor must be passed to the session so that menus and the comment box
// line up with the rendered note.
package notepad
