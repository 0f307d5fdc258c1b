// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package menu owns the single contextual menu of the editor.
//
// At most one menu is open at a time. Opening a menu replaces whatever was
// open before, so slash, variable and clinical menus never coexist.
//
// # Key Types
//
//   - Controller: opens, navigates, commits and closes the menu
//   - State: read-only snapshot of the menu for rendering
//   - Candidate: one selectable entry
//   - Committer: receives the committed candidate
//
// # Usage
//
//	c := menu.NewController(session)
//	c.SlashFn = func() []menu.Candidate { ... }
//	c.Open(trigger.Slash, "", anchor, token)
//	c.Navigate(menu.Down)
//	err := c.Commit()
package menu
