// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command registry for the note editor.
//
// Typing "/" after whitespace opens the slash menu, which always lists the
// full registry in order; slash commands are not filtered by typing.
//
// # Built-in Commands
//
//   - appointment: Deferred, opens the appointment modal
//   - order: Deferred, opens the lab order modal
//   - task, note, referral, followup: Insert a card immediately
//
// # Usage
//
//	registry := commands.NewRegistry()
//	cmd := registry.Get("task")
//	title := "Untitled " + cmd.Label
package commands
