// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor implements the note authoring session.
//
// A Session owns the document, the caret, the contextual menu, the open
// modal form, the comment composer, and the in-flight generation request.
// All state changes happen synchronously on the caller's goroutine; the only
// asynchronous work is generation, which runs as a Bubble Tea command and
// reports back through GenerationMsg.
//
// # Key Types
//
//   - Session: the owning editor state
//   - KeyEvent: an input key routed through HandleKey
//   - View: read-only projection for rendering
//   - EditError: wraps the recoverable errors listed in errors.go
//
// # Usage
//
//	s := editor.New(editor.Config{Patient: ctx})
//	s.Type("Started ato")       // opens the clinical menu
//	s.HandleKey(editor.KeyEvent{Key: editor.KeyEnter})
//	fmt.Println(s.PlainText())  // "Started Atorvastatin 20mg"
//
// # Error Recovery
//
// No error is fatal. Operations that cannot proceed leave the document
// unchanged (or apply the documented fallback), log an event, and return an
// error that matches one of the sentinels with errors.Is.
package editor
