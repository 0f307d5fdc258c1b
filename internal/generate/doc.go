// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package generate provides the asynchronous generation services that
// produce AI proposals, transcripts, and drafted note text.
//
// Every service answers a Request exactly once with a Response or an error.
// Callers run services off the UI loop and cancel them through the context.
//
// # Key Types
//
//   - Service: the generation contract
//   - Canned: deterministic offline generator with a simulated delay
//   - Ollama: generator backed by a local Ollama server
//   - Throttled: rate-limited decorator for any Service
//
// # Usage
//
//	svc := generate.NewThrottled(generate.NewCanned(800*time.Millisecond), 30)
//	resp, err := svc.Generate(ctx, generate.Request{Prompt: "suggest orders"})
package generate
