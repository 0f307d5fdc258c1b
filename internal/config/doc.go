// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chartpad.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - PatientConfig: The patient the note is written about
//   - GenerationConfig: Generation backend, latency and throttling
//   - ValidateErrors: Every validation failure found in one pass
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CHARTPAD_*)
//   - ~/.chartpad/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Build the editor's collaborators:
//
//	pt := cfg.PatientContext()
//	defaults := cfg.FormDefaults()
package config
