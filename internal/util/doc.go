// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions shared across chartpad.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes, TruncateWidth: UTF-8 safe truncation with ellipsis
//   - Fold, ContainsFold: Case-insensitive matching for menu filters
//   - IsAlphanumeric: Token classification for the clinical trigger
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Preview a selection for the comment composer
//	preview := util.TruncateRunes(util.Flatten(selected), 80)
//
//	// Match a vocabulary label
//	ok := util.ContainsFold("Atorvastatin 20mg", "ATO")
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
