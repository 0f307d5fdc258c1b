// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog provides the clinical vocabulary used by the clinical
// trigger: a fixed list of labeled terms, each tagged with a category
// (eRx, Lab, Dx, Imaging, Procedure).
//
// The built-in catalog can be extended or replaced by a TOML file:
//
//	mode = "extend"   # or "replace"
//
//	[[entry]]
//	label = "Rosuvastatin 10mg"
//	category = "eRx"
//
// A Watcher reloads the file when it changes on disk.
package catalog
