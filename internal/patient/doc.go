// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package patient provides the patient context and the "$" variable registry.
//
// Typing "$" followed by a filter opens the variable menu. Committing a
// variable splices its resolved value into the note as plain text, e.g.
// "$name" becomes "Sarah Jenkins" and "$age" becomes "47 yrs".
package patient
