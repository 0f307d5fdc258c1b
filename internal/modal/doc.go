// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package modal holds the form state for appointment and order cards.
//
// A Form is opened with a default payload (fresh insertion) or with the
// payload of an existing card (edit in place). The editor confirms or
// cancels it; the form itself never touches the document.
//
// # Key Types
//
//   - Form: field-addressable payload being edited
//   - Defaults: the values pre-filled into a fresh form
//   - Field: one labeled form field
package modal
