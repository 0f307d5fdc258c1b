// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package selection tracks the live caret/selection of a document and the
// saved range used to resume editing after focus leaves the note.
//
// A SavedRange is taken before a modal dialog opens and consumed exactly
// once when the dialog confirms. It records the document revision it was
// taken at; restoring it against a document that has since changed fails
// with ErrStale and the saved range is discarded.
package selection
