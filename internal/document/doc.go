// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package document provides the segment model for a clinical note.
//
// A Document is a flat, ordered list of Segments. A Segment is either a
// text run (plain, editable text) or an embedded object (an atomic card,
// chip or tag carrying a typed Payload). Embedded objects never contain
// other segments.
//
// # Key Types
//
//   - Document: Ordered segments plus a revision counter
//   - Segment: Text run or embedded object
//   - Payload: Per-kind record (Appointment, Order, ClinicalChip, ...)
//   - Position, Range: Caret coordinates in (segment, rune offset) form
//
// # Positions
//
// A Position inside a text run addresses a rune offset. A Position whose
// segment is an embedded object (offset 0) sits just before that object,
// and (Len(), 0) is the end of the document.
//
// # Usage
//
//	doc := document.New()
//	caret, _ := doc.InsertText(document.Position{}, "Started ")
//	chip, _ := document.NewObject(document.ClinicalChip{Label: "Atorvastatin 20mg", Category: "eRx"})
//	idx, _ := doc.InsertAt(caret, chip)
package document
