// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package trigger

import (
	"strings"
	"unicode"

	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/util"
)

// =============================================================================
// TYPES
// =============================================================================

// Type identifies the menu a trigger opens.
type Type int

const (
	None Type = iota
	Slash
	Variable
	Clinical
)

// String returns the trigger name.
func (t Type) String() string {
	switch t {
	case Slash:
		return "slash"
	case Variable:
		return "variable"
	case Clinical:
		return "clinical"
	default:
		return "none"
	}
}

// EventClass is the class of the input event that preceded detection.
type EventClass int

const (
	// EventCharacter is a printable character being typed.
	EventCharacter EventClass = iota

	// EventNavigation covers arrows, Enter, Tab, Escape, Home and End.
	EventNavigation

	// EventControl covers editing keys such as Backspace and Delete.
	EventControl
)

// Result is the outcome of detection. Token spans the trigger text that a
// commit removes; it is collapsed at the caret when Type is None.
type Result struct {
	Type   Type
	Filter string
	Token  document.Range
}

// Vocabulary reports whether a token matches any clinical entry.
type Vocabulary interface {
	Match(token string) bool
}

// MinClinicalToken is the shortest token that is looked up in the vocabulary.
const MinClinicalToken = 3

// =============================================================================
// DETECTOR
// =============================================================================

// Detector applies the trigger rules.
type Detector struct {
	vocab Vocabulary
}

// NewDetector creates a detector. A nil vocabulary disables clinical triggers.
func NewDetector(vocab Vocabulary) *Detector {
	return &Detector{vocab: vocab}
}

// Detect examines the text before caret. It returns false for navigation
// events, which must not re-run detection; the caller then leaves any open
// menu untouched.
func (d *Detector) Detect(doc *document.Document, caret document.Position, ev EventClass) (Result, bool) {
	if ev == EventNavigation {
		return Result{}, false
	}

	caret = doc.Normalize(caret)
	none := Result{Type: None, Token: document.Caret(caret)}
	if doc.ValidatePosition(caret) != nil || !doc.InText(caret) {
		return none, true
	}

	seg, _ := doc.At(caret.Segment)
	runes := []rune(seg.Text)[:caret.Offset]
	n := len(runes)

	// Rule 1: slash at start of run or after whitespace.
	if n >= 1 && runes[n-1] == '/' && (n == 1 || unicode.IsSpace(runes[n-2])) {
		return Result{
			Type:  Slash,
			Token: tokenRange(caret, 1),
		}, true
	}

	start := n
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	token := string(runes[start:])
	tokenLen := n - start

	// Rule 2: variable.
	if strings.HasPrefix(token, "$") {
		return Result{
			Type:   Variable,
			Filter: strings.ToLower(token[1:]),
			Token:  tokenRange(caret, tokenLen),
		}, true
	}

	// Rule 3: clinical vocabulary.
	if d.vocab != nil && tokenLen >= MinClinicalToken && util.IsAlphanumeric(token) && d.vocab.Match(token) {
		return Result{
			Type:   Clinical,
			Filter: strings.ToLower(token),
			Token:  tokenRange(caret, tokenLen),
		}, true
	}

	return none, true
}

func tokenRange(caret document.Position, length int) document.Range {
	start := document.Position{Segment: caret.Segment, Offset: caret.Offset - length}
	return document.Range{Anchor: start, Focus: caret}
}
