// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package trigger recognizes the character patterns that open a menu.
//
// Detection looks at the text immediately before the caret, inside the
// caret's text run, and applies three rules in priority order:
//
//   - "/" at the start of a run or after whitespace opens the slash menu
//   - a token starting with "$" opens the variable menu
//   - an alphanumeric token of three or more characters that matches the
//     clinical vocabulary opens the clinical menu
//
// # Key Types
//
//   - Detector: applies the rules against a document and caret
//   - Result: the detected trigger, its filter, and the token range
//   - EventClass: the class of input that preceded detection
//
// # Usage
//
//	d := trigger.NewDetector(catalog)
//	res, ok := d.Detect(doc, caret, trigger.EventCharacter)
//	if ok && res.Type != trigger.None {
//	    // open the menu for res.Type filtered by res.Filter
//	}
package trigger
