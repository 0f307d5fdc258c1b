// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package trigger

import (
	"strings"
	"testing"

	"github.com/jeranaias/chartpad/internal/document"
)

type stubVocab []string

func (v stubVocab) Match(token string) bool {
	for _, label := range v {
		if strings.Contains(strings.ToLower(label), strings.ToLower(token)) {
			return true
		}
	}
	return false
}

func endOf(text string) document.Position {
	return document.Position{Segment: 0, Offset: len([]rune(text))}
}

func TestDetect(t *testing.T) {
	d := NewDetector(stubVocab{"Atorvastatin 20mg", "Lipid Panel"})

	tests := []struct {
		name       string
		text       string
		wantType   Type
		wantFilter string
		wantToken  int // rune length of the token range
	}{
		{"slash at start", "/", Slash, "", 1},
		{"slash after space", "Patient reports /", Slash, "", 1},
		{"slash inside word", "and/", None, "", 0},
		{"slash then text", "/ta", None, "", 0},
		{"variable", "Name: $NA", Variable, "na", 3},
		{"bare dollar", "$", Variable, "", 1},
		{"clinical", "Started ato", Clinical, "ato", 3},
		{"clinical mixed case", "Started ATO", Clinical, "ato", 3},
		{"too short", "Started at", None, "", 0},
		{"no match", "Started xyz", None, "", 0},
		{"not alphanumeric", "ato-", None, "", 0},
		{"trailing space", "Started ato ", None, "", 0},
		{"multibyte prefix", "Café ato", Clinical, "ato", 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := document.FromSegments(document.TextRun(tc.text))
			caret := endOf(tc.text)

			res, ok := d.Detect(doc, caret, EventCharacter)
			if !ok {
				t.Fatal("Detect() skipped a character event")
			}
			if res.Type != tc.wantType {
				t.Fatalf("Type = %v, want %v", res.Type, tc.wantType)
			}
			if res.Filter != tc.wantFilter {
				t.Errorf("Filter = %q, want %q", res.Filter, tc.wantFilter)
			}
			if res.Token.Focus != caret {
				t.Errorf("Token.Focus = %v, want caret %v", res.Token.Focus, caret)
			}
			if got := res.Token.Focus.Offset - res.Token.Anchor.Offset; got != tc.wantToken {
				t.Errorf("token length = %d, want %d", got, tc.wantToken)
			}
		})
	}
}

func TestDetect_NavigationSkipped(t *testing.T) {
	d := NewDetector(nil)
	doc := document.FromSegments(document.TextRun("/"))

	if _, ok := d.Detect(doc, endOf("/"), EventNavigation); ok {
		t.Error("navigation events must not run detection")
	}
	if res, ok := d.Detect(doc, endOf("/"), EventControl); !ok || res.Type != Slash {
		t.Errorf("control event: got %v, %v", res.Type, ok)
	}
}

func TestDetect_TokenStopsAtObject(t *testing.T) {
	chip, err := document.NewObject(document.ClinicalChip{Label: "Lipid Panel", Category: "Lab"})
	if err != nil {
		t.Fatal(err)
	}
	d := NewDetector(stubVocab{"Lipid Panel"})
	doc := document.FromSegments(document.TextRun("x"), chip, document.TextRun("lip"))

	res, _ := d.Detect(doc, document.Position{Segment: 2, Offset: 3}, EventCharacter)
	if res.Type != Clinical {
		t.Fatalf("Type = %v, want clinical", res.Type)
	}
	if res.Token.Anchor != (document.Position{Segment: 2, Offset: 0}) {
		t.Errorf("Token.Anchor = %v", res.Token.Anchor)
	}

	// A caret right after the object is not in a text run.
	res, _ = d.Detect(document.FromSegments(chip), document.Position{Segment: 1}, EventCharacter)
	if res.Type != None {
		t.Errorf("Type = %v, want none", res.Type)
	}
}

func TestDetect_NilVocabulary(t *testing.T) {
	d := NewDetector(nil)
	doc := document.FromSegments(document.TextRun("ato"))
	res, _ := d.Detect(doc, endOf("ato"), EventCharacter)
	if res.Type != None {
		t.Errorf("Type = %v, want none", res.Type)
	}
}
