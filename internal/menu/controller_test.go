// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package menu

import (
	"errors"
	"testing"

	"github.com/jeranaias/chartpad/internal/document"
	"github.com/jeranaias/chartpad/internal/trigger"
)

type recorder struct {
	calls []Candidate
	types []trigger.Type
	err   error
}

func (r *recorder) CommitCandidate(c Candidate, t trigger.Type, token document.Range) error {
	r.calls = append(r.calls, c)
	r.types = append(r.types, t)
	return r.err
}

func newTestController(r *recorder) *Controller {
	c := NewController(r)
	c.SlashFn = func() []Candidate {
		return []Candidate{{ID: "appointment", Label: "Appointment"}, {ID: "task", Label: "Task"}, {ID: "note", Label: "Internal Note"}}
	}
	c.VariablesFn = func() []Candidate {
		return []Candidate{{ID: "name", Label: "Name"}, {ID: "dob", Label: "DOB"}, {ID: "age", Label: "Age"}}
	}
	c.ClinicalFn = func() []Candidate {
		return []Candidate{
			{ID: "Atorvastatin 20mg", Label: "Atorvastatin 20mg", Category: "eRx"},
			{ID: "Lipid Panel", Label: "Lipid Panel", Category: "Lab"},
		}
	}
	return c
}

// TestControllerNavigation tests wraparound in both directions
func TestControllerNavigation(t *testing.T) {
	c := newTestController(&recorder{})

	if c.IsOpen() {
		t.Error("new controller should be closed")
	}

	c.Open(trigger.Slash, "", Point{}, document.Range{})
	st := c.State()
	if !st.Open || len(st.Candidates) != 3 {
		t.Fatalf("slash menu: open=%v candidates=%d", st.Open, len(st.Candidates))
	}
	if st.Selected != 0 {
		t.Errorf("initial selection should be 0, got %d", st.Selected)
	}

	c.Navigate(Up)
	if got := c.State().Selected; got != 2 {
		t.Errorf("Up from 0 should wrap to 2, got %d", got)
	}

	c.Navigate(Down)
	if got := c.State().Selected; got != 0 {
		t.Errorf("Down from 2 should wrap to 0, got %d", got)
	}

	c.Hover(1)
	if got := c.State().Selected; got != 1 {
		t.Errorf("Hover(1) should select 1, got %d", got)
	}
	c.Hover(7)
	if got := c.State().Selected; got != 1 {
		t.Errorf("Hover out of range should be ignored, got %d", got)
	}
}

func TestControllerNavigation_WrapForAllSizes(t *testing.T) {
	for n := 1; n <= 5; n++ {
		c := NewController(nil)
		c.ClinicalFn = func() []Candidate {
			return make([]Candidate, n)
		}
		c.Open(trigger.Clinical, "", Point{}, document.Range{})

		for i := 0; i < n-1; i++ {
			c.Navigate(Down)
		}
		c.Navigate(Down)
		if got := c.State().Selected; got != 0 {
			t.Errorf("n=%d: Down from last = %d, want 0", n, got)
		}
		c.Navigate(Up)
		if got := c.State().Selected; got != n-1 {
			t.Errorf("n=%d: Up from 0 = %d, want %d", n, got, n-1)
		}
	}
}

func TestControllerFiltering(t *testing.T) {
	tests := []struct {
		typ    trigger.Type
		filter string
		want   []string
	}{
		{trigger.Variable, "na", []string{"name"}},
		{trigger.Variable, "", []string{"name", "dob", "age"}},
		{trigger.Variable, "zz", nil},
		{trigger.Clinical, "ato", []string{"Atorvastatin 20mg"}},
		{trigger.Clinical, "PANEL", []string{"Lipid Panel"}},
		{trigger.Slash, "zzz", []string{"appointment", "task", "note"}},
	}

	c := newTestController(&recorder{})
	for _, tc := range tests {
		c.Open(tc.typ, tc.filter, Point{}, document.Range{})
		var got []string
		for _, cand := range c.State().Candidates {
			got = append(got, cand.ID)
		}
		if len(got) != len(tc.want) {
			t.Errorf("%v %q: got %v, want %v", tc.typ, tc.filter, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%v %q: got %v, want %v", tc.typ, tc.filter, got, tc.want)
				break
			}
		}
	}
}

func TestControllerOpenReplaces(t *testing.T) {
	c := newTestController(&recorder{})

	c.Open(trigger.Slash, "", Point{X: 3}, document.Range{})
	c.Navigate(Down)
	c.Open(trigger.Variable, "", Point{X: 9}, document.Range{})

	st := c.State()
	if st.Type != trigger.Variable || st.Selected != 0 || st.Anchor.X != 9 {
		t.Errorf("Open should replace the previous menu, got %+v", st)
	}
}

func TestControllerCommit(t *testing.T) {
	r := &recorder{}
	c := newTestController(r)

	c.Open(trigger.Slash, "", Point{}, document.Range{})
	c.Navigate(Down)
	if err := c.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if c.IsOpen() {
		t.Error("menu should close after commit")
	}
	if len(r.calls) != 1 || r.calls[0].ID != "task" || r.types[0] != trigger.Slash {
		t.Errorf("committed %v", r.calls)
	}

	// Errors from the committer are returned, and the menu still closes.
	r.err = errors.New("boom")
	c.Open(trigger.Variable, "", Point{}, document.Range{})
	if err := c.CommitAt(2); err == nil {
		t.Error("expected committer error")
	}
	if c.IsOpen() || r.calls[1].ID != "age" {
		t.Errorf("CommitAt(2): open=%v calls=%v", c.IsOpen(), r.calls)
	}
}

func TestControllerCommit_Empty(t *testing.T) {
	r := &recorder{}
	c := newTestController(r)

	c.Open(trigger.Variable, "zz", Point{}, document.Range{})
	c.Navigate(Down)
	if got := c.State().Selected; got != 0 {
		t.Errorf("navigate on empty menu should be a no-op, got %d", got)
	}
	if err := c.Commit(); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("Commit() error = %v, want ErrNoCandidate", err)
	}
	if c.IsOpen() {
		t.Error("empty commit should close the menu")
	}

	c.Open(trigger.Slash, "", Point{}, document.Range{})
	if err := c.CommitAt(10); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("CommitAt(10) error = %v, want ErrNoCandidate", err)
	}
	if len(r.calls) != 0 {
		t.Errorf("nothing should be committed, got %v", r.calls)
	}

	if err := c.Commit(); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("commit on closed menu error = %v", err)
	}
}
