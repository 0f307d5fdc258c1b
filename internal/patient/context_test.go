// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package patient

import (
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	ctx := Context{
		Name:   "Sarah Jenkins",
		DOB:    "1978-04-12",
		Age:    47,
		Gender: "Female",
	}

	tests := []struct {
		id, label string
		want      string
	}{
		{"name", "Name", "Sarah Jenkins"},
		{"dob", "DOB", "1978-04-12"},
		{"age", "Age", "47 yrs"},
		{"gender", "Gender", "Female"},
		{"mrn", "MRN", PlaceholderMRN},
		{"emergency_contact", "Emergency Contact", PlaceholderEmergencyContact},
		{"bp", "BP", "120/80 mmHg"},
		{"insurance", "Insurance", "{Insurance}"},
	}

	for _, tc := range tests {
		if got := ctx.Resolve(tc.id, tc.label); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestVariablesCoverResolve(t *testing.T) {
	ctx := Context{Name: "Sarah Jenkins"}
	for _, v := range Variables() {
		if got := ctx.Resolve(v.ID, v.Label); got == "{"+v.Label+"}" {
			t.Errorf("variable %q has no resolver", v.ID)
		}
	}
}

func TestAgeOn(t *testing.T) {
	now := time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)
	on := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		dob     string
		now     time.Time
		want    int
		wantErr bool
	}{
		{"1978-04-12", now, 47, false},
		{"1978-04-11", now, 48, false},
		{"2030-01-01", now, 0, true},
		{"04/12/1978", now, 0, true},
		// Born in a leap year, birthday after February
		{"2000-03-01", on(2025, time.March, 1), 25, false},
		{"2000-12-31", on(2025, time.December, 30), 24, false},
		// Checked in a leap year, born in a common one
		{"2001-03-01", on(2024, time.February, 29), 22, false},
		{"2001-03-01", on(2024, time.March, 1), 23, false},
		{"2000-02-29", on(2025, time.February, 28), 24, false},
		{"2000-02-29", on(2025, time.March, 1), 25, false},
	}

	for _, tc := range tests {
		got, err := AgeOn(tc.dob, tc.now)
		if (err != nil) != tc.wantErr {
			t.Errorf("AgeOn(%q, %s) error = %v, wantErr %v", tc.dob, tc.now.Format("2006-01-02"), err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("AgeOn(%q, %s) = %d, want %d", tc.dob, tc.now.Format("2006-01-02"), got, tc.want)
		}
	}
}
