// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package patient

import (
	"fmt"
	"time"
)

// =============================================================================
// PATIENT CONTEXT
// =============================================================================

// Vitals holds the vital-sign strings inserted by the vitals variables.
type Vitals struct {
	BloodPressure string
	HeartRate     string
	Temperature   string
	SpO2          string
	Weight        string
}

// Context is the patient the note is being written about.
type Context struct {
	Name             string
	DOB              string // YYYY-MM-DD
	Age              int
	Gender           string
	MRN              string
	EmergencyContact string
	Vitals           Vitals
}

// Placeholder values used when the chart has nothing better.
const (
	PlaceholderMRN              = "MRN-00000000"
	PlaceholderEmergencyContact = "Emergency contact on file"
)

// DefaultVitals returns the vital-sign placeholders.
func DefaultVitals() Vitals {
	return Vitals{
		BloodPressure: "120/80 mmHg",
		HeartRate:     "72 bpm",
		Temperature:   "98.6 °F",
		SpO2:          "98%",
		Weight:        "165 lb",
	}
}

// AgeOn computes the age in whole years from a YYYY-MM-DD date of birth.
func AgeOn(dob string, now time.Time) (int, error) {
	born, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return 0, fmt.Errorf("invalid date of birth %q: %w", dob, err)
	}
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return 0, fmt.Errorf("date of birth %q is in the future", dob)
	}
	return age, nil
}

// =============================================================================
// VARIABLES
// =============================================================================

// Variable is an entry of the "$" menu.
type Variable struct {
	ID          string
	Label       string
	Description string
}

// Variables returns the variable registry in menu order.
func Variables() []Variable {
	return []Variable{
		{"name", "Name", "Patient full name"},
		{"dob", "DOB", "Date of birth"},
		{"age", "Age", "Age in years"},
		{"gender", "Gender", "Gender"},
		{"mrn", "MRN", "Medical record number"},
		{"emergency_contact", "Emergency Contact", "Emergency contact"},
		{"bp", "BP", "Blood pressure"},
		{"hr", "HR", "Heart rate"},
		{"temp", "Temp", "Temperature"},
		{"spo2", "SpO2", "Oxygen saturation"},
		{"weight", "Weight", "Weight"},
	}
}

// Resolve returns the text a variable expands to. Unknown ids resolve to
// the bracketed label.
func (c Context) Resolve(id, label string) string {
	switch id {
	case "name":
		return c.Name
	case "dob":
		return c.DOB
	case "age":
		return fmt.Sprintf("%d yrs", c.Age)
	case "gender":
		return c.Gender
	case "mrn":
		return orDefault(c.MRN, PlaceholderMRN)
	case "emergency_contact":
		return orDefault(c.EmergencyContact, PlaceholderEmergencyContact)
	case "bp":
		return orDefault(c.Vitals.BloodPressure, DefaultVitals().BloodPressure)
	case "hr":
		return orDefault(c.Vitals.HeartRate, DefaultVitals().HeartRate)
	case "temp":
		return orDefault(c.Vitals.Temperature, DefaultVitals().Temperature)
	case "spo2":
		return orDefault(c.Vitals.SpO2, DefaultVitals().SpO2)
	case "weight":
		return orDefault(c.Vitals.Weight, DefaultVitals().Weight)
	}
	return "{" + label + "}"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
