// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package modal

import (
	"errors"
	"fmt"

	"github.com/jeranaias/chartpad/internal/document"
)

var (
	// ErrUnsupportedKind is returned for kinds that have no form.
	ErrUnsupportedKind = errors.New("no form for kind")

	// ErrUnknownField is returned by Set for a key the form does not have.
	ErrUnknownField = errors.New("unknown form field")
)

// =============================================================================
// DEFAULTS
// =============================================================================

// Defaults are pre-filled into fresh forms. Date and time are never
// defaulted so an appointment must be scheduled explicitly.
type Defaults struct {
	AppointmentReason   string
	AppointmentLocation string
	OrderPriority       string
	OrderPayment        string
	OrderDelivery       string
}

// StandardDefaults returns the built-in form defaults.
func StandardDefaults() Defaults {
	return Defaults{
		AppointmentReason:   "Follow-up",
		AppointmentLocation: "Main Clinic",
		OrderPriority:       "Routine",
		OrderPayment:        "Insurance",
		OrderDelivery:       "Electronic",
	}
}

// PayloadFor returns the default payload for a fresh card of kind.
func (d Defaults) PayloadFor(kind document.Kind) (document.Payload, error) {
	switch kind {
	case document.KindAppointmentCard:
		return document.Appointment{
			Reason:   d.AppointmentReason,
			Location: d.AppointmentLocation,
		}, nil
	case document.KindOrderCard:
		return document.Order{
			Priority: d.OrderPriority,
			Payment:  d.OrderPayment,
			Delivery: d.OrderDelivery,
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
}

// Editable reports whether kind can be opened in a form.
func Editable(kind document.Kind) bool {
	return kind == document.KindAppointmentCard || kind == document.KindOrderCard
}

// =============================================================================
// FORM
// =============================================================================

// Field is one form field.
type Field struct {
	Key      string
	Label    string
	Value    string
	Required bool
}

// Form is the state of an open appointment or order modal.
type Form struct {
	kind    document.Kind
	payload document.Payload

	// EditingID is the segment being edited, empty for a fresh insertion.
	EditingID string
}

// NewForm opens a form on p. editingID names the segment being edited.
func NewForm(p document.Payload, editingID string) (*Form, error) {
	if p == nil || !Editable(p.Kind()) {
		return nil, ErrUnsupportedKind
	}
	return &Form{kind: p.Kind(), payload: p, EditingID: editingID}, nil
}

// Kind returns the kind of card the form builds.
func (f *Form) Kind() document.Kind {
	return f.kind
}

// Editing reports whether the form edits an existing card.
func (f *Form) Editing() bool {
	return f.EditingID != ""
}

// Payload returns the current payload.
func (f *Form) Payload() document.Payload {
	return f.payload
}

// Validate checks the current payload.
func (f *Form) Validate() error {
	return f.payload.Validate()
}

// Fields lists the form fields in display order.
func (f *Form) Fields() []Field {
	switch p := f.payload.(type) {
	case document.Appointment:
		return []Field{
			{Key: "date", Label: "Date", Value: p.Date, Required: true},
			{Key: "time", Label: "Time", Value: p.Time, Required: true},
			{Key: "reason", Label: "Reason", Value: p.Reason},
			{Key: "location", Label: "Location", Value: p.Location},
		}
	case document.Order:
		return []Field{
			{Key: "test", Label: "Test", Value: p.Test},
			{Key: "priority", Label: "Priority", Value: p.Priority},
			{Key: "payment", Label: "Payment", Value: p.Payment},
			{Key: "delivery", Label: "Delivery", Value: p.Delivery},
			{Key: "notes", Label: "Notes", Value: p.Notes},
		}
	}
	return nil
}

// Set updates one field.
func (f *Form) Set(key, value string) error {
	switch p := f.payload.(type) {
	case document.Appointment:
		switch key {
		case "date":
			p.Date = value
		case "time":
			p.Time = value
		case "reason":
			p.Reason = value
		case "location":
			p.Location = value
		default:
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, f.kind, key)
		}
		f.payload = p
	case document.Order:
		switch key {
		case "test":
			p.Test = value
		case "priority":
			p.Priority = value
		case "payment":
			p.Payment = value
		case "delivery":
			p.Delivery = value
		case "notes":
			p.Notes = value
		default:
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, f.kind, key)
		}
		f.payload = p
	}
	return nil
}
