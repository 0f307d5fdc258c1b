// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// KINDS
// =============================================================================

// Kind discriminates segments. KindText marks a text run; every other kind is
// an atomic embedded object.
type Kind string

const (
	KindText             Kind = "text"
	KindSlashCard        Kind = "slash_card"
	KindClinicalChip     Kind = "clinical_chip"
	KindAppointmentCard  Kind = "appointment_card"
	KindOrderCard        Kind = "order_card"
	KindAiProposal       Kind = "ai_proposal"
	KindMentionTag       Kind = "mention_tag"
	KindAttachmentTag    Kind = "attachment_tag"
	KindCommentHighlight Kind = "comment_highlight"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// IsObject reports whether the kind is an embedded object kind.
func (k Kind) IsObject() bool {
	_, ok := payloadFactories[k]
	return ok
}

// ErrInvalidPayload is returned when a payload fails validation.
var ErrInvalidPayload = errors.New("invalid payload")

// Payload is the typed record carried by an embedded object.
// Implementations are value types and are treated as immutable once
// attached to a segment.
type Payload interface {
	// Kind returns the segment kind this payload belongs to.
	Kind() Kind

	// Validate reports whether the payload is complete.
	Validate() error

	// Summary is the plain-text projection of the object.
	Summary() string
}

func invalid(kind Kind, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidPayload, kind, msg)
}

// =============================================================================
// PAYLOAD TYPES
// =============================================================================

// SlashCard is a generic card created by a non-deferred slash command.
type SlashCard struct {
	CommandID string `json:"commandId"`
	TitleText string `json:"titleText"`
}

func (SlashCard) Kind() Kind { return KindSlashCard }

func (p SlashCard) Validate() error {
	if p.CommandID == "" {
		return invalid(KindSlashCard, "missing command id")
	}
	return nil
}

func (p SlashCard) Summary() string { return p.TitleText }

// ClinicalChip is a vocabulary term committed from the clinical menu.
type ClinicalChip struct {
	Label    string `json:"label"`
	Category string `json:"category"`
}

func (ClinicalChip) Kind() Kind { return KindClinicalChip }

func (p ClinicalChip) Validate() error {
	if p.Label == "" {
		return invalid(KindClinicalChip, "missing label")
	}
	return nil
}

func (p ClinicalChip) Summary() string { return p.Label }

// Appointment is the payload of an appointment card.
type Appointment struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Reason   string `json:"reason"`
	Location string `json:"location"`
}

func (Appointment) Kind() Kind { return KindAppointmentCard }

// Validate requires a date and a time; reason and location are optional.
func (p Appointment) Validate() error {
	if strings.TrimSpace(p.Date) == "" {
		return invalid(KindAppointmentCard, "date is required")
	}
	if strings.TrimSpace(p.Time) == "" {
		return invalid(KindAppointmentCard, "time is required")
	}
	return nil
}

func (p Appointment) Summary() string {
	s := "Appointment " + p.Date + " " + p.Time
	if p.Reason != "" {
		s += " - " + p.Reason
	}
	return s
}

// Order is the payload of a lab order card. Payment and delivery always
// carry defaults, so an order has no required fields.
type Order struct {
	Test     string `json:"test"`
	Priority string `json:"priority"`
	Payment  string `json:"payment"`
	Delivery string `json:"delivery"`
	Notes    string `json:"notes,omitempty"`
}

func (Order) Kind() Kind { return KindOrderCard }

func (Order) Validate() error { return nil }

func (p Order) Summary() string {
	if p.Test == "" {
		return "Lab Order"
	}
	return "Lab Order: " + p.Test
}

// AiProposal is a batch of suggested actions awaiting approval or discard.
type AiProposal struct {
	RequestID string   `json:"requestId,omitempty"`
	Items     []string `json:"items"`
}

func (AiProposal) Kind() Kind { return KindAiProposal }

func (p AiProposal) Validate() error {
	if len(p.Items) == 0 {
		return invalid(KindAiProposal, "no items")
	}
	return nil
}

func (p AiProposal) Summary() string { return strings.Join(p.Items, "\n") }

// Mention tags a person in the note.
type Mention struct {
	Name string `json:"name"`
}

func (Mention) Kind() Kind { return KindMentionTag }

func (p Mention) Validate() error {
	if p.Name == "" {
		return invalid(KindMentionTag, "missing name")
	}
	return nil
}

func (p Mention) Summary() string { return "@" + p.Name }

// Attachment references a file attached to the note.
type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

func (Attachment) Kind() Kind { return KindAttachmentTag }

func (p Attachment) Validate() error {
	if p.Name == "" {
		return invalid(KindAttachmentTag, "missing name")
	}
	return nil
}

func (p Attachment) Summary() string { return "[" + p.Name + "]" }

// CommentHighlight marks a span of text that carries a comment thread.
// Static is set when the span could not be wrapped in place and Text holds
// a flattened copy of the original selection.
type CommentHighlight struct {
	CommentID string `json:"commentId"`
	Text      string `json:"text"`
	Body      string `json:"body,omitempty"`
	Static    bool   `json:"static,omitempty"`
}

func (CommentHighlight) Kind() Kind { return KindCommentHighlight }

func (p CommentHighlight) Validate() error {
	if p.CommentID == "" {
		return invalid(KindCommentHighlight, "missing comment id")
	}
	return nil
}

func (p CommentHighlight) Summary() string { return p.Text }

// =============================================================================
// FACTORIES
// =============================================================================

// payloadFactories maps each object kind to a constructor for its payload,
// used by the JSON decoder.
var payloadFactories = map[Kind]func() Payload{
	KindSlashCard:        func() Payload { return &SlashCard{} },
	KindClinicalChip:     func() Payload { return &ClinicalChip{} },
	KindAppointmentCard:  func() Payload { return &Appointment{} },
	KindOrderCard:        func() Payload { return &Order{} },
	KindAiProposal:       func() Payload { return &AiProposal{} },
	KindMentionTag:       func() Payload { return &Mention{} },
	KindAttachmentTag:    func() Payload { return &Attachment{} },
	KindCommentHighlight: func() Payload { return &CommentHighlight{} },
}

// deref turns a decoded *T payload back into the T value stored on segments.
func deref(p Payload) Payload {
	switch v := p.(type) {
	case *SlashCard:
		return *v
	case *ClinicalChip:
		return *v
	case *Appointment:
		return *v
	case *Order:
		return *v
	case *AiProposal:
		return *v
	case *Mention:
		return *v
	case *Attachment:
		return *v
	case *CommentHighlight:
		return *v
	}
	return p
}
