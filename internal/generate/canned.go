// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package generate

import (
	"context"
	"time"
)

// =============================================================================
// CANNED GENERATOR
// =============================================================================

// Canned answers every request with fixed content after Delay. It stands in
// for a real model when running offline and in tests.
type Canned struct {
	Delay time.Duration

	Proposal   []string
	Transcript []string
	Note       []string
}

// NewCanned creates a canned generator with the built-in content.
func NewCanned(delay time.Duration) *Canned {
	return &Canned{
		Delay: delay,
		Proposal: []string{
			"Order Lipid Panel",
			"Refill Atorvastatin 20mg",
			"Schedule follow-up in 3 months",
		},
		Transcript: []string{
			"Patient reports improved energy since starting medication. Denies chest pain or shortness of breath.",
		},
		Note: []string{
			"Assessment: Hyperlipidemia, stable on current therapy.",
			"Plan: Continue statin, repeat lipid panel before next visit.",
		},
	}
}

// Generate waits for Delay, or until ctx is done, then returns the content
// for the kind implied by the prompt.
func (c *Canned) Generate(ctx context.Context, req Request) (Response, error) {
	if c.Delay > 0 {
		timer := time.NewTimer(c.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Response{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	kind := ClassifyPrompt(req.Prompt)
	var items []string
	switch kind {
	case KindTranscript:
		items = c.Transcript
	case KindNote:
		items = c.Note
	default:
		items = c.Proposal
	}
	if len(items) == 0 {
		return Response{}, ErrEmptyResponse
	}
	return Response{
		RequestID: req.ID,
		Kind:      kind,
		Items:     append([]string(nil), items...),
	}, nil
}
