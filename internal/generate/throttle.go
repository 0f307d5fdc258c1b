// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package generate

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttled limits how often the wrapped service is called. Callers block
// in Generate until a token is available or ctx is done.
type Throttled struct {
	next    Service
	limiter *rate.Limiter
}

// NewThrottled allows perMinute requests per minute with a burst of one.
// A non-positive perMinute disables limiting.
func NewThrottled(next Service, perMinute int) *Throttled {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	return &Throttled{
		next:    next,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Generate waits for the limiter, then calls the wrapped service.
func (t *Throttled) Generate(ctx context.Context, req Request) (Response, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return Response{}, err
	}
	return t.next.Generate(ctx, req)
}
