// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package editor

import (
	"context"
	"sync"
)

// =============================================================================
// GENERATION SLOT (THREAD-SAFE)
// =============================================================================

// genSlot tracks the single generation request that may still change the
// document. Every begin or invalidate bumps the token, so a result carrying
// an older token is stale.
type genSlot struct {
	mu       sync.Mutex
	token    uint64
	inFlight bool
	cancel   context.CancelFunc
}

// begin cancels the request in flight, if any, and starts a new one.
func (g *genSlot) begin() (context.Context, uint64) {
	ctx, cancel := context.WithCancel(context.Background())

	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
	g.token++
	g.inFlight = true
	g.cancel = cancel
	return ctx, g.token
}

// invalidate cancels the request in flight so its result is ignored.
// Reports whether there was one.
func (g *genSlot) invalidate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inFlight {
		return false
	}
	g.stopLocked()
	g.token++
	return true
}

// settle marks the request with token as done. It returns false, leaving the
// slot untouched, when token is not the latest.
func (g *genSlot) settle(token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if token != g.token {
		return false
	}
	g.stopLocked()
	return true
}

func (g *genSlot) latest() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

func (g *genSlot) busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight
}

// stopLocked releases the context of the current request. g.mu must be held.
func (g *genSlot) stopLocked() {
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.inFlight = false
}
