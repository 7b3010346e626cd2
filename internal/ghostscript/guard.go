// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ghostscript

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Guard serializes access to the interpreter. The native library holds one
// live instance per process, so every session must run inside Do.
type Guard struct {
	sem *semaphore.Weighted
}

// NewGuard returns a guard with a single slot.
func NewGuard() *Guard {
	return &Guard{sem: semaphore.NewWeighted(1)}
}

var processGuard = NewGuard()

// ProcessGuard returns the guard shared by every conversion in the process.
func ProcessGuard() *Guard { return processGuard }

// Do waits for the slot, runs fn, and releases the slot when fn returns or
// panics. ctx is only consulted while waiting; once fn has started it runs to
// completion.
func (g *Guard) Do(ctx context.Context, fn func() error) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("waiting for interpreter: %w", err)
	}
	defer g.sem.Release(1)
	return fn()
}
