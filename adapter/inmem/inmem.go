// Package inmem implements the Service collaborators of the scenes in memory.
package inmem

import (
	"context"
	"time"

	"go.llib.dev/testcase/clock"
)

// wait simulates a slow backend.
// It returns early with the context error when ctx is done first.
func wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-clock.After(d):
		return nil
	}
}
