package services

import (
	"context"
	"math/rand/v2"
	"time"
)

// Latency emulates the round trip of a remote API. Every service call waits
// on it before touching the store, so a call cancelled during the wait has
// no effect.
type Latency struct {
	min, max time.Duration
}

func NewLatency(min, max time.Duration) *Latency {
	if max < min {
		max = min
	}
	return &Latency{min: min, max: max}
}

// Wait blocks for a uniformly random duration in [min, max] or until ctx is
// done. A nil Latency only checks ctx.
func (l *Latency) Wait(ctx context.Context) error {
	if l == nil || l.max <= 0 {
		return ctx.Err()
	}

	d := l.min
	if l.max > l.min {
		d += rand.N(l.max - l.min + 1)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
