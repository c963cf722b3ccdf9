package events

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrGateClosed is returned by a Gate that has not been opened.
var ErrGateClosed = errors.New("events: no consumer is running for this event")

// Gate forwards events only after Open. It sits in front of a publisher
// whose events need a consumer in this process, so callers can fall back
// while that consumer is not running.
type Gate struct {
	next Publisher
	open atomic.Bool
}

// NewGate wraps next. A nil next keeps the gate closed for good.
func NewGate(next Publisher) *Gate {
	return &Gate{next: next}
}

func (g *Gate) Open() {
	if g.next != nil {
		g.open.Store(true)
	}
}

func (g *Gate) Close() {
	g.open.Store(false)
}

func (g *Gate) IsOpen() bool {
	return g.open.Load()
}

func (g *Gate) Publish(ctx context.Context, event Event) error {
	if !g.open.Load() {
		return ErrGateClosed
	}
	return g.next.Publish(ctx, event)
}
