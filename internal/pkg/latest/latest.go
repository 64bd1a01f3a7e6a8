// Package latest keeps only the most recent call per key alive. Starting a new
// call for a key cancels whatever call was in flight for that key, so a slow,
// superseded response can never overwrite a newer one.
package latest

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned when a newer call for the same key has started.
var ErrSuperseded = errors.New("superseded by a newer request")

type entry struct {
	seq    uint64
	cancel context.CancelCauseFunc
}

type Group struct {
	mu      sync.Mutex
	seq     uint64
	current map[string]entry
}

func NewGroup() *Group {
	return &Group{current: make(map[string]entry)}
}

// Ticket identifies one call started with Begin.
type Ticket struct {
	g   *Group
	key string
	seq uint64
}

// Begin registers a new call for key and cancels the previous one. The
// returned context is cancelled with ErrSuperseded when a newer call begins.
// Callers must invoke Done when they finish.
func (g *Group) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancelCause(ctx)

	g.mu.Lock()
	g.seq++
	seq := g.seq
	if prev, ok := g.current[key]; ok {
		prev.cancel(ErrSuperseded)
	}
	g.current[key] = entry{seq: seq, cancel: cancel}
	g.mu.Unlock()

	return ctx, Ticket{g: g, key: key, seq: seq}
}

// Current reports whether t is still the most recent call for its key.
func (t Ticket) Current() bool {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	e, ok := t.g.current[t.key]
	return ok && e.seq == t.seq
}

// Done releases the ticket. It is a no-op if a newer call already replaced it.
func (t Ticket) Done() {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	if e, ok := t.g.current[t.key]; ok && e.seq == t.seq {
		e.cancel(nil)
		delete(t.g.current, t.key)
	}
}

// Superseded reports whether err came from a call replaced by a newer one.
func Superseded(ctx context.Context, err error) bool {
	if errors.Is(err, ErrSuperseded) {
		return true
	}
	return err != nil && errors.Is(context.Cause(ctx), ErrSuperseded)
}

// Debounce waits for delay and then reports whether the ticket is still
// current. A false return means the caller lost to a newer call and should
// not contact the backend at all.
func Debounce(ctx context.Context, t Ticket, delay time.Duration) bool {
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	return t.Current()
}

// Len is the number of calls currently in flight.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.current)
}
