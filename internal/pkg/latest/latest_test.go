package latest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_NewerCallCancelsOlder(t *testing.T) {
	g := NewGroup()

	oldCtx, oldTicket := g.Begin(context.Background(), "s1:/admin/leave")
	newCtx, newTicket := g.Begin(context.Background(), "s1:/admin/leave")

	select {
	case <-oldCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("older context was not cancelled")
	}
	assert.True(t, errors.Is(context.Cause(oldCtx), ErrSuperseded))
	assert.False(t, oldTicket.Current())
	assert.True(t, newTicket.Current())
	assert.NoError(t, newCtx.Err())

	// A stale Done must not release the newer call.
	oldTicket.Done()
	assert.Equal(t, 1, g.Len())
	assert.True(t, newTicket.Current())

	newTicket.Done()
	assert.Equal(t, 0, g.Len())
}

func TestGroup_KeysAreIndependent(t *testing.T) {
	g := NewGroup()

	ctxA, a := g.Begin(context.Background(), "a")
	_, b := g.Begin(context.Background(), "b")

	assert.NoError(t, ctxA.Err())
	assert.True(t, a.Current())
	assert.True(t, b.Current())
	a.Done()
	b.Done()
}

func TestSuperseded(t *testing.T) {
	g := NewGroup()
	ctx, _ := g.Begin(context.Background(), "k")
	_, latest := g.Begin(context.Background(), "k")
	defer latest.Done()

	assert.True(t, Superseded(ctx, ctx.Err()))
	assert.True(t, Superseded(context.Background(), ErrSuperseded))
	assert.False(t, Superseded(context.Background(), errors.New("boom")))
	assert.False(t, Superseded(context.Background(), nil))
}

func TestDebounce(t *testing.T) {
	g := NewGroup()

	ctx1, t1 := g.Begin(context.Background(), "search")
	done := make(chan bool, 1)
	go func() { done <- Debounce(ctx1, t1, 200*time.Millisecond) }()

	time.Sleep(20 * time.Millisecond)
	ctx2, t2 := g.Begin(context.Background(), "search")
	defer t2.Done()

	select {
	case ok := <-done:
		assert.False(t, ok, "superseded call must not proceed")
	case <-time.After(time.Second):
		t.Fatal("debounce did not return")
	}

	require.True(t, Debounce(ctx2, t2, 10*time.Millisecond))
	assert.True(t, Debounce(ctx2, t2, 0))
}
