package competition

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigmaCrackerBackend/internal/core/domain"
)

func TestCoordinator_FirstClaimWins(t *testing.T) {
	c := NewCoordinator(nil)
	ctxA, a := c.Join(context.Background(), "alpha")
	ctxB, b := c.Join(context.Background(), "bravo")

	assert.True(t, a.NotifyFound(ctxA, domain.FoundEvent{JobID: "1", Found: true, Code: "<1,2><A,B><I>"}))
	assert.NoError(t, ctxA.Err())
	assert.ErrorIs(t, ctxB.Err(), context.Canceled)

	assert.False(t, b.NotifyFound(context.Background(), domain.FoundEvent{JobID: "2", Found: true}))
	assert.Equal(t, 1, c.Rejected())

	event, name, ok := c.Winner()
	require.True(t, ok)
	assert.Equal(t, "alpha", name)
	assert.Equal(t, "<1,2><A,B><I>", event.Code)
}

func TestCoordinator_ConcurrentClaims(t *testing.T) {
	for run := 0; run < 20; run++ {
		c := NewCoordinator(nil)
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			ctx, n := c.Join(context.Background(), fmt.Sprint(i))
			wg.Add(1)
			go func() {
				defer wg.Done()
				if n.NotifyFound(ctx, domain.FoundEvent{Found: true}) {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load(), "run %d", run)
		// Losers cancelled before claiming never reach the coordinator.
		assert.LessOrEqual(t, c.Rejected(), 7)
	}
}

func TestCoordinator_LateJoinerIsCancelled(t *testing.T) {
	c := NewCoordinator(nil)
	ctx, n := c.Join(context.Background(), "first")
	require.True(t, n.NotifyFound(ctx, domain.FoundEvent{Found: true}))

	late, _ := c.Join(context.Background(), "late")
	assert.ErrorIs(t, late.Err(), context.Canceled)

	c.Leave("first")
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	c.Leave("unknown")
}

func TestCoordinator_NoWinner(t *testing.T) {
	c := NewCoordinator(nil)
	_, _, ok := c.Winner()
	assert.False(t, ok)
}
