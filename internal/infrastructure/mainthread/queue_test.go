package mainthread_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bnema/pageflip/internal/infrastructure/mainthread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_CallRunsInsidePump(t *testing.T) {
	q := mainthread.New()
	ctx := context.Background()

	pumping := false
	ranWhilePumping := false

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		err := q.Call(ctx, func() { ranWhilePumping = pumping })
		assert.NoError(t, err)
	}()

	pumping = true
	require.NoError(t, q.Pump(ctx, done))
	wg.Wait()
	assert.True(t, ranWhilePumping)
}

func TestQueue_DrainRunsWaitingCalls(t *testing.T) {
	q := mainthread.New()
	ctx := context.Background()

	results := make(chan error, 1)
	go func() { results <- q.Call(ctx, func() {}) }()

	require.Eventually(t, func() bool { return q.Drain() == 1 }, time.Second, time.Millisecond)
	assert.NoError(t, <-results)
	assert.Zero(t, q.Drain())
}

func TestQueue_CallHonoursContext(t *testing.T) {
	q := mainthread.New()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := q.Call(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueue_CallAfterStop(t *testing.T) {
	q := mainthread.New()
	q.Stop()
	q.Stop()

	err := q.Call(context.Background(), func() {})
	assert.ErrorIs(t, err, mainthread.ErrStopped)
}

func TestQueue_PumpStopsOnContext(t *testing.T) {
	q := mainthread.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := q.Pump(ctx, make(chan struct{}))
	assert.ErrorIs(t, err, context.Canceled)
}
