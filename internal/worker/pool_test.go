package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsSubmittedJobs(t *testing.T) {
	p := NewPool(2, 8)
	p.Start(context.Background())

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Submit(funcJob{name: "count", fn: func(context.Context) error {
			ran.Add(1)
			return nil
		}}))
	}

	p.Drain()
	assert.Equal(t, int32(5), ran.Load())
}

func TestPool_ReportsFailures(t *testing.T) {
	p := NewPool(1, 4)
	p.Start(context.Background())

	boom := errors.New("boom")
	require.NoError(t, p.Submit(funcJob{name: "fails", fn: func(context.Context) error { return boom }}))

	select {
	case f := <-p.Failures():
		assert.Equal(t, "fails", f.Job)
		assert.ErrorIs(t, f.Err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("no failure reported")
	}
	p.Stop()

	_, open := <-p.Failures()
	assert.False(t, open)
}

func TestPool_SubmitWhenFull(t *testing.T) {
	p := NewPool(1, 1)

	// Not started, so nothing drains the queue.
	require.NoError(t, p.Submit(funcJob{name: "a", fn: func(context.Context) error { return nil }}))
	err := p.Submit(funcJob{name: "b", fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 1, p.QueueSize())
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := NewPool(1, 1)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	err := p.Submit(funcJob{name: "late", fn: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrPoolStopped)
}
