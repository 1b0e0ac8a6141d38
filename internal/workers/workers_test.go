// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingWorker tracks how many times Run was called and returns err.
type countingWorker struct {
	runCount atomic.Int32
	err      error
}

func (m *countingWorker) Run(context.Context) error {
	m.runCount.Add(1)
	return m.err
}

// blockingWorker runs until its context is cancelled.
type blockingWorker struct {
	started chan struct{}
	stopped atomic.Bool
}

func newBlockingWorker() *blockingWorker {
	return &blockingWorker{started: make(chan struct{})}
}

func (b *blockingWorker) Run(ctx context.Context) error {
	close(b.started)
	<-ctx.Done()
	b.stopped.Store(true)
	return nil
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &countingWorker{}, &countingWorker{}, &countingWorker{}

	ws := NewWorkers(w1, w2, w3)
	require.NoError(t, ws.Run(context.Background()))

	for i, w := range []*countingWorker{w1, w2, w3} {
		assert.Equal(t, int32(1), w.runCount.Load(), "worker[%d]", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NoError(t, NewWorkers().Run(context.Background()))
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	assert.NoError(t, ws.Run(context.Background()))
}

func TestNewWorkers_SkipsNil(t *testing.T) {
	ws := NewWorkers(nil, &countingWorker{}, nil)
	ws.Add(nil)

	assert.Equal(t, 1, ws.Len())
}

func TestWorkers_Run_RunsConcurrently(t *testing.T) {
	a, b := newBlockingWorker(), newBlockingWorker()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- NewWorkers(a, b).Run(ctx) }()

	<-a.started
	<-b.started
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("workers did not stop after cancel")
	}
	assert.True(t, a.stopped.Load())
	assert.True(t, b.stopped.Load())
}

func TestWorkers_Run_FailureCancelsSiblings(t *testing.T) {
	boom := errors.New("boom")
	sibling := newBlockingWorker()
	failing := WorkerFunc(func(context.Context) error {
		return boom
	})

	err := NewWorkers(sibling, failing).Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.True(t, sibling.stopped.Load())
}

func TestWorkers_Run_MultipleRuns(t *testing.T) {
	w := &countingWorker{}
	ws := NewWorkers(w)

	for range 3 {
		require.NoError(t, ws.Run(context.Background()))
	}

	assert.Equal(t, int32(3), w.runCount.Load())
}

func TestWorkerFunc(t *testing.T) {
	var mu sync.Mutex
	var got context.Context
	ctx := context.WithValue(context.Background(), struct{}{}, "v")

	err := WorkerFunc(func(c context.Context) error {
		mu.Lock()
		got = c
		mu.Unlock()
		return nil
	}).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, ctx, got)
}
