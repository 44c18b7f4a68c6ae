// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEveryRejectsNonPositiveInterval(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	_, err = s.Every("batch", 0, false, func(context.Context) error { return nil })
	require.Error(t, err)
	assert.Equal(t, 0, s.Jobs())
}

func TestEveryRunsRepeatedly(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	var runs atomic.Int32
	id, err := s.Every("batch", 20*time.Millisecond, true, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, 1, s.Jobs())

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop())
}

func TestSingletonMode(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	var running, maxRunning, runs atomic.Int32
	_, err = s.Every("slow", 5*time.Millisecond, true, func(context.Context) error {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			m := maxRunning.Load()
			if n <= m || maxRunning.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		runs.Add(1)
		return nil
	})
	require.NoError(t, err)

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop())
	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestFailedJobIsLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s, err := New(zap.New(core))
	require.NoError(t, err)

	_, err = s.Every("rewrite", time.Hour, true, func(context.Context) error {
		return errors.New("boom")
	})
	require.NoError(t, err)

	s.Start()
	require.Eventually(t, func() bool { return logs.FilterMessage("job failed").Len() == 1 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop())

	entry := logs.FilterMessage("job failed").All()[0]
	assert.Equal(t, "rewrite", entry.ContextMap()["job"])
}

func TestRunStopsOnContextCancel(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)

	var sawCancel atomic.Bool
	started := make(chan struct{})
	_, err = s.Every("batch", time.Hour, true, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		sawCancel.Store(true)
		return ctx.Err()
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	<-started
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.True(t, sawCancel.Load())
}
