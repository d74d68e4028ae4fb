package workqueue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observeZap 把全局 zap logger 换成可读取的 observer
func observeZap(t *testing.T) *observer.ObservedLogs {
	core, logs := observer.New(zapcore.ErrorLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestParallelizeUntil(t *testing.T) {
	var sum int64
	ParallelizeUntil(context.Background(), 4, 100, func(piece int) {
		atomic.AddInt64(&sum, int64(piece))
	})
	assert.Equal(t, int64(4950), sum)

	// pieces 为 0 时直接返回
	ParallelizeUntil(context.Background(), 4, 0, func(piece int) {
		t.Fatal("should not run")
	})
}

func TestParallelizeUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int64
	ParallelizeUntil(ctx, 2, 50, func(piece int) {
		atomic.AddInt64(&ran, 1)
	})
	assert.Zero(t, ran)
}

func TestParallelizeUntilPanic(t *testing.T) {
	logs := observeZap(t)
	var ran int64
	assert.NotPanics(t, func() {
		ParallelizeUntil(context.Background(), 1, 3, func(piece int) {
			atomic.AddInt64(&ran, 1)
			if piece == 0 {
				panic("boom")
			}
		})
	})
	assert.Equal(t, int64(1), ran)

	entries := logs.FilterMessage("work has panic").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "boom", fields["panic"])
	assert.Contains(t, fields["stack"], "TestParallelizeUntilPanic")
}

func TestFanOut(t *testing.T) {
	failed := FanOut(context.Background(), 3, []int{1, 2, 3, 4, 5, 6}, func(n int) error {
		if n%2 == 0 {
			return errors.New("even")
		}
		return nil
	})
	assert.ElementsMatch(t, []int{2, 4, 6}, failed)

	assert.Empty(t, FanOut(context.Background(), 3, nil, func(n int) error { return nil }))
}

func TestFanOutPanic(t *testing.T) {
	logs := observeZap(t)

	var visited int64
	failed := FanOut(context.Background(), 1, []int{1, 2, 3, 4}, func(n int) error {
		atomic.AddInt64(&visited, 1)
		if n == 2 {
			panic("bad target")
		}
		return nil
	})
	assert.Equal(t, []int{2}, failed)
	// 同一个 worker 上后续的目标仍然被处理
	assert.Equal(t, int64(4), visited)
	assert.Equal(t, 1, logs.FilterMessage("fan out target has panic").Len())
}
