package workqueue

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

type DoWorkPieceFunc func(piece int)

// ParallelizeUntil runs doWorkPiece for every piece in [0, pieces) on at most
// workers goroutines, until done or the context is canceled.
// A panicking piece is logged and stops only its own worker.
func ParallelizeUntil(ctx context.Context, workers, pieces int, doWorkPiece DoWorkPieceFunc) {
	if pieces <= 0 {
		return
	}
	var stop <-chan struct{}
	if ctx != nil {
		stop = ctx.Done()
	}

	toProcess := make(chan int, pieces)
	for i := 0; i < pieces; i++ {
		toProcess <- i
	}
	close(toProcess)

	if workers <= 0 {
		workers = 1
	}
	if pieces < workers {
		workers = pieces
	}

	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer func() {
				wg.Done()
				if r := recover(); r != nil {
					zap.L().Error("work has panic", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				}
			}()
			for piece := range toProcess {
				select {
				case <-stop:
					return
				default:
					doWorkPiece(piece)
				}
			}
		}()
	}
	wg.Wait()
}

// FanOut calls fn once per target and collects the targets whose call failed.
// A panicking call counts as failed and does not stop the remaining targets.
func FanOut[T any](ctx context.Context, workers int, targets []T, fn func(T) error) []T {
	var (
		mu     sync.Mutex
		failed []T
	)
	ParallelizeUntil(ctx, workers, len(targets), func(piece int) {
		if err := callRecovered(targets[piece], fn); err != nil {
			mu.Lock()
			failed = append(failed, targets[piece])
			mu.Unlock()
		}
	})
	return failed
}

func callRecovered[T any](target T, fn func(T) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("fan out target has panic", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(target)
}
