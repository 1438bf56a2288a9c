package count

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type (
	// Task is the immutable input of one worker.
	Task struct {
		Path    string
		Pattern string
	}

	// Result is the outcome of one worker. Count is zero whenever Err is set.
	Result struct {
		Path     string
		Count    int64
		Err      error
		Duration time.Duration
	}
)

// scanFunc counts matches for one file. ScanFile in production, a stub in tests.
type scanFunc func(ctx context.Context, path, pattern string) (int64, error)

// OK reports whether the worker finished without error.
func (r Result) OK() bool {
	return r.Err == nil
}

type worker struct {
	task    Task
	scan    scanFunc
	timeout time.Duration
}

// run scans the task's file and returns exactly one Result.
func (w worker) run(ctx context.Context) Result {
	start := time.Now()
	n, err := w.scanWithTimeout(ctx)
	if err != nil {
		n = 0
	}
	return Result{
		Path:     w.task.Path,
		Count:    n,
		Err:      err,
		Duration: time.Since(start),
	}
}

func (w worker) scanWithTimeout(ctx context.Context) (int64, error) {
	if w.timeout <= 0 {
		return w.scan(ctx, w.task.Path, w.task.Pattern)
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	type outcome struct {
		n   int64
		err error
	}
	// buffered so the scan goroutine can always finish, even after we gave up on it
	done := make(chan outcome, 1)
	go func() {
		n, err := w.scan(ctx, w.task.Path, w.task.Pattern)
		done <- outcome{n, err}
	}()

	select {
	case o := <-done:
		if o.err != nil && errors.Is(o.err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("%w after %s: %s", ErrWorkerTimeout, w.timeout, w.task.Path)
		}
		return o.n, o.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, fmt.Errorf("%w after %s: %s", ErrWorkerTimeout, w.timeout, w.task.Path)
		}
		return 0, ctx.Err()
	}
}
