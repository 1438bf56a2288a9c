package count

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// State is the lifecycle position of a Coordinator run.
type State int32

const (
	StateInit State = iota
	StateDispatched
	StateAwaiting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateDispatched:
		return "dispatched"
	case StateAwaiting:
		return "awaiting"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Logger receives progress and failure messages from a Coordinator.
// Implementations must be safe for concurrent use.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// Coordinator fans a pattern search out to one worker per file and merges
// the partial counts once every worker has finished.
type Coordinator struct {
	maxWorkers int
	timeout    time.Duration
	logger     Logger
	scan       scanFunc
	state      atomic.Int32
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithMaxWorkers bounds how many files are scanned at once.
// Zero, the default, starts every worker immediately.
func WithMaxWorkers(n int) Option {
	return func(c *Coordinator) {
		c.maxWorkers = n
	}
}

// WithTimeout limits how long a single worker may scan its file.
// Zero, the default, lets workers run indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = d
	}
}

// WithLogger sets the logger. A nil logger discards messages.
func WithLogger(l Logger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// NewCoordinator creates a Coordinator that scans files with ScanFile.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{scan: ScanFile}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

func (c *Coordinator) setState(s State) {
	c.state.Store(int32(s))
}

// RunAll counts pattern across files with a default Coordinator.
func RunAll(ctx context.Context, files []string, pattern string) (Summary, error) {
	return NewCoordinator().Run(ctx, files, pattern)
}

// Run starts one worker per file, waits for all of them and returns the
// merged Summary. Failures of individual files are recorded in the Summary
// and do not stop the other workers. If ctx is cancelled before every worker
// has reported, Run returns what was collected so far along with an error
// wrapping ErrInterrupted.
func (c *Coordinator) Run(ctx context.Context, files []string, pattern string) (Summary, error) {
	c.setState(StateInit)
	summary := Summary{Pattern: pattern}
	if len(files) == 0 {
		return summary, ErrNoInputFiles
	}

	// one slot per worker so no send ever blocks, even after an interrupted collector left
	results := make(chan Result, len(files))
	var sem *semaphore.Weighted
	if c.maxWorkers > 0 {
		sem = semaphore.NewWeighted(int64(c.maxWorkers))
	}

	var wg sync.WaitGroup
	wg.Add(len(files))
	c.setState(StateDispatched)
	c.debugf("dispatching %d workers for pattern %q", len(files), pattern)
	for _, path := range files {
		w := worker{
			task:    Task{Path: path, Pattern: pattern},
			scan:    c.scan,
			timeout: c.timeout,
		}
		go func() {
			defer wg.Done()
			if sem != nil {
				if err := sem.Acquire(ctx, 1); err != nil {
					results <- Result{Path: w.task.Path, Err: fmt.Errorf("scan %s: %w", w.task.Path, err)}
					return
				}
				defer sem.Release(1)
			}
			results <- w.run(ctx)
		}()
	}

	// join barrier: results is closed only after every worker has sent
	go func() {
		wg.Wait()
		close(results)
	}()
	c.setState(StateAwaiting)

	for {
		select {
		case r, ok := <-results:
			if !ok {
				summary.finish()
				c.setState(StateDone)
				c.debugf("all %d workers finished, total %d", len(files), summary.Total)
				return summary, nil
			}
			c.collect(&summary, r)
		case <-ctx.Done():
			summary.Interrupted = true
			summary.finish()
			c.setState(StateDone)
			return summary, fmt.Errorf("%w (%d of %d files reported): %w",
				ErrInterrupted, len(summary.Results), len(files), ctx.Err())
		}
	}
}

func (c *Coordinator) collect(summary *Summary, r Result) {
	summary.add(r)
	if r.OK() {
		c.debugf("%s: %d matches in %s", r.Path, r.Count, r.Duration.Round(time.Millisecond))
		return
	}
	if c.logger != nil {
		c.logger.LogError(r.Err.Error())
	}
}

func (c *Coordinator) debugf(format string, args ...any) {
	if c.logger == nil {
		return
	}
	c.logger.LogDebug(fmt.Sprintf(format, args...))
}
