package docprep

import "context"

// Task is the handle for a pipeline run started in the background. It
// completes exactly once; after completion Wait and Result return the same
// values to every caller.
type Task struct {
	done   chan struct{}
	result *Result
	err    error
}

// Done returns a channel closed when the run completes. Useful in select
// statements alongside UI or shutdown events.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the run completes and returns its outcome.
func (t *Task) Wait() (*Result, error) {
	<-t.done
	return t.result, t.err
}

// Result returns the outcome without blocking. The boolean is false while
// the run is still in progress.
func (t *Task) Result() (*Result, bool) {
	select {
	case <-t.done:
		return t.result, true
	default:
		return nil, false
	}
}

// Err returns the run error after completion, nil before.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Start runs Process in a goroutine and returns a Task tracking it. Callers
// driving a UI wait on Task.Done from their event loop instead of blocking.
func (s *Service) Start(ctx context.Context, docPath string) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.result, t.err = s.Process(ctx, docPath)
	}()
	return t
}
