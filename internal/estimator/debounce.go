// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package estimator

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Outcome is how a debounced task ended.
type Outcome int32

const (
	// OutcomePending means the task has not finished yet.
	OutcomePending Outcome = iota
	// OutcomeDelivered means the result was handed to the deliver callback.
	OutcomeDelivered
	// OutcomeSuperseded means a newer task replaced this one before delivery.
	OutcomeSuperseded
	// OutcomeCancelled means the task or its parent context was cancelled.
	OutcomeCancelled
)

// String returns the metric label of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeSuperseded:
		return "superseded"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// Task is a handle to one scheduled computation.
type Task struct {
	id     uint64
	mu     *sync.Mutex // shared with the owning Debouncer
	cancel context.CancelFunc
	done   chan struct{}

	outcome Outcome // guarded by mu
}

// ID returns the task's sequence number within its Debouncer. Later tasks have
// larger IDs.
func (t *Task) ID() uint64 { return t.id }

// Done is closed once the task has finished, whatever its outcome.
func (t *Task) Done() <-chan struct{} { return t.done }

// Outcome returns the task's current outcome.
func (t *Task) Outcome() Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.outcome
}

// Cancel stops the task if its result has not been delivered yet. It reports whether
// the task was cancelled by this call. Once Cancel returns true the deliver callback
// will not run for this task.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.outcome != OutcomePending {
		return false
	}
	t.outcome = OutcomeCancelled
	t.cancel()
	return true
}

// Debouncer runs at most one pending computation at a time. Scheduling a new task
// supersedes the pending one, and only the latest task's result is delivered.
//
// The deliver callback runs with the Debouncer's lock held, so it must not call
// Schedule, Cancel or Task.Cancel, and it should return quickly.
type Debouncer[T any] struct {
	window  time.Duration
	observe func(Outcome)

	mu      sync.Mutex
	current *Task
	seq     atomic.Uint64
}

// NewDebouncer creates a Debouncer that waits window before computing. observe, if
// non-nil, is called once with the final outcome of every task.
func NewDebouncer[T any](window time.Duration, observe func(Outcome)) *Debouncer[T] {
	if window < 0 {
		window = 0
	}
	return &Debouncer[T]{window: window, observe: observe}
}

// Window returns the debounce delay.
func (d *Debouncer[T]) Window() time.Duration { return d.window }

// Schedule supersedes any pending task and starts a new one. After the debounce
// window compute runs with a context that is cancelled if the task is superseded or
// cancelled; its result is passed to deliver only if the task is still current.
func (d *Debouncer[T]) Schedule(
	ctx context.Context,
	compute func(ctx context.Context) (T, error),
	deliver func(T, error),
) *Task {
	taskCtx, cancel := context.WithCancel(ctx)
	t := &Task{
		id:     d.seq.Add(1),
		mu:     &d.mu,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	d.mu.Lock()
	if prev := d.current; prev != nil && prev.outcome == OutcomePending {
		prev.outcome = OutcomeSuperseded
		prev.cancel()
	}
	d.current = t
	d.mu.Unlock()

	go d.run(taskCtx, t, compute, deliver)
	return t
}

// Cancel cancels the pending task, if any. It reports whether a task was cancelled.
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := d.current
	if t == nil || t.outcome != OutcomePending {
		return false
	}
	t.outcome = OutcomeCancelled
	t.cancel()
	return true
}

// Pending reports whether a task is waiting or computing.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current != nil && d.current.outcome == OutcomePending
}

func (d *Debouncer[T]) run(
	ctx context.Context,
	t *Task,
	compute func(ctx context.Context) (T, error),
	deliver func(T, error),
) {
	defer close(t.done)
	defer t.cancel()

	timer := time.NewTimer(d.window)
	select {
	case <-ctx.Done():
		timer.Stop()
		d.finish(ctx, t, nil)
		return
	case <-timer.C:
	}

	value, err := compute(ctx)
	d.finish(ctx, t, func() { deliver(value, err) })
}

// finish settles the task's outcome. deliver runs only if the task is still pending
// and its context is live.
func (d *Debouncer[T]) finish(ctx context.Context, t *Task, deliver func()) {
	d.mu.Lock()
	switch {
	case t.outcome != OutcomePending:
	case deliver == nil:
		t.outcome = OutcomeCancelled
	case ctx.Err() != nil:
		// Parent context ended while computing.
		t.outcome = OutcomeCancelled
	default:
		deliver()
		t.outcome = OutcomeDelivered
	}
	outcome := t.outcome
	d.mu.Unlock()

	if d.observe != nil {
		d.observe(outcome)
	}
}
