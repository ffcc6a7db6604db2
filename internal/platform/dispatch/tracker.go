// Package dispatch provides generic, action-keyed bookkeeping for
// asynchronous operations: per-key loading flags, per-key failure messages,
// and lifecycle hooks fired on every transition.
//
// A Tracker owns the state for a closed set of action keys (typically a
// small enum type). Callers start tracked work through the free function Do,
// which marks the key loading, runs the work on its own goroutine, and
// routes the outcome through the configured hooks:
//
//	tracker := dispatch.New[Action](dispatch.Hooks[Action]{
//	    Status: func(key Action, loading bool) { ... },
//	}, metrics, logger)
//
//	err := dispatch.Do(tracker, ctx, ActionFetchFollowers,
//	    func(ctx context.Context) ([]Follower, error) { ... },
//	    func(followers []Follower, err error) { ... },
//	)
//
// All state mutation and hook invocation is serialized under the tracker's
// lock, so observers never see a torn state and, per key, the transitions
// form a clean loading-true / loading-false pair around each dispatch.
// Hooks run with the lock held and must not call back into the tracker.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/nholloway4/followd/internal/platform/telemetry"
)

// ErrInFlight is returned by Do when the key is already loading. A second
// dispatch on a loading key is rejected synchronously with no state change;
// callers that want queue or replace semantics must build them on top.
var ErrInFlight = errors.New("dispatch: action already in flight")

// Hooks holds the lifecycle callbacks for a Tracker. Every field is
// optional. Error recording into the tracker's per-key message is built in
// and happens whether or not an Error hook is configured, so hooks never
// need to replicate the default behavior.
type Hooks[K comparable] struct {
	// Success fires once per dispatch whose work returned nil error,
	// before the loading flag is cleared. The typed result value is not
	// passed here; it travels through the per-call finished callback.
	Success func(key K)

	// Error fires once per dispatch whose work returned a non-nil error,
	// after the message has been recorded, before loading is cleared.
	Error func(key K, err error)

	// Status fires on every loading transition: (key, true) when a
	// dispatch begins and (key, false) after it completes.
	Status func(key K, loading bool)
}

// actionState is the tracked state for one key. Absent entries read as the
// zero state: not loading, no error.
type actionState struct {
	loading bool
	errMsg  string
}

// Tracker tracks the loading/error state of any number of named
// asynchronous operations. It is safe for concurrent use. The zero value is
// not usable; construct with New.
type Tracker[K comparable] struct {
	mu     sync.RWMutex
	states map[K]*actionState

	hooks   Hooks[K]
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New creates a Tracker with the given hooks. metrics may be nil to skip
// instrument recording; a nil logger discards.
func New[K comparable](hooks Hooks[K], metrics *telemetry.Metrics, logger *slog.Logger) *Tracker[K] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker[K]{
		states:  make(map[K]*actionState),
		hooks:   hooks,
		metrics: metrics,
		logger:  logger,
	}
}

// IsLoading reports whether a dispatch for key is currently in flight.
// Keys that were never dispatched read as false.
func (t *Tracker[K]) IsLoading(key K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	st, ok := t.states[key]
	return ok && st.loading
}

// ErrorMessage returns the failure description captured by the most recent
// completed dispatch for key, or "" if the last attempt succeeded, a
// dispatch is in flight, or the key was never dispatched.
func (t *Tracker[K]) ErrorMessage(key K) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if st, ok := t.states[key]; ok {
		return st.errMsg
	}
	return ""
}

// Do starts a tracked asynchronous operation for key.
//
// It synchronously marks the key loading, clears any stale error message,
// fires the Status hook with (key, true), and returns. work then runs on
// its own goroutine; Do never blocks on it. When work completes, the
// tracker, in one serialized sequence, fires the Success or Error hook,
// invokes finished with the outcome (if non-nil), clears the loading flag,
// and fires the Status hook with (key, false).
//
// work failures are captured and recorded, never retried, and never escape
// as panics; a panicking work is converted to an error outcome. finished
// receives the zero value of T alongside a non-nil error on failure.
//
// Do returns ErrInFlight, with no state change and no hook invocation, if a
// previous dispatch for key has not yet completed.
func Do[K comparable, T any](
	t *Tracker[K],
	ctx context.Context,
	key K,
	work func(context.Context) (T, error),
	finished func(T, error),
) error {
	if err := t.begin(ctx, key); err != nil {
		return err
	}

	start := time.Now()
	go func() {
		value, err := runWork(ctx, key, work)

		deliver := func() {
			if finished != nil {
				finished(value, err)
			}
		}
		t.complete(ctx, key, err, deliver, time.Since(start))
	}()

	return nil
}

// runWork executes work, converting a panic into an error outcome so that
// no dispatch can crash the tracker's caller. The stack is folded into the
// error; complete logs it alongside the failure.
func runWork[K comparable, T any](ctx context.Context, key K, work func(context.Context) (T, error)) (value T, err error) {
	defer func() {
		if v := recover(); v != nil {
			var zero T
			value = zero
			err = fmt.Errorf("action %s panicked: %v\n%s", Label(key), v, debug.Stack())
		}
	}()

	return work(ctx)
}

// begin transitions key to loading. Returns ErrInFlight without touching
// state when a dispatch is already running for key.
func (t *Tracker[K]) begin(ctx context.Context, key K) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(key)
	if st.loading {
		return ErrInFlight
	}
	st.loading = true
	st.errMsg = ""

	t.logger.DebugContext(ctx, "action dispatched",
		slog.String("action", Label(key)),
		slog.String("dispatched_at", Timestamp()),
	)

	if t.metrics != nil {
		t.metrics.DispatchInFlight.Add(ctx, 1, metric.WithAttributes(
			telemetry.AttrAction.String(Label(key)),
		))
	}

	if t.hooks.Status != nil {
		t.hooks.Status(key, true)
	}
	return nil
}

// complete runs the completion sequence for key: outcome hook, typed
// delivery, loading-false, status hook. The whole sequence holds the
// tracker lock so no observer sees an intermediate state.
func (t *Tracker[K]) complete(ctx context.Context, key K, err error, deliver func(), elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := t.state(key)

	if err != nil {
		st.errMsg = err.Error()
		t.logger.WarnContext(ctx, "action failed",
			slog.String("action", Label(key)),
			slog.Duration("elapsed", elapsed),
			slog.Any("error", err),
		)
		if t.hooks.Error != nil {
			t.hooks.Error(key, err)
		}
	} else {
		t.logger.DebugContext(ctx, "action completed",
			slog.String("action", Label(key)),
			slog.Duration("elapsed", elapsed),
		)
		if t.hooks.Success != nil {
			t.hooks.Success(key)
		}
	}

	deliver()

	st.loading = false

	t.recordCompletion(ctx, key, err, elapsed)

	if t.hooks.Status != nil {
		t.hooks.Status(key, false)
	}
}

// recordCompletion records dispatch metrics. Safe with nil metrics.
func (t *Tracker[K]) recordCompletion(ctx context.Context, key K, err error, elapsed time.Duration) {
	if t.metrics == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "error"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrAction.String(Label(key)),
		telemetry.AttrResult.String(result),
	)

	t.metrics.DispatchInFlight.Add(ctx, -1, metric.WithAttributes(
		telemetry.AttrAction.String(Label(key)),
	))
	t.metrics.DispatchDuration.Record(ctx, elapsed.Seconds(), attrs)
	t.metrics.DispatchTotal.Add(ctx, 1, attrs)
}

// state returns the entry for key, creating it lazily. Must be called with
// t.mu held for writing.
func (t *Tracker[K]) state(key K) *actionState {
	st, ok := t.states[key]
	if !ok {
		st = &actionState{}
		t.states[key] = st
	}
	return st
}
