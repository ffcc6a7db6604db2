package fanout_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nholloway4/followd/internal/platform/fanout"
)

func TestRun_EmptyItems(t *testing.T) {
	t.Parallel()

	results := fanout.Run(context.Background(), 5, []int{}, func(_ context.Context, _ int) (string, error) {
		t.Fatal("fn should not be called for empty items")
		return "", nil
	})

	if results == nil {
		t.Fatal("expected non-nil slice for empty items")
	}
	if len(results) != 0 {
		t.Fatalf("len(results) = %d, want 0", len(results))
	}
}

func TestRun_AllSucceed(t *testing.T) {
	t.Parallel()

	pages := []int{2, 3, 4, 5}

	results := fanout.Run(context.Background(), 2, pages, func(_ context.Context, page int) (int, error) {
		return page * 100, nil
	})

	if len(results) != len(pages) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(pages))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v, want nil", i, r.Err)
		}
		if want := pages[i] * 100; r.Value != want {
			t.Errorf("results[%d].Value = %d, want %d", i, r.Value, want)
		}
	}
}

func TestRun_PartialFailure(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	pages := []int{2, 3, 4}

	results := fanout.Run(context.Background(), 3, pages, func(_ context.Context, page int) (int, error) {
		if page == 3 {
			return 0, errBoom
		}
		return page * 100, nil
	})

	if results[0].Err != nil || results[0].Value != 200 {
		t.Errorf("results[0] = {%d, %v}, want {200, nil}", results[0].Value, results[0].Err)
	}
	if !errors.Is(results[1].Err, errBoom) {
		t.Errorf("results[1].Err = %v, want %v", results[1].Err, errBoom)
	}
	if results[2].Err != nil || results[2].Value != 400 {
		t.Errorf("results[2] = {%d, %v}, want {400, nil}", results[2].Value, results[2].Err)
	}
}

func TestRun_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	// Varying delays to encourage out-of-order completion.
	delays := []time.Duration{
		30 * time.Millisecond,
		10 * time.Millisecond,
		20 * time.Millisecond,
	}

	results := fanout.Run(context.Background(), 3, delays, func(_ context.Context, d time.Duration) (time.Duration, error) {
		time.Sleep(d)
		return d, nil
	})

	for i, r := range results {
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
		if r.Value != delays[i] {
			t.Errorf("results[%d].Value = %v, want %v", i, r.Value, delays[i])
		}
	}
}

func TestRun_BoundedConcurrency(t *testing.T) {
	t.Parallel()

	const maxWorkers = 2

	var current, peak atomic.Int32
	pages := []int{1, 2, 3, 4, 5, 6}

	fanout.Run(context.Background(), maxWorkers, pages, func(_ context.Context, page int) (int, error) {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		current.Add(-1)
		return page, nil
	})

	if got := peak.Load(); got > maxWorkers {
		t.Errorf("peak concurrency = %d, want <= %d", got, maxWorkers)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// One worker slot held for a while: goroutines waiting for the
	// semaphore observe the canceled context.
	results := fanout.Run(ctx, 1, []int{1, 2, 3, 4, 5}, func(_ context.Context, page int) (int, error) {
		time.Sleep(20 * time.Millisecond)
		return page, nil
	})

	var canceled int
	for _, r := range results {
		if errors.Is(r.Err, context.Canceled) {
			canceled++
		}
	}
	if canceled == 0 {
		t.Error("expected at least one result with context.Canceled")
	}
}

func TestValues_AllSucceed(t *testing.T) {
	t.Parallel()

	results := []fanout.Result[string]{
		{Value: "a"}, {Value: "b"}, {Value: "c"},
	}

	values, err := fanout.Values(results)
	if err != nil {
		t.Fatalf("Values() error = %v", err)
	}
	if len(values) != 3 || values[0] != "a" || values[2] != "c" {
		t.Errorf("Values() = %v, want [a b c]", values)
	}
}

func TestValues_FirstErrorWins(t *testing.T) {
	t.Parallel()

	errFirst := errors.New("first")
	errSecond := errors.New("second")
	results := []fanout.Result[string]{
		{Value: "a"},
		{Err: errFirst},
		{Err: errSecond},
	}

	values, err := fanout.Values(results)
	if values != nil {
		t.Errorf("Values() = %v, want nil on error", values)
	}
	if !errors.Is(err, errFirst) {
		t.Errorf("Values() error = %v, want %v", err, errFirst)
	}
}
