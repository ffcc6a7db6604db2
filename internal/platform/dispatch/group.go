package dispatch

import (
	"context"
	"sync"
)

// GroupEntry pairs an action key with its unit of work for DispatchGroup.
// Group work carries no typed result; entries that need one should use Do
// directly.
type GroupEntry[K comparable] struct {
	Key  K
	Work func(context.Context) error
}

// DispatchGroup dispatches every entry concurrently through the same
// per-key lifecycle as Do, then invokes done exactly once, after the last
// entry has finished, with the keys partitioned into succeeded and failed.
// Completion order does not affect the partition. Entries rejected because
// their key is already in flight count as failed without running.
//
// DispatchGroup does not block; done runs on an internal goroutine. A nil
// done is allowed. An empty entries slice invokes done immediately with two
// nil slices.
//
// The succeeded/failed accumulation is guarded by its own mutex, separate
// from the tracker's per-key state lock.
func (t *Tracker[K]) DispatchGroup(ctx context.Context, entries []GroupEntry[K], done func(succeeded, failed []K)) {
	if len(entries) == 0 {
		if done != nil {
			done(nil, nil)
		}
		return
	}

	var (
		aggMu     sync.Mutex
		succeeded []K
		failed    []K
		wg        sync.WaitGroup
	)

	record := func(key K, err error) {
		aggMu.Lock()
		defer aggMu.Unlock()
		if err != nil {
			failed = append(failed, key)
		} else {
			succeeded = append(succeeded, key)
		}
	}

	for _, entry := range entries {
		wg.Add(1)

		work := entry.Work
		key := entry.Key

		err := Do(t, ctx, key,
			func(ctx context.Context) (struct{}, error) {
				return struct{}{}, work(ctx)
			},
			func(_ struct{}, err error) {
				record(key, err)
				wg.Done()
			},
		)
		if err != nil {
			// Rejected before starting (key already in flight).
			record(key, err)
			wg.Done()
		}
	}

	go func() {
		wg.Wait()
		// After Wait returns no dispatch goroutine touches the slices.
		if done != nil {
			done(succeeded, failed)
		}
	}()
}
