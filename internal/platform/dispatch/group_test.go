package dispatch_test

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nholloway4/followd/internal/platform/dispatch"
)

// waitDone waits for the group completion callback with a timeout.
func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for group completion")
	}
}

func sortedKeys(keys []testAction) []testAction {
	out := slices.Clone(keys)
	slices.Sort(out)
	return out
}

func TestDispatchGroup_PartitionsOutcomes(t *testing.T) {
	t.Parallel()

	tracker := dispatch.New[testAction](dispatch.Hooks[testAction]{}, nil, nil)

	entries := []dispatch.GroupEntry[testAction]{
		{Key: actFetchFollowers, Work: func(context.Context) error {
			time.Sleep(20 * time.Millisecond) // finishes last
			return nil
		}},
		{Key: actFetchFollowing, Work: func(context.Context) error {
			return errors.New("upstream 502")
		}},
		{Key: actFetchUser, Work: func(context.Context) error {
			return nil
		}},
	}

	var (
		gotSucceeded []testAction
		gotFailed    []testAction
		calls        atomic.Int32
	)
	done := make(chan struct{})
	tracker.DispatchGroup(context.Background(), entries, func(succeeded, failed []testAction) {
		gotSucceeded = succeeded
		gotFailed = failed
		calls.Add(1)
		close(done)
	})

	waitDone(t, done)

	if n := calls.Load(); n != 1 {
		t.Fatalf("completion callback fired %d times, want 1", n)
	}

	wantSucceeded := []testAction{actFetchFollowers, actFetchUser}
	if got := sortedKeys(gotSucceeded); !slices.Equal(got, wantSucceeded) {
		t.Errorf("succeeded = %v, want %v", got, wantSucceeded)
	}
	if !slices.Equal(gotFailed, []testAction{actFetchFollowing}) {
		t.Errorf("failed = %v, want [fetch_following]", gotFailed)
	}

	// All per-key state settled once the aggregate callback runs.
	for _, e := range entries {
		if tracker.IsLoading(e.Key) {
			t.Errorf("IsLoading(%s) = true after group completion", e.Key)
		}
	}
	if tracker.ErrorMessage(actFetchFollowing) == "" {
		t.Error("failed entry should record an error message")
	}
	if tracker.ErrorMessage(actFetchUser) != "" {
		t.Error("succeeded entry should not record an error message")
	}
}

func TestDispatchGroup_EmptyEntries(t *testing.T) {
	t.Parallel()

	tracker := dispatch.New[testAction](dispatch.Hooks[testAction]{}, nil, nil)

	done := make(chan struct{})
	tracker.DispatchGroup(context.Background(), nil, func(succeeded, failed []testAction) {
		if succeeded != nil || failed != nil {
			t.Errorf("empty group partition = (%v, %v), want (nil, nil)", succeeded, failed)
		}
		close(done)
	})

	waitDone(t, done)
}

func TestDispatchGroup_InFlightEntryCountsAsFailed(t *testing.T) {
	t.Parallel()

	tracker := dispatch.New[testAction](dispatch.Hooks[testAction]{}, nil, nil)

	// Occupy fetch_followers so the group entry for it is rejected.
	release := make(chan struct{})
	err := dispatch.Do(tracker, context.Background(), actFetchFollowers,
		func(context.Context) (int, error) {
			<-release
			return 0, nil
		},
		nil,
	)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	defer close(release)

	entries := []dispatch.GroupEntry[testAction]{
		{Key: actFetchFollowers, Work: func(context.Context) error {
			t.Error("rejected entry's work must not run")
			return nil
		}},
		{Key: actFetchUser, Work: func(context.Context) error { return nil }},
	}

	done := make(chan struct{})
	var gotSucceeded, gotFailed []testAction
	tracker.DispatchGroup(context.Background(), entries, func(succeeded, failed []testAction) {
		gotSucceeded = succeeded
		gotFailed = failed
		close(done)
	})

	waitDone(t, done)

	if !slices.Equal(gotSucceeded, []testAction{actFetchUser}) {
		t.Errorf("succeeded = %v, want [fetch_user]", gotSucceeded)
	}
	if !slices.Equal(gotFailed, []testAction{actFetchFollowers}) {
		t.Errorf("failed = %v, want [fetch_followers]", gotFailed)
	}
}

func TestDispatchGroup_NilDoneCallback(t *testing.T) {
	t.Parallel()

	tracker := dispatch.New[testAction](dispatch.Hooks[testAction]{}, nil, nil)

	settled := make(chan struct{})
	entries := []dispatch.GroupEntry[testAction]{
		{Key: actFetchUser, Work: func(context.Context) error {
			defer close(settled)
			return nil
		}},
	}

	// Must not panic without an aggregate callback.
	tracker.DispatchGroup(context.Background(), entries, nil)
	waitDone(t, settled)
}
