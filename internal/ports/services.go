package ports

import (
	"context"

	"github.com/nholloway4/followd/internal/domain/follower"
)

// FollowerService defines the service port for follower tracking operations.
// Implemented by the application layer; called by inbound adapters (handlers).
//
// Read operations are synchronous. Refresh and SyncProfile dispatch
// background work keyed by action; a second dispatch of an action already in
// flight is rejected with domain.ErrConflict.
type FollowerService interface {
	// GetFollowers returns the follower list for a user, fetching it from
	// the upstream if no snapshot exists. Blocks until the fetch completes
	// or ctx is canceled.
	// Returns domain.ErrValidation for a malformed login.
	// Returns domain.ErrNotFound if the user does not exist.
	// Returns domain.ErrConflict if a follower fetch is already in flight.
	GetFollowers(ctx context.Context, login string) ([]follower.Follower, error)

	// Refresh starts a background refresh of the user's follower list and
	// returns immediately. The result lands in the snapshot store; progress
	// is observable through ActionStates.
	// Returns domain.ErrValidation for a malformed login.
	// Returns domain.ErrConflict if a follower fetch is already in flight.
	Refresh(ctx context.Context, login string) error

	// SyncProfile starts a background sync of the user's full profile:
	// followers, following, and user details fetched concurrently as one
	// group. Returns immediately; when every part settles, the outcome
	// partition is recorded on the profile snapshot.
	// Returns domain.ErrValidation for a malformed login.
	SyncProfile(ctx context.Context, login string) error

	// Profile returns the current profile snapshot for a user.
	// Returns domain.ErrNotFound if no snapshot exists yet.
	Profile(ctx context.Context, login string) (*follower.Profile, error)

	// ActionStates reports the dispatch state of every action that has ever
	// been dispatched: whether it is currently loading and its most recent
	// error message, if any.
	ActionStates(ctx context.Context) []ActionStatus
}

// ActionStatus is a point-in-time view of one action's dispatch state.
// Label is the human-readable form of the action key.
type ActionStatus struct {
	Action  string
	Label   string
	Loading bool
	Error   string
}
