// Package follower defines the entities fetched from the upstream GitHub API:
// individual followers, account summaries, and the profile snapshot that
// aggregates the results of a full sync.
package follower

import "time"

// Follower is a single account that follows (or is followed by) the tracked
// user. Mirrors the upstream wire contract {id, login, avatar_url}.
type Follower struct {
	ID        int64
	Login     string
	AvatarURL string
}

// User is the account summary for a tracked login.
type User struct {
	ID             int64
	Login          string
	Name           string
	AvatarURL      string
	FollowerCount  int
	FollowingCount int
}

// Profile is the last-known snapshot for one login. It is assembled
// incrementally: each action that completes successfully fills in its slice
// of the snapshot, so a partially failed sync still yields partial data.
type Profile struct {
	Login     string
	User      *User
	Followers []Follower
	Following []Follower

	// FetchedAt is when the most recent action wrote into this snapshot.
	FetchedAt time.Time

	// Synced and Failed record the action labels partitioned by outcome on
	// the most recent group sync. Both are nil for single-action refreshes.
	Synced []string
	Failed []string
}
