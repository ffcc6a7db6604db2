package ports

import (
	"context"

	"github.com/nholloway4/followd/internal/domain/follower"
)

// GitHubClient defines the client port for the upstream GitHub REST API.
// Implemented by the ACL adapter; called by the application layer.
// The ACL translates GitHub's wire representation into domain entities and
// transparently walks paginated result sets.
type GitHubClient interface {
	// ListFollowers returns the accounts following the given user, across
	// all pages up to the configured page cap.
	// Returns domain.ErrNotFound if the user does not exist.
	ListFollowers(ctx context.Context, login string) ([]follower.Follower, error)

	// ListFollowing returns the accounts the given user follows, across
	// all pages up to the configured page cap.
	// Returns domain.ErrNotFound if the user does not exist.
	ListFollowing(ctx context.Context, login string) ([]follower.Follower, error)

	// GetUser returns the public profile of a single user.
	// Returns domain.ErrNotFound if the user does not exist.
	GetUser(ctx context.Context, login string) (*follower.User, error)
}
