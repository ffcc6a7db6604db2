// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nholloway4/followd/internal/domain"
	"github.com/nholloway4/followd/internal/domain/follower"
	"github.com/nholloway4/followd/internal/platform/dispatch"
	"github.com/nholloway4/followd/internal/platform/telemetry"
	"github.com/nholloway4/followd/internal/ports"
)

// Compile-time check that FollowerService implements ports.FollowerService.
var _ ports.FollowerService = (*FollowerService)(nil)

// FollowerService implements ports.FollowerService. It owns one dispatch
// tracker keyed by Action and an in-memory snapshot store keyed by login.
// All upstream access goes through the GitHubClient port; completed fetches
// write into the snapshot store from the dispatch completion path.
type FollowerService struct {
	github  ports.GitHubClient
	tracker *dispatch.Tracker[Action]
	logger  *slog.Logger

	mu       sync.RWMutex
	profiles map[string]*follower.Profile
}

// NewFollowerService creates a FollowerService. The client port provides
// access to the upstream GitHub API; metrics may be nil to skip dispatch
// instrumentation.
func NewFollowerService(client ports.GitHubClient, metrics *telemetry.Metrics, logger *slog.Logger) *FollowerService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &FollowerService{
		github:   client,
		logger:   logger,
		profiles: make(map[string]*follower.Profile),
	}

	s.tracker = dispatch.New[Action](dispatch.Hooks[Action]{
		Status: func(key Action, loading bool) {
			logger.Debug("action status changed",
				slog.String("action", key.String()),
				slog.Bool("loading", loading),
			)
		},
		Error: func(key Action, err error) {
			logger.Warn("action error recorded",
				slog.String("action", key.String()),
				slog.Any("error", err),
			)
		},
	}, metrics, logger)

	return s
}

// GetFollowers returns the follower list for login, fetching from the
// upstream through the tracked fetch-followers action. It blocks until the
// fetch completes or ctx is canceled; on cancellation the background fetch
// keeps running and its result still lands in the snapshot store.
func (s *FollowerService) GetFollowers(ctx context.Context, login string) ([]follower.Follower, error) {
	if err := follower.ValidateLogin(login); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "fetching followers", slog.String("login", login))

	type outcome struct {
		followers []follower.Follower
		err       error
	}
	result := make(chan outcome, 1)

	err := dispatch.Do(s.tracker, ctx, ActionFetchFollowers,
		func(ctx context.Context) ([]follower.Follower, error) {
			return s.github.ListFollowers(ctx, login)
		},
		func(followers []follower.Follower, err error) {
			if err == nil {
				s.storeFollowers(login, followers)
			}
			result <- outcome{followers: followers, err: err}
		},
	)
	if err != nil {
		return nil, s.mapDispatchError(err, ActionFetchFollowers)
	}

	select {
	case out := <-result:
		if out.err != nil {
			s.logger.ErrorContext(ctx, "failed to fetch followers",
				slog.String("operation", "GetFollowers"),
				slog.String("login", login),
				slog.Any("error", out.err),
			)
			return nil, out.err
		}
		return out.followers, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Refresh starts a background refresh of login's follower list and returns
// immediately. The fetch runs detached from the request context so a client
// disconnect does not abort it.
func (s *FollowerService) Refresh(ctx context.Context, login string) error {
	if err := follower.ValidateLogin(login); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "refreshing followers", slog.String("login", login))

	bg := context.WithoutCancel(ctx)
	err := dispatch.Do(s.tracker, bg, ActionFetchFollowers,
		func(ctx context.Context) ([]follower.Follower, error) {
			return s.github.ListFollowers(ctx, login)
		},
		func(followers []follower.Follower, err error) {
			if err == nil {
				s.storeFollowers(login, followers)
			}
		},
	)
	if err != nil {
		return s.mapDispatchError(err, ActionFetchFollowers)
	}
	return nil
}

// SyncProfile starts a background sync of login's full profile: followers,
// following, and user details dispatched concurrently as one group. Actions
// already in flight count as failed for this sync without being re-run; the
// remaining actions still proceed, so SyncProfile itself never conflicts.
func (s *FollowerService) SyncProfile(ctx context.Context, login string) error {
	if err := follower.ValidateLogin(login); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "syncing profile", slog.String("login", login))

	bg := context.WithoutCancel(ctx)
	entries := []dispatch.GroupEntry[Action]{
		{
			Key: ActionFetchFollowers,
			Work: func(ctx context.Context) error {
				followers, err := s.github.ListFollowers(ctx, login)
				if err != nil {
					return err
				}
				s.storeFollowers(login, followers)
				return nil
			},
		},
		{
			Key: ActionFetchFollowing,
			Work: func(ctx context.Context) error {
				following, err := s.github.ListFollowing(ctx, login)
				if err != nil {
					return err
				}
				s.storeFollowing(login, following)
				return nil
			},
		},
		{
			Key: ActionFetchUser,
			Work: func(ctx context.Context) error {
				user, err := s.github.GetUser(ctx, login)
				if err != nil {
					return err
				}
				s.storeUser(login, user)
				return nil
			},
		},
	}

	s.tracker.DispatchGroup(bg, entries, func(succeeded, failed []Action) {
		s.recordSyncOutcome(login, succeeded, failed)
		s.logger.Info("profile sync settled",
			slog.String("login", login),
			slog.Int("succeeded", len(succeeded)),
			slog.Int("failed", len(failed)),
		)
	})

	return nil
}

// Profile returns a copy of the current snapshot for login.
func (s *FollowerService) Profile(_ context.Context, login string) (*follower.Profile, error) {
	if err := follower.ValidateLogin(login); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[login]
	if !ok {
		return nil, fmt.Errorf("no snapshot for %q: %w", login, domain.ErrNotFound)
	}

	snapshot := *p
	return &snapshot, nil
}

// ActionStates reports the dispatch state of every tracked action.
func (s *FollowerService) ActionStates(_ context.Context) []ports.ActionStatus {
	actions := Actions()
	states := make([]ports.ActionStatus, 0, len(actions))
	for _, a := range actions {
		states = append(states, ports.ActionStatus{
			Action:  string(a),
			Label:   dispatch.Label(a),
			Loading: s.tracker.IsLoading(a),
			Error:   s.tracker.ErrorMessage(a),
		})
	}
	return states
}

// mapDispatchError translates tracker-level rejections into domain errors
// for the inbound adapters.
func (s *FollowerService) mapDispatchError(err error, action Action) error {
	if errors.Is(err, dispatch.ErrInFlight) {
		return fmt.Errorf("action %s already in flight: %w", action, domain.ErrConflict)
	}
	return err
}

// upsertProfile applies mutate to login's snapshot under the store lock,
// creating the snapshot on first write and stamping FetchedAt.
func (s *FollowerService) upsertProfile(login string, mutate func(*follower.Profile)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[login]
	if !ok {
		p = &follower.Profile{Login: login}
		s.profiles[login] = p
	}
	mutate(p)
	p.FetchedAt = time.Now()
}

func (s *FollowerService) storeFollowers(login string, followers []follower.Follower) {
	s.upsertProfile(login, func(p *follower.Profile) {
		p.Followers = followers
	})
}

func (s *FollowerService) storeFollowing(login string, following []follower.Follower) {
	s.upsertProfile(login, func(p *follower.Profile) {
		p.Following = following
	})
}

func (s *FollowerService) storeUser(login string, user *follower.User) {
	s.upsertProfile(login, func(p *follower.Profile) {
		p.User = user
	})
}

// recordSyncOutcome writes the succeeded/failed partition of a group sync
// onto the snapshot.
func (s *FollowerService) recordSyncOutcome(login string, succeeded, failed []Action) {
	s.upsertProfile(login, func(p *follower.Profile) {
		p.Synced = actionLabels(succeeded)
		p.Failed = actionLabels(failed)
	})
}

func actionLabels(actions []Action) []string {
	if len(actions) == 0 {
		return nil
	}
	labels := make([]string, 0, len(actions))
	for _, a := range actions {
		labels = append(labels, string(a))
	}
	return labels
}
