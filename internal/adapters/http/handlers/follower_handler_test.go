package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nholloway4/followd/internal/adapters/http/dto"
	"github.com/nholloway4/followd/internal/domain"
	"github.com/nholloway4/followd/internal/domain/follower"
	"github.com/nholloway4/followd/internal/ports"
)

// fakeFollowerService implements ports.FollowerService with function fields.
type fakeFollowerService struct {
	getFollowers func(ctx context.Context, login string) ([]follower.Follower, error)
	refresh      func(ctx context.Context, login string) error
	syncProfile  func(ctx context.Context, login string) error
	profile      func(ctx context.Context, login string) (*follower.Profile, error)
	actionStates func(ctx context.Context) []ports.ActionStatus
}

func (f *fakeFollowerService) GetFollowers(ctx context.Context, login string) ([]follower.Follower, error) {
	return f.getFollowers(ctx, login)
}

func (f *fakeFollowerService) Refresh(ctx context.Context, login string) error {
	return f.refresh(ctx, login)
}

func (f *fakeFollowerService) SyncProfile(ctx context.Context, login string) error {
	return f.syncProfile(ctx, login)
}

func (f *fakeFollowerService) Profile(ctx context.Context, login string) (*follower.Profile, error) {
	return f.profile(ctx, login)
}

func (f *fakeFollowerService) ActionStates(ctx context.Context) []ports.ActionStatus {
	return f.actionStates(ctx)
}

// serve routes the request through a chi router so URL params resolve.
func serve(h *FollowerHandler, method, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/users/{login}/followers", h.GetFollowers)
	r.Post("/users/{login}/refresh", h.Refresh)
	r.Post("/users/{login}/sync", h.Sync)
	r.Get("/users/{login}/profile", h.GetProfile)
	r.Get("/actions", h.GetActions)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestGetFollowers(t *testing.T) {
	t.Parallel()

	svc := &fakeFollowerService{
		getFollowers: func(_ context.Context, login string) ([]follower.Follower, error) {
			if login != "octocat" {
				t.Errorf("login = %q, want octocat", login)
			}
			return []follower.Follower{
				{ID: 1, Login: "alice", AvatarURL: "https://avatars.example/1"},
			}, nil
		},
	}
	h := NewFollowerHandler(svc)

	rec := serve(h, http.MethodGet, "/users/octocat/followers")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp dto.FollowerListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Login != "octocat" || resp.Count != 1 || resp.Followers[0].Login != "alice" {
		t.Errorf("resp = %+v, want octocat with one follower alice", resp)
	}
}

func TestGetFollowers_Conflict(t *testing.T) {
	t.Parallel()

	svc := &fakeFollowerService{
		getFollowers: func(_ context.Context, _ string) ([]follower.Follower, error) {
			return nil, fmt.Errorf("fetch already in flight: %w", domain.ErrConflict)
		},
	}
	h := NewFollowerHandler(svc)

	rec := serve(h, http.MethodGet, "/users/octocat/followers")

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want problem+json", ct)
	}
}

func TestGetFollowers_ValidationError(t *testing.T) {
	t.Parallel()

	svc := &fakeFollowerService{
		getFollowers: func(_ context.Context, _ string) ([]follower.Follower, error) {
			return nil, &domain.ValidationError{Fields: map[string]string{"login": "must not start with a hyphen"}}
		},
	}
	h := NewFollowerHandler(svc)

	rec := serve(h, http.MethodGet, "/users/-bad-/followers")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Location != "login" {
		t.Errorf("errors = %+v, want one login entry", resp.Errors)
	}
}

func TestRefresh_Accepted(t *testing.T) {
	t.Parallel()

	var gotLogin string
	svc := &fakeFollowerService{
		refresh: func(_ context.Context, login string) error {
			gotLogin = login
			return nil
		},
	}
	h := NewFollowerHandler(svc)

	rec := serve(h, http.MethodPost, "/users/octocat/refresh")

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}
	if gotLogin != "octocat" {
		t.Errorf("refreshed login = %q, want octocat", gotLogin)
	}

	var resp dto.AcceptedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "accepted" || len(resp.Actions) != 1 {
		t.Errorf("resp = %+v, want accepted with one action", resp)
	}
}

func TestRefresh_Conflict(t *testing.T) {
	t.Parallel()

	svc := &fakeFollowerService{
		refresh: func(_ context.Context, _ string) error {
			return fmt.Errorf("fetch already in flight: %w", domain.ErrConflict)
		},
	}
	h := NewFollowerHandler(svc)

	rec := serve(h, http.MethodPost, "/users/octocat/refresh")

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestSync_Accepted(t *testing.T) {
	t.Parallel()

	svc := &fakeFollowerService{
		syncProfile: func(_ context.Context, _ string) error { return nil },
	}
	h := NewFollowerHandler(svc)

	rec := serve(h, http.MethodPost, "/users/octocat/sync")

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}

	var resp dto.AcceptedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Actions) != 3 {
		t.Errorf("actions = %v, want all three", resp.Actions)
	}
}

func TestGetProfile(t *testing.T) {
	t.Parallel()

	svc := &fakeFollowerService{
		profile: func(_ context.Context, login string) (*follower.Profile, error) {
			return &follower.Profile{
				Login:     login,
				User:      &follower.User{ID: 42, Login: login, Name: "The Octocat"},
				Followers: []follower.Follower{{ID: 1, Login: "alice"}},
				FetchedAt: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
				Synced:    []string{"fetch_followers", "fetch_user"},
				Failed:    []string{"fetch_following"},
			}, nil
		},
	}
	h := NewFollowerHandler(svc)

	rec := serve(h, http.MethodGet, "/users/octocat/profile")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp dto.ProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.User == nil || resp.User.Name != "The Octocat" {
		t.Errorf("user = %+v, want The Octocat", resp.User)
	}
	if len(resp.Synced) != 2 || len(resp.Failed) != 1 {
		t.Errorf("synced/failed = %v/%v, want 2/1", resp.Synced, resp.Failed)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	t.Parallel()

	svc := &fakeFollowerService{
		profile: func(_ context.Context, login string) (*follower.Profile, error) {
			return nil, fmt.Errorf("no snapshot for %q: %w", login, domain.ErrNotFound)
		},
	}
	h := NewFollowerHandler(svc)

	rec := serve(h, http.MethodGet, "/users/octocat/profile")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGetActions(t *testing.T) {
	t.Parallel()

	svc := &fakeFollowerService{
		actionStates: func(_ context.Context) []ports.ActionStatus {
			return []ports.ActionStatus{
				{Action: "fetch_followers", Label: "fetch_followers", Loading: true},
				{Action: "fetch_user", Label: "fetch_user", Error: "not connected"},
			}
		},
	}
	h := NewFollowerHandler(svc)

	rec := serve(h, http.MethodGet, "/actions")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp dto.ActionStatusListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Actions) != 2 {
		t.Fatalf("actions = %d, want 2", len(resp.Actions))
	}
	if !resp.Actions[0].Loading || resp.Actions[1].Error != "not connected" {
		t.Errorf("actions = %+v, want loading first, errored second", resp.Actions)
	}
}
