// Package dto provides HTTP response data transfer objects and RFC 9457
// Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/nholloway4/followd/internal/domain/follower"
	"github.com/nholloway4/followd/internal/ports"
)

// FollowerResponse represents a single follower in HTTP responses.
type FollowerResponse struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// FollowerListResponse represents a follower listing in HTTP responses.
type FollowerListResponse struct {
	Login     string             `json:"login"`
	Followers []FollowerResponse `json:"followers"`
	Count     int                `json:"count"`
}

// ToFollowerResponse converts a domain Follower to an HTTP response DTO.
func ToFollowerResponse(f *follower.Follower) FollowerResponse {
	return FollowerResponse{
		ID:        f.ID,
		Login:     f.Login,
		AvatarURL: f.AvatarURL,
	}
}

// ToFollowerListResponse converts a slice of domain Followers to an HTTP
// list response DTO for the given login.
func ToFollowerListResponse(login string, followers []follower.Follower) FollowerListResponse {
	items := make([]FollowerResponse, len(followers))
	for i := range followers {
		items[i] = ToFollowerResponse(&followers[i])
	}
	return FollowerListResponse{
		Login:     login,
		Followers: items,
		Count:     len(items),
	}
}

// UserResponse represents an account summary in HTTP responses.
type UserResponse struct {
	ID             int64  `json:"id"`
	Login          string `json:"login"`
	Name           string `json:"name,omitempty"`
	AvatarURL      string `json:"avatar_url"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
}

// ProfileResponse represents a profile snapshot in HTTP responses. Synced
// and Failed carry the outcome partition of the most recent full sync.
type ProfileResponse struct {
	Login     string             `json:"login"`
	User      *UserResponse      `json:"user,omitempty"`
	Followers []FollowerResponse `json:"followers"`
	Following []FollowerResponse `json:"following"`
	FetchedAt string             `json:"fetched_at"`
	Synced    []string           `json:"synced,omitempty"`
	Failed    []string           `json:"failed,omitempty"`
}

// ToProfileResponse converts a domain Profile snapshot to an HTTP response DTO.
func ToProfileResponse(p *follower.Profile) ProfileResponse {
	resp := ProfileResponse{
		Login:     p.Login,
		Followers: make([]FollowerResponse, len(p.Followers)),
		Following: make([]FollowerResponse, len(p.Following)),
		FetchedAt: p.FetchedAt.Format(time.RFC3339),
		Synced:    p.Synced,
		Failed:    p.Failed,
	}
	for i := range p.Followers {
		resp.Followers[i] = ToFollowerResponse(&p.Followers[i])
	}
	for i := range p.Following {
		resp.Following[i] = ToFollowerResponse(&p.Following[i])
	}
	if p.User != nil {
		resp.User = &UserResponse{
			ID:             p.User.ID,
			Login:          p.User.Login,
			Name:           p.User.Name,
			AvatarURL:      p.User.AvatarURL,
			FollowerCount:  p.User.FollowerCount,
			FollowingCount: p.User.FollowingCount,
		}
	}
	return resp
}

// ActionStatusResponse represents one action's dispatch state in HTTP
// responses.
type ActionStatusResponse struct {
	Action  string `json:"action"`
	Label   string `json:"label"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// ActionStatusListResponse represents the full action state listing.
type ActionStatusListResponse struct {
	Actions []ActionStatusResponse `json:"actions"`
}

// ToActionStatusListResponse converts port-level action states to an HTTP
// response DTO.
func ToActionStatusListResponse(states []ports.ActionStatus) ActionStatusListResponse {
	items := make([]ActionStatusResponse, len(states))
	for i, st := range states {
		items[i] = ActionStatusResponse{
			Action:  st.Action,
			Label:   st.Label,
			Loading: st.Loading,
			Error:   st.Error,
		}
	}
	return ActionStatusListResponse{Actions: items}
}

// AcceptedResponse acknowledges a dispatch that will complete in the
// background.
type AcceptedResponse struct {
	Login   string   `json:"login"`
	Actions []string `json:"actions"`
	Status  string   `json:"status"`
}

// NewAcceptedResponse builds the 202 acknowledgement for a background
// dispatch of the given actions.
func NewAcceptedResponse(login string, actions ...string) AcceptedResponse {
	return AcceptedResponse{
		Login:   login,
		Actions: actions,
		Status:  "accepted",
	}
}
