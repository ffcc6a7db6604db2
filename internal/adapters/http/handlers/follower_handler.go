// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/nholloway4/followd/internal/adapters/http/dto"
	"github.com/nholloway4/followd/internal/ports"
)

// FollowerHandler handles HTTP requests for follower listings, background
// refreshes, profile syncs, and action state inspection.
type FollowerHandler struct {
	svc ports.FollowerService
}

// NewFollowerHandler creates a new FollowerHandler with the given service port.
func NewFollowerHandler(svc ports.FollowerService) *FollowerHandler {
	return &FollowerHandler{svc: svc}
}

// GetFollowers handles GET /api/v1/users/{login}/followers. It blocks until
// the tracked fetch completes; a fetch already in flight yields 409.
func (h *FollowerHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	login, err := loginParam(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	followers, err := h.svc.GetFollowers(r.Context(), login)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToFollowerListResponse(login, followers))
}

// Refresh handles POST /api/v1/users/{login}/refresh. The refresh runs in
// the background; the handler acknowledges with 202, or 409 when a fetch is
// already in flight.
func (h *FollowerHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	login, err := loginParam(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.Refresh(r.Context(), login); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, dto.NewAcceptedResponse(login, "fetch_followers"))
}

// Sync handles POST /api/v1/users/{login}/sync. All profile actions are
// dispatched as one group; actions already in flight are skipped and
// reported as failed in the eventual snapshot.
func (h *FollowerHandler) Sync(w http.ResponseWriter, r *http.Request) {
	login, err := loginParam(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.SyncProfile(r.Context(), login); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted,
		dto.NewAcceptedResponse(login, "fetch_followers", "fetch_following", "fetch_user"))
}

// GetProfile handles GET /api/v1/users/{login}/profile. Returns the latest
// snapshot, or 404 when no fetch has completed for the login yet.
func (h *FollowerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	login, err := loginParam(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	profile, err := h.svc.Profile(r.Context(), login)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProfileResponse(profile))
}

// GetActions handles GET /api/v1/actions.
func (h *FollowerHandler) GetActions(w http.ResponseWriter, r *http.Request) {
	states := h.svc.ActionStates(r.Context())
	writeJSON(w, http.StatusOK, dto.ToActionStatusListResponse(states))
}
