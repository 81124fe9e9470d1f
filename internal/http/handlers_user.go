package httpx

import (
	"context"
	"net/http"

	"github.com/jobradar/jobradar-api/internal/domain/model"
)

// UserServiceInterface defines the profile operations handlers need.
type UserServiceInterface interface {
	Profile(ctx context.Context, userID string) (*model.User, error)
	UpdateResume(ctx context.Context, userID string, req *model.UpdateResumeRequest) (*model.User, error)
}

// UserHandlers serves the authenticated profile and resume endpoints.
type UserHandlers struct {
	Svc UserServiceInterface
}

// Profile handles GET /api/user/profile.
func (h *UserHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.Svc.Profile(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

// UpdateResume handles POST /api/user/resume.
func (h *UserHandlers) UpdateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req model.UpdateResumeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.UpdateResume(r.Context(), userID, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}
