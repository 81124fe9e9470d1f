package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/jobradar/jobradar-api/internal/core"
	"github.com/jobradar/jobradar-api/internal/domain/model"
)

// ApplicationServiceInterface defines the application-tracking operations handlers need.
type ApplicationServiceInterface interface {
	Create(ctx context.Context, userID string, req *model.CreateApplicationRequest) (*model.Application, error)
	ListByUser(ctx context.Context, userID string) ([]model.Application, error)
	Update(ctx context.Context, ref core.ApplicationRef, req *model.UpdateApplicationRequest) (*model.Application, error)
	Delete(ctx context.Context, ref core.ApplicationRef) error
}

// ApplicationHandlers serves the authenticated application-tracker endpoints.
// Every operation is scoped to the session user.
type ApplicationHandlers struct {
	Svc ApplicationServiceInterface
}

// requireUserID pulls the session user from the request context. RequireAuth
// guards these routes, so a missing session means broken middleware wiring.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return "", false
	}
	return session.UserID, true
}

// List handles GET /api/applications.
func (h *ApplicationHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	apps, err := h.Svc.ListByUser(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, apps)
}

// Create handles POST /api/applications.
func (h *ApplicationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req model.CreateApplicationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	app, err := h.Svc.Create(r.Context(), userID, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, app)
}

// Update handles PATCH /api/applications/{id}.
func (h *ApplicationHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req model.UpdateApplicationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	ref := core.ApplicationRef{UserID: userID, ID: r.PathValue("id")}
	app, err := h.Svc.Update(r.Context(), ref, &req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}

// Delete handles DELETE /api/applications/{id}.
func (h *ApplicationHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	ref := core.ApplicationRef{UserID: userID, ID: r.PathValue("id")}
	if err := h.Svc.Delete(r.Context(), ref); err != nil {
		WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
