package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobradar/jobradar-api/internal/core"
	"github.com/jobradar/jobradar-api/internal/data"
	"github.com/jobradar/jobradar-api/internal/domain/model"
	apperrors "github.com/jobradar/jobradar-api/internal/errors"
)

// ApplicationServiceOptions groups dependencies for ApplicationService.
type ApplicationServiceOptions struct {
	Repo core.ApplicationRepository
}

// ApplicationService provides business logic for per-user application
// tracking. Every operation is scoped to the authenticated user; an
// application ID owned by someone else is indistinguishable from a missing
// one.
type ApplicationService struct {
	repo core.ApplicationRepository
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(opts ApplicationServiceOptions) (*ApplicationService, error) {
	if opts.Repo == nil {
		return nil, errors.New("ApplicationRepository is required")
	}
	return &ApplicationService{repo: opts.Repo}, nil
}

// Create tracks a new application for the given user.
func (s *ApplicationService) Create(ctx context.Context, userID string, req *model.CreateApplicationRequest) (*model.Application, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	app, err := s.repo.Create(ctx, userID, req)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("create application: %w", err))
	}
	return app, nil
}

// ListByUser returns all of the user's tracked applications, most recent first.
func (s *ApplicationService) ListByUser(ctx context.Context, userID string) ([]model.Application, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}

	apps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list applications: %w", err))
	}
	if apps == nil {
		apps = []model.Application{}
	}
	return apps, nil
}

// Update modifies the status and/or notes of one of the user's applications.
func (s *ApplicationService) Update(ctx context.Context, ref core.ApplicationRef, req *model.UpdateApplicationRequest) (*model.Application, error) {
	if ref.UserID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if ref.ID == "" {
		return nil, apperrors.Validation("application ID is required")
	}
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	app, err := s.repo.Update(ctx, ref, req)
	if err != nil {
		if errors.Is(err, data.ErrApplicationNotFound) {
			return nil, apperrors.NotFound("application not found")
		}
		return nil, apperrors.MapDBError(fmt.Errorf("update application: %w", err))
	}
	return app, nil
}

// Delete removes one of the user's applications.
func (s *ApplicationService) Delete(ctx context.Context, ref core.ApplicationRef) error {
	if ref.UserID == "" {
		return apperrors.Unauthorized("authentication required")
	}
	if ref.ID == "" {
		return apperrors.Validation("application ID is required")
	}

	deleted, err := s.repo.Delete(ctx, ref)
	if err != nil {
		return apperrors.MapDBError(fmt.Errorf("delete application: %w", err))
	}
	if !deleted {
		return apperrors.NotFound("application not found")
	}
	return nil
}
