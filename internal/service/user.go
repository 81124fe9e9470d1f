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

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Repo core.UserRepository
}

// UserService provides business logic for user profiles and resume storage.
type UserService struct {
	repo core.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) (*UserService, error) {
	if opts.Repo == nil {
		return nil, errors.New("UserRepository is required")
	}
	return &UserService{repo: opts.Repo}, nil
}

// Profile returns the user's account record, including any stored resume.
func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(fmt.Errorf("get user: %w", err))
	}
	return user, nil
}

// UpdateResume replaces the user's stored resume text and stamps the upload time.
func (s *UserService) UpdateResume(ctx context.Context, userID string, req *model.UpdateResumeRequest) (*model.User, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	user, err := s.repo.UpdateResume(ctx, userID, req.ResumeText)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(fmt.Errorf("update resume: %w", err))
	}
	return user, nil
}
