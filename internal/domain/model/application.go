//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxApplicationCompanyLen = 255
	maxApplicationRoleLen    = 255
	maxApplicationNotesLen   = 10_000
)

// ApplicationStatus tracks where an application sits in the pipeline.
type ApplicationStatus string

const (
	ApplicationStatusApplied   ApplicationStatus = "Applied"
	ApplicationStatusInterview ApplicationStatus = "Interview"
	ApplicationStatusOffer     ApplicationStatus = "Offer"
	ApplicationStatusRejected  ApplicationStatus = "Rejected"
	ApplicationStatusWishlist  ApplicationStatus = "Wishlist"
)

// Valid reports whether the application status is supported.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusInterview, ApplicationStatusOffer,
		ApplicationStatusRejected, ApplicationStatusWishlist:
		return true
	default:
		return false
	}
}

// ParseApplicationStatus normalizes a status string and reports whether it is supported.
func ParseApplicationStatus(value string) (ApplicationStatus, bool) {
	trimmed := strings.TrimSpace(value)
	for _, s := range []ApplicationStatus{
		ApplicationStatusApplied, ApplicationStatusInterview, ApplicationStatusOffer,
		ApplicationStatusRejected, ApplicationStatusWishlist,
	} {
		if strings.EqualFold(trimmed, string(s)) {
			return s, true
		}
	}
	return "", false
}

// Application represents one user's tracked job application.
// Applications are strictly per-user: every read and write is scoped to the
// owning user ID.
type Application struct {
	ID              string            `json:"id"                        db:"id"`
	UserID          string            `json:"userId"                    db:"user_id"`
	Company         string            `json:"company"                   db:"company"`
	Role            string            `json:"role"                      db:"role"`
	JobID           *string           `json:"jobId,omitempty"           db:"job_id"`
	Status          ApplicationStatus `json:"status"                    db:"status"`
	Notes           *string           `json:"notes,omitempty"           db:"notes"`
	PredictionScore *float64          `json:"predictionScore,omitempty" db:"prediction_score"`
	AppliedDate     time.Time         `json:"appliedDate"               db:"applied_date"`
}

// CreateApplicationRequest represents parameters to track a new application.
type CreateApplicationRequest struct {
	Company string            `json:"company"`
	Role    string            `json:"role"`
	JobID   *string           `json:"jobId,omitempty"`
	Status  ApplicationStatus `json:"status,omitempty"`
	Notes   *string           `json:"notes,omitempty"`
}

// Validate validates CreateApplicationRequest and normalizes its fields in place.
func (r *CreateApplicationRequest) Validate() error {
	r.Company = strings.TrimSpace(r.Company)
	if r.Company == "" {
		return errors.New("company is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Company) > maxApplicationCompanyLen {
		return errors.New("company cannot exceed 255 characters")
	}

	r.Role = strings.TrimSpace(r.Role)
	if r.Role == "" {
		return errors.New("role is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Role) > maxApplicationRoleLen {
		return errors.New("role cannot exceed 255 characters")
	}

	if r.Status == "" {
		r.Status = ApplicationStatusApplied
	} else {
		status, ok := ParseApplicationStatus(string(r.Status))
		if !ok {
			return errors.New("invalid status")
		}
		r.Status = status
	}

	if r.Notes != nil && utf8.RuneCountInString(*r.Notes) > maxApplicationNotesLen {
		return errors.New("notes cannot exceed 10000 characters")
	}
	return nil
}

// UpdateApplicationRequest represents parameters to update a tracked application.
type UpdateApplicationRequest struct {
	Status *ApplicationStatus `json:"status,omitempty"`
	Notes  *string            `json:"notes,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateApplicationRequest.
func (r *UpdateApplicationRequest) HasUpdates() bool {
	return r.Status != nil || r.Notes != nil
}

// Validate validates UpdateApplicationRequest, ensuring at least one field is set.
func (r *UpdateApplicationRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Status != nil {
		status, ok := ParseApplicationStatus(string(*r.Status))
		if !ok {
			return errors.New("invalid status")
		}
		*r.Status = status
	}
	if r.Notes != nil && utf8.RuneCountInString(*r.Notes) > maxApplicationNotesLen {
		return errors.New("notes cannot exceed 10000 characters")
	}
	return nil
}
