//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxUsernameLen = 255
	// maxResumeLen caps pasted resume text; anything larger is almost
	// certainly not a resume.
	maxResumeLen = 100_000
)

// User represents an account provisioned from an identity provider login.
// GitHubID is the stable external identifier; profile fields are refreshed
// on every login.
type User struct {
	ID               string     `json:"id"                         db:"id"`
	GitHubID         string     `json:"githubId"                   db:"github_id"`
	Username         string     `json:"username"                   db:"username"`
	Email            *string    `json:"email,omitempty"            db:"email"`
	AvatarURL        *string    `json:"avatarUrl,omitempty"        db:"avatar_url"`
	ResumeText       *string    `json:"resumeText,omitempty"       db:"resume_text"`
	ResumeUploadedAt *time.Time `json:"resumeUploadedAt,omitempty" db:"resume_uploaded_at"`
	CreatedAt        time.Time  `json:"createdAt"                  db:"created_at"`
}

// UpsertUserRequest represents the profile snapshot captured at login time.
type UpsertUserRequest struct {
	GitHubID  string
	Username  string
	Email     *string
	AvatarURL *string
}

// Validate validates UpsertUserRequest and normalizes its fields in place.
func (r *UpsertUserRequest) Validate() error {
	r.GitHubID = strings.TrimSpace(r.GitHubID)
	if r.GitHubID == "" {
		return errors.New("githubId is required and cannot be empty")
	}
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return errors.New("username is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Username) > maxUsernameLen {
		return errors.New("username cannot exceed 255 characters")
	}
	return nil
}

// UpdateResumeRequest represents a resume upload for the current user.
type UpdateResumeRequest struct {
	ResumeText string `json:"resumeText"`
}

// Validate validates UpdateResumeRequest.
func (r *UpdateResumeRequest) Validate() error {
	if strings.TrimSpace(r.ResumeText) == "" {
		return errors.New("resumeText is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.ResumeText) > maxResumeLen {
		return errors.New("resumeText cannot exceed 100000 characters")
	}
	return nil
}
