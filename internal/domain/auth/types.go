package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Identity represents the authenticated principal returned by an identity
// provider. Adapters map provider-specific claims into this shape.
type Identity struct {
	ExternalID string // stable provider identifier (e.g. the GitHub account ID or OIDC sub)
	Username   string
	Email      string
	AvatarURL  string
	ExpiresAt  time.Time // absolute expiry from the provider token
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g. a random UUID).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session expiry has passed relative to now.
func (s Session) IsExpired(now time.Time) bool { return now.After(s.ExpiresAt) }
