package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobradar/jobradar-api/internal/core"
	domainauth "github.com/jobradar/jobradar-api/internal/domain/auth"
	"github.com/jobradar/jobradar-api/internal/domain/model"
	"github.com/jobradar/jobradar-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	Users    core.UserRepository
	// SessionTTL bounds session lifetime. When zero, sessions inherit the
	// identity expiry from the provider.
	SessionTTL time.Duration
}

// AuthService orchestrates authentication flows: it coordinates the identity
// provider, provisions the local user account, and persists sessions.
type AuthService struct {
	provider   ports.AuthProvider
	sessions   ports.SessionStore
	users      core.UserRepository
	sessionTTL time.Duration
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		provider:   opts.Provider,
		sessions:   opts.Sessions,
		users:      opts.Users,
		sessionTTL: opts.SessionTTL,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	input := ports.BeginInput{RedirectURL: redirectURL}
	authURL, state, nonce, err := s.provider.Begin(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session
	User    *model.User
}

// CompleteLogin completes an authentication flow: it exchanges the code for
// an identity, upserts the local user account keyed by the external ID, and
// persists a session. Concurrent first logins for the same identity are safe;
// the upsert collapses them to a single account.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}

	exchangeInput := ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	}
	identity, err := s.provider.Exchange(ctx, exchangeInput)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	// Provision or refresh the local account from the identity snapshot.
	upsert := &model.UpsertUserRequest{
		GitHubID: identity.ExternalID,
		Username: identity.Username,
	}
	if identity.Email != "" {
		email := identity.Email
		upsert.Email = &email
	}
	if identity.AvatarURL != "" {
		avatar := identity.AvatarURL
		upsert.AvatarURL = &avatar
	}
	user, err := s.users.Upsert(ctx, upsert)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	session := domainauth.Session{
		ID:        generateSessionID(),
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: s.sessionExpiry(identity),
	}
	if user.Email != nil {
		session.Email = *user.Email
	}
	if user.AvatarURL != nil {
		session.AvatarURL = *user.AvatarURL
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &CompleteLoginResult{
		Session: session,
		User:    user,
	}, nil
}

// GetSession retrieves a session by ID. Expired sessions are deleted and
// reported as an error.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.IsExpired(time.Now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// sessionExpiry resolves the session expiry from the configured TTL,
// falling back to the provider's identity expiry.
func (s *AuthService) sessionExpiry(identity domainauth.Identity) time.Time {
	if s.sessionTTL > 0 {
		return time.Now().Add(s.sessionTTL)
	}
	if !identity.ExpiresAt.IsZero() {
		return identity.ExpiresAt
	}
	return time.Now().Add(time.Hour)
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// Use UUID for session ID - it's URL-safe and has good entropy
	id := uuid.New()
	return id.String()
}
