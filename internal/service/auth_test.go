package service

import (
	"context"
	"errors"
	"testing"
	"time"

	domainauth "github.com/jobradar/jobradar-api/internal/domain/auth"
	"github.com/jobradar/jobradar-api/internal/domain/model"
	mockauth "github.com/jobradar/jobradar-api/internal/mocks/auth"
	"github.com/jobradar/jobradar-api/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is a minimal UserRepository double for auth flow tests.
type fakeUserRepo struct {
	upsertReq *model.UpsertUserRequest
	upsertErr error
	user      *model.User
}

func (f *fakeUserRepo) Upsert(_ context.Context, req *model.UpsertUserRequest) (*model.User, error) {
	f.upsertReq = req
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if f.user != nil {
		return f.user, nil
	}
	email := "mock.user@example.com"
	return &model.User{ID: "user-1", GitHubID: req.GitHubID, Username: req.Username, Email: &email}, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ string) (*model.User, error) {
	return f.user, nil
}

func (f *fakeUserRepo) UpdateResume(_ context.Context, _, _ string) (*model.User, error) {
	return f.user, nil
}

func newTestAuthService(users *fakeUserRepo, sessions ports.SessionStore) (*AuthService, *mockauth.MockAuthProvider) {
	provider := mockauth.NewMockAuthProvider()
	svc := NewAuthService(AuthServiceOptions{
		Provider:   provider,
		Sessions:   sessions,
		Users:      users,
		SessionTTL: 24 * time.Hour,
	})
	return svc, provider
}

func TestAuthService_BeginLogin(t *testing.T) {
	svc, _ := newTestAuthService(&fakeUserRepo{}, mockauth.NewMemorySessionStore())

	result, err := svc.BeginLogin(context.Background(), "http://localhost:8080/auth/github/callback")
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", result.AuthURL)
	assert.NotEmpty(t, result.State)
	assert.NotEmpty(t, result.Nonce)
}

func TestAuthService_BeginLogin_RequiresRedirectURL(t *testing.T) {
	svc, _ := newTestAuthService(&fakeUserRepo{}, mockauth.NewMemorySessionStore())

	_, err := svc.BeginLogin(context.Background(), "")
	require.Error(t, err)
}

func TestAuthService_CompleteLogin(t *testing.T) {
	users := &fakeUserRepo{}
	sessions := mockauth.NewMemorySessionStore()
	svc, _ := newTestAuthService(users, sessions)

	result, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code:  "code",
		State: "state",
		Nonce: "nonce",
	})
	require.NoError(t, err)

	// The local account is provisioned from the identity snapshot.
	require.NotNil(t, users.upsertReq)
	assert.Equal(t, "8675309", users.upsertReq.GitHubID)
	assert.Equal(t, "mock-user", users.upsertReq.Username)
	require.NotNil(t, users.upsertReq.Email)
	assert.Equal(t, "mock.user@example.com", *users.upsertReq.Email)

	// The session references the internal user ID, not the GitHub ID.
	assert.Equal(t, "user-1", result.Session.UserID)
	assert.Equal(t, "mock-user", result.Session.Username)
	assert.NotEmpty(t, result.Session.ID)
	assert.True(t, result.Session.ExpiresAt.After(time.Now().Add(23*time.Hour)))

	// And it is persisted under its ID.
	stored, err := sessions.Get(context.Background(), result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Session.UserID, stored.UserID)
}

func TestAuthService_CompleteLogin_ValidationErrors(t *testing.T) {
	svc, _ := newTestAuthService(&fakeUserRepo{}, mockauth.NewMemorySessionStore())
	ctx := context.Background()

	_, err := svc.CompleteLogin(ctx, CompleteLoginInput{State: "state"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authorization code is required")

	_, err = svc.CompleteLogin(ctx, CompleteLoginInput{Code: "code"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "state parameter is required")
}

func TestAuthService_CompleteLogin_ExchangeError(t *testing.T) {
	svc, provider := newTestAuthService(&fakeUserRepo{}, mockauth.NewMemorySessionStore())
	provider.ExchangeFunc = func(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
		return domainauth.Identity{}, errors.New("invalid code")
	}

	_, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{Code: "bad", State: "state", Nonce: "n"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange authorization code")
}

func TestAuthService_CompleteLogin_UpsertError(t *testing.T) {
	users := &fakeUserRepo{upsertErr: errors.New("db down")}
	svc, _ := newTestAuthService(users, mockauth.NewMemorySessionStore())

	_, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{Code: "code", State: "state", Nonce: "n"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert user")
}

func TestAuthService_GetSession(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore()
	svc, _ := newTestAuthService(&fakeUserRepo{}, sessions)
	ctx := context.Background()

	sess := domainauth.Session{ID: "sess-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, sessions.Save(ctx, sess))

	got, err := svc.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
}

func TestAuthService_GetSession_ExpiredIsDeleted(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore()
	svc, _ := newTestAuthService(&fakeUserRepo{}, sessions)
	ctx := context.Background()

	sess := domainauth.Session{ID: "sess-1", UserID: "user-1", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, sessions.Save(ctx, sess))

	_, err := svc.GetSession(ctx, "sess-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")

	// The expired session is cleaned up.
	_, err = sessions.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, mockauth.ErrNotFound)
}

func TestAuthService_GetSession_Missing(t *testing.T) {
	svc, _ := newTestAuthService(&fakeUserRepo{}, mockauth.NewMemorySessionStore())

	_, err := svc.GetSession(context.Background(), "unknown")
	require.Error(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	sessions := mockauth.NewMemorySessionStore()
	svc, _ := newTestAuthService(&fakeUserRepo{}, sessions)
	ctx := context.Background()

	sess := domainauth.Session{ID: "sess-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, sessions.Save(ctx, sess))

	require.NoError(t, svc.Logout(ctx, "sess-1"))
	_, err := sessions.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, mockauth.ErrNotFound)

	// Logging out without a session is a no-op.
	require.NoError(t, svc.Logout(ctx, ""))
}
