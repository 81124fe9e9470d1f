package auth

import (
	"context"
	"testing"
	"time"

	domainauth "github.com/jobradar/jobradar-api/internal/domain/auth"
	"github.com/jobradar/jobradar-api/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockAuthProvider_Begin_Deterministic(t *testing.T) {
	provider := NewMockAuthProvider()
	ctx := context.Background()

	authURL, state1, nonce1, err := provider.Begin(ctx, ports.BeginInput{RedirectURL: "http://localhost/cb"})
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", authURL)
	assert.Equal(t, "state-1", state1)
	assert.Equal(t, "nonce-1", nonce1)

	_, state2, nonce2, err := provider.Begin(ctx, ports.BeginInput{RedirectURL: "http://localhost/cb"})
	require.NoError(t, err)
	assert.Equal(t, "state-2", state2)
	assert.Equal(t, "nonce-2", nonce2)
}

func TestMockAuthProvider_Exchange_DefaultIdentity(t *testing.T) {
	provider := NewMockAuthProvider()

	identity, err := provider.Exchange(context.Background(), ports.ExchangeInput{Code: "c", State: "s", Nonce: "n"})
	require.NoError(t, err)
	assert.Equal(t, "8675309", identity.ExternalID)
	assert.Equal(t, "mock-user", identity.Username)
	assert.True(t, identity.ExpiresAt.After(time.Now()))
}

func TestMockAuthProvider_ExchangeFunc_Override(t *testing.T) {
	provider := NewMockAuthProvider()
	provider.ExchangeFunc = func(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
		return domainauth.Identity{ExternalID: "42", Username: "custom"}, nil
	}

	identity, err := provider.Exchange(context.Background(), ports.ExchangeInput{Code: "c", State: "s"})
	require.NoError(t, err)
	assert.Equal(t, "42", identity.ExternalID)
	assert.Equal(t, "custom", identity.Username)
}

func TestMemorySessionStore_RoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	sess := domainauth.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Username:  "mock-user",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySessionStore_SaveRequiresID(t *testing.T) {
	store := NewMemorySessionStore()
	err := store.Save(context.Background(), domainauth.Session{})
	require.Error(t, err)
}
