// Package core defines the service-facing interfaces for the jobradar system.
// The core declares what it needs (hexagonal ports); internal/data provides
// the Postgres and Redis implementations.
package core

import (
	"context"
	"time"

	"github.com/jobradar/jobradar-api/internal/domain/model"
)

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	// Insert stores a job posting. When a posting with the same apply link
	// already exists, it returns that existing posting with created=false
	// instead of inserting; the decision is made atomically by the store.
	Insert(ctx context.Context, req *model.CreateJobRequest) (job *model.Job, created bool, err error)

	// ListRecent returns up to limit postings ordered by posted date, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.Job, error)

	// GetByApplyLink returns the posting with the given apply link.
	GetByApplyLink(ctx context.Context, applyLink string) (*model.Job, error)
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Upsert creates the user on first login or refreshes profile fields on
	// subsequent logins, keyed by the external GitHub ID. Concurrent first
	// logins for the same identity collapse to a single row.
	Upsert(ctx context.Context, req *model.UpsertUserRequest) (*model.User, error)

	// GetByID returns the user with the given internal ID.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// UpdateResume replaces the stored resume text and stamps the upload time.
	UpdateResume(ctx context.Context, userID, resumeText string) (*model.User, error)
}

// ApplicationRepository defines persistence operations for tracked applications.
// Every operation is scoped to the owning user; an ID belonging to a different
// user behaves exactly like a missing ID.
type ApplicationRepository interface {
	Create(ctx context.Context, userID string, req *model.CreateApplicationRequest) (*model.Application, error)
	ListByUser(ctx context.Context, userID string) ([]model.Application, error)
	Update(ctx context.Context, ref ApplicationRef, req *model.UpdateApplicationRequest) (*model.Application, error)
	Delete(ctx context.Context, ref ApplicationRef) (bool, error)
}

// ApplicationRef identifies one application within one user's collection.
type ApplicationRef struct {
	UserID string
	ID     string
}

// CacheRepository defines the interface for caching operations.
// This follows the hexagonal architecture pattern where the core defines
// interfaces and the data layer provides implementations.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}
