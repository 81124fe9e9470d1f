package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jobradar/jobradar-api/internal/data/pgxutil"
	"github.com/jobradar/jobradar-api/internal/domain/model"
)

// UserRepo provides database operations for user accounts.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// SQL query constants for static queries.
const (
	// The upsert refreshes profile fields on every login; concurrent first
	// logins for the same GitHub identity collapse to one row.
	userUpsertQuery = `
		INSERT INTO users (github_id, username, email, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (github_id) DO UPDATE SET
			username   = EXCLUDED.username,
			email      = EXCLUDED.email,
			avatar_url = EXCLUDED.avatar_url
		RETURNING id, github_id, username, email, avatar_url, resume_text,
		          resume_uploaded_at, created_at`

	userGetByIDQuery = `
		SELECT id, github_id, username, email, avatar_url, resume_text,
		       resume_uploaded_at, created_at
		FROM users
		WHERE id = $1`

	userUpdateResumeQuery = `
		UPDATE users
		SET resume_text = $2, resume_uploaded_at = $3
		WHERE id = $1
		RETURNING id, github_id, username, email, avatar_url, resume_text,
		          resume_uploaded_at, created_at`
)

// Upsert creates the user on first login or refreshes profile fields on
// subsequent logins, keyed by the external GitHub ID.
func (r *UserRepo) Upsert(ctx context.Context, req *model.UpsertUserRequest) (*model.User, error) {
	if req == nil {
		return nil, errors.New("upsert user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userUpsertQuery,
			req.GitHubID,
			req.Username,
			req.Email,
			req.AvatarURL,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a user by internal ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

// UpdateResume replaces the stored resume text and stamps the upload time.
func (r *UserRepo) UpdateResume(
	ctx context.Context,
	userID, resumeText string,
) (*model.User, error) {
	uploadedAt := r.timeProvider.Now().UTC()

	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userUpdateResumeQuery, userID, resumeText, uploadedAt)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return &out, nil
}
