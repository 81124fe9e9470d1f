package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jobradar/jobradar-api/internal/core"
	"github.com/jobradar/jobradar-api/internal/data/pgxutil"
	"github.com/jobradar/jobradar-api/internal/domain/model"
)

// ApplicationRepo provides database operations for tracked applications.
//
// Every query is scoped to the owning user ID, so an application ID belonging
// to a different user behaves exactly like a missing ID. Handlers never need
// a separate ownership check.
type ApplicationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewApplicationRepo creates a new ApplicationRepo with real time provider.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewApplicationRepoWithTimeProvider creates a new ApplicationRepo with a custom time provider (useful for tests).
func NewApplicationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: tp}
}

// SQL query constants for static queries.
const (
	applicationInsertQuery = `
		INSERT INTO applications (user_id, company, role, job_id, status, notes, applied_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, company, role, job_id, status, notes, prediction_score, applied_date`

	applicationListByUserQuery = `
		SELECT id, user_id, company, role, job_id, status, notes, prediction_score, applied_date
		FROM applications
		WHERE user_id = $1
		ORDER BY applied_date DESC, id`
)

// Create inserts a new tracked application for the given user.
func (r *ApplicationRepo) Create(
	ctx context.Context,
	userID string,
	req *model.CreateApplicationRequest,
) (*model.Application, error) {
	if req == nil {
		return nil, errors.New("create application request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	appliedDate := r.timeProvider.Now().UTC()
	var out model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, applicationInsertQuery,
			userID,
			req.Company,
			req.Role,
			req.JobID,
			req.Status,
			req.Notes,
			appliedDate,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &out, nil
}

// ListByUser retrieves all applications owned by the given user, newest first.
func (r *ApplicationRepo) ListByUser(
	ctx context.Context,
	userID string,
) ([]model.Application, error) {
	var rowsOut []model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, applicationListByUserQuery, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return rowsOut, nil
}

// Update updates fields of an application owned by ref.UserID.
func (r *ApplicationRepo) Update(
	ctx context.Context,
	ref core.ApplicationRef,
	req *model.UpdateApplicationRequest,
) (*model.Application, error) {
	if req == nil {
		return nil, errors.New("update application request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)

	var out model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, ref.ID, ref.UserID)
		query := "UPDATE applications SET " + setClause +
			" WHERE id = $" + strconv.Itoa(len(args)-1) +
			" AND user_id = $" + strconv.Itoa(len(args)) +
			" RETURNING id, user_id, company, role, job_id, status, notes, prediction_score, applied_date"
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating an application.
func (r *ApplicationRepo) buildUpdateClause(req *model.UpdateApplicationRequest) (string, []any) {
	setParts := make([]string, 0, 2)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", nextIdx()))
		args = append(args, *req.Status)
	}
	if req.Notes != nil {
		setParts = append(setParts, fmt.Sprintf("notes = $%d", nextIdx()))
		args = append(args, *req.Notes)
	}

	return strings.Join(setParts, ", "), args
}

// Delete deletes an application owned by ref.UserID.
// Returns false when no row matched the (id, user_id) pair.
func (r *ApplicationRepo) Delete(ctx context.Context, ref core.ApplicationRef) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`DELETE FROM applications WHERE id = $1 AND user_id = $2`, ref.ID, ref.UserID)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete application: %w", err)
	}
	return rows > 0, nil
}
