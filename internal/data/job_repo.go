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

// JobRepo provides database operations for job postings.
type JobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobRepo creates a new JobRepo with real time provider.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobRepoWithTimeProvider creates a new JobRepo with a custom time provider (useful for tests).
func NewJobRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobRepo {
	return &JobRepo{DB: db, timeProvider: tp}
}

// SQL query constants for static queries.
const (
	jobInsertQuery = `
		INSERT INTO jobs (
			title, company, location, description, apply_link, source, posted_date, scraped_at, tags
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (apply_link) DO NOTHING
		RETURNING id, title, company, location, description, apply_link, source,
		          posted_date, scraped_at, tags, created_at`

	jobGetByApplyLinkQuery = `
		SELECT id, title, company, location, description, apply_link, source,
		       posted_date, scraped_at, tags, created_at
		FROM jobs
		WHERE apply_link = $1`

	// NULLS LAST keeps undated postings at the tail; scraped_at and id break
	// ties so the ordering is stable across requests.
	jobListRecentQuery = `
		SELECT id, title, company, location, description, apply_link, source,
		       posted_date, scraped_at, tags, created_at
		FROM jobs
		ORDER BY posted_date DESC NULLS LAST, scraped_at DESC, id
		LIMIT $1`
)

// Insert stores a job posting. Postings are deduplicated on apply_link: when a
// posting with the same link already exists, the existing row is returned with
// created=false. The INSERT ... ON CONFLICT DO NOTHING makes the decision
// atomic under concurrent submissions of the same link.
func (r *JobRepo) Insert(
	ctx context.Context,
	req *model.CreateJobRequest,
) (*model.Job, bool, error) {
	if req == nil {
		return nil, false, errors.New("create job request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	scrapedAt := r.timeProvider.Now().UTC()
	if req.ScrapedAt != nil {
		scrapedAt = req.ScrapedAt.UTC()
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	var out model.Job
	inserted := true
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, jobInsertQuery,
			req.Title,
			req.Company,
			req.Location,
			req.Description,
			req.ApplyLink,
			req.Source,
			req.PostedDate,
			scrapedAt,
			tags,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict: DO NOTHING returned no row, the posting already exists.
			inserted = false
			return nil
		}
		return err
	}); err != nil {
		return nil, false, fmt.Errorf("failed to insert job: %w", err)
	}

	if !inserted {
		existing, err := r.GetByApplyLink(ctx, req.ApplyLink)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return &out, true, nil
}

// GetByApplyLink retrieves a job posting by its apply link.
func (r *JobRepo) GetByApplyLink(ctx context.Context, applyLink string) (*model.Job, error) {
	var job model.Job
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, jobGetByApplyLinkQuery, applyLink)
		if err != nil {
			return err
		}
		defer rows.Close()
		job, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Job])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job by apply link: %w", err)
	}
	return &job, nil
}

// ListRecent retrieves up to limit postings ordered by posted date, newest first.
func (r *JobRepo) ListRecent(ctx context.Context, limit int) ([]model.Job, error) {
	if limit <= 0 {
		limit = 50
	}

	var rowsOut []model.Job
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, jobListRecentQuery, limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Job])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list recent jobs: %w", err)
	}
	return rowsOut, nil
}
