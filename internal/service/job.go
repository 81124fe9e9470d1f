package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jobradar/jobradar-api/internal/core"
	"github.com/jobradar/jobradar-api/internal/domain/model"
	apperrors "github.com/jobradar/jobradar-api/internal/errors"
	"golang.org/x/net/publicsuffix"
)

// JobServiceOptions groups dependencies for JobService.
type JobServiceOptions struct {
	Repo    core.JobRepository    // Required: job repository
	Listing *core.JobListingCache // Optional: read-through cache for the recent listing
	Logger  *slog.Logger          // Optional: structured logger
}

// JobService provides business logic for job postings: the public listing,
// deduplicated submission from the scraper, and listing cache invalidation.
type JobService struct {
	repo    core.JobRepository
	listing *core.JobListingCache
	logger  *slog.Logger
}

// NewJobService constructs a new JobService.
func NewJobService(opts JobServiceOptions) (*JobService, error) {
	if opts.Repo == nil {
		return nil, errors.New("JobRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{
		repo:    opts.Repo,
		listing: opts.Listing,
		logger:  logger,
	}, nil
}

// List returns the recent-jobs listing, served through the listing cache when
// one is configured.
func (s *JobService) List(ctx context.Context) ([]model.Job, error) {
	if s.listing != nil {
		return s.listing.GetListing(ctx)
	}
	jobs, err := s.repo.ListRecent(ctx, 0)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	if jobs == nil {
		jobs = []model.Job{}
	}
	return jobs, nil
}

// Submit stores a job posting, deduplicating on the apply link. It returns
// the stored posting and created=true when this submission inserted it, or
// the pre-existing posting and created=false when the apply link was already
// known. The listing cache is only invalidated by an actual insert.
func (s *JobService) Submit(ctx context.Context, req *model.CreateJobRequest) (*model.Job, bool, error) {
	if req == nil {
		return nil, false, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, false, apperrors.Validation(err.Error())
	}

	// Scrapers usually omit the source; derive it from the apply link so the
	// listing can still say where a posting came from.
	if req.Source == nil || strings.TrimSpace(*req.Source) == "" {
		if src := sourceFromApplyLink(req.ApplyLink); src != "" {
			req.Source = &src
		}
	}

	job, created, err := s.repo.Insert(ctx, req)
	if err != nil {
		return nil, false, apperrors.MapDBError(fmt.Errorf("insert job: %w", err))
	}

	if created {
		if s.listing != nil {
			s.listing.InvalidateListing(ctx)
		}
		s.logger.InfoContext(ctx, "job posting stored", "job_id", job.ID, "company", job.Company)
	} else {
		s.logger.DebugContext(ctx, "duplicate job submission", "job_id", job.ID, "apply_link", job.ApplyLink)
	}

	return job, created, nil
}

// sourceFromApplyLink derives a source label from the apply link host,
// reduced to its registrable domain (eTLD+1) so "boards.greenhouse.io" and
// "greenhouse.io" read as the same source.
func sourceFromApplyLink(applyLink string) string {
	u, err := url.Parse(applyLink)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ""
	}
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return etld
	}
	// Hosts without a public suffix (e.g. "localhost") fall back unchanged.
	return host
}
