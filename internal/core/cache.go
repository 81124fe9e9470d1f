package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jobradar/jobradar-api/internal/domain/model"
	"golang.org/x/sync/singleflight"
)

// listingCacheKey is the single key under which the recent-jobs listing is cached.
const listingCacheKey = "jobs:latest"

// JobListingCache is a read-through cache in front of the recent-jobs query.
// Reads serve from the cache when possible and fall back to the job
// repository; writes to the jobs table invalidate the cached listing.
//
// The cache backend is treated as an optimization, never a dependency: any
// cache error is logged and handled as a miss, and the listing is served
// from the repository. Concurrent misses are collapsed through singleflight
// so a cold or failing cache produces one repository query, not a stampede.
type JobListingCache struct {
	cache       CacheRepository
	jobs        JobRepository
	ttl         time.Duration
	limit       int
	readTimeout time.Duration
	logger      *slog.Logger
	group       singleflight.Group
}

// JobListingCacheConfig holds tuning knobs for the listing cache.
type JobListingCacheConfig struct {
	// TTL bounds staleness when an invalidation is missed.
	TTL time.Duration `json:"ttl"`
	// Limit is the number of postings materialized into the cached listing.
	Limit int `json:"limit"`
	// ReadTimeout bounds each cache round-trip so a slow backend cannot
	// stall listing requests.
	ReadTimeout time.Duration `json:"read_timeout"`
}

// DefaultJobListingCacheConfig returns a JobListingCacheConfig with sensible defaults.
func DefaultJobListingCacheConfig() JobListingCacheConfig {
	return JobListingCacheConfig{
		TTL:         time.Hour,
		Limit:       50,
		ReadTimeout: 250 * time.Millisecond,
	}
}

// JobListingCacheOptions bundles dependencies for NewJobListingCache.
type JobListingCacheOptions struct {
	Cache  CacheRepository
	Jobs   JobRepository
	Config JobListingCacheConfig
	Logger *slog.Logger
}

// NewJobListingCache creates a new JobListingCache.
func NewJobListingCache(opts JobListingCacheOptions) *JobListingCache {
	cfg := opts.Config
	defaults := DefaultJobListingCacheConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = defaults.TTL
	}
	if cfg.Limit <= 0 {
		cfg.Limit = defaults.Limit
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &JobListingCache{
		cache:       opts.Cache,
		jobs:        opts.Jobs,
		ttl:         cfg.TTL,
		limit:       cfg.Limit,
		readTimeout: cfg.ReadTimeout,
		logger:      logger,
	}
}

// cachedListing is the serialized shape stored under the listing key.
type cachedListing struct {
	Jobs     []model.Job `json:"jobs"`
	CachedAt time.Time   `json:"cached_at"`
}

// GetListing returns the recent-jobs listing, serving from the cache when a
// valid entry exists and falling back to the repository otherwise.
func (c *JobListingCache) GetListing(ctx context.Context) ([]model.Job, error) {
	if entry, ok := c.readCached(ctx); ok {
		return entry, nil
	}

	// Miss (or unusable cache): collapse concurrent callers onto one query.
	v, err, _ := c.group.Do(listingCacheKey, func() (any, error) {
		jobs, listErr := c.jobs.ListRecent(ctx, c.limit)
		if listErr != nil {
			return nil, fmt.Errorf("list recent jobs: %w", listErr)
		}
		if jobs == nil {
			jobs = []model.Job{}
		}
		c.writeCached(ctx, jobs)
		return jobs, nil
	})
	if err != nil {
		return nil, err
	}

	jobs, ok := v.([]model.Job)
	if !ok {
		return nil, fmt.Errorf("unexpected listing type %T", v)
	}
	return jobs, nil
}

// InvalidateListing drops the cached listing. Invalidation failures are
// logged but never surfaced: the TTL bounds staleness, and failing the
// write that triggered the invalidation would be worse than serving a
// briefly stale listing.
func (c *JobListingCache) InvalidateListing(ctx context.Context) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.readTimeout)
	defer cancel()

	if _, err := c.cache.Delete(cctx, listingCacheKey); err != nil {
		c.logger.WarnContext(ctx, "listing cache invalidation failed", "key", listingCacheKey, "error", err)
	}
}

// readCached attempts a cache read, treating every failure mode as a miss.
func (c *JobListingCache) readCached(ctx context.Context) ([]model.Job, bool) {
	cctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	data, err := c.cache.Get(cctx, listingCacheKey)
	if err != nil {
		c.logger.WarnContext(ctx, "listing cache read failed, serving from store", "error", err)
		return nil, false
	}
	if data == nil {
		return nil, false
	}

	var entry cachedListing
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.WarnContext(ctx, "listing cache entry corrupt, serving from store", "error", err)
		return nil, false
	}
	if entry.Jobs == nil {
		entry.Jobs = []model.Job{}
	}
	return entry.Jobs, true
}

// writeCached stores the listing best-effort; a failed write only costs the
// next reader a repository query.
func (c *JobListingCache) writeCached(ctx context.Context, jobs []model.Job) {
	data, err := json.Marshal(cachedListing{Jobs: jobs, CachedAt: time.Now().UTC()})
	if err != nil {
		c.logger.WarnContext(ctx, "listing cache marshal failed", "error", err)
		return
	}

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.readTimeout)
	defer cancel()

	if err := c.cache.Set(cctx, listingCacheKey, data, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "listing cache write failed", "error", err)
	}
}
