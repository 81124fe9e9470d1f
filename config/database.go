package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"jobradar"`
	Password string `env:"PASSWORD"                envDefault:"jobradar"`
	Name     string `env:"NAME"                    envDefault:"jobradar"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelPort       string   `env:"SENTINEL_PORT"        envDefault:"26379"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// CacheConfig contains job-listing cache configuration (Redis-based).
type CacheConfig struct {
	// JobsTTL bounds staleness of the cached job listing.
	JobsTTL time.Duration `env:"CACHE_JOBS_TTL" envDefault:"1h"`

	// JobsLimit is the number of postings materialized into the cached listing.
	JobsLimit int `env:"CACHE_JOBS_LIMIT" envDefault:"50"`

	// ReadTimeout bounds each cache round-trip so a slow Redis cannot stall
	// listing requests.
	ReadTimeout time.Duration `env:"CACHE_READ_TIMEOUT" envDefault:"250ms"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.JobsTTL <= 0 {
		c.JobsTTL = time.Hour
	}
	if c.JobsLimit <= 0 {
		c.JobsLimit = 50
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 250 * time.Millisecond
	}
}
