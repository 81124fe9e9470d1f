package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jobradar/jobradar-api/config"
	"github.com/jobradar/jobradar-api/internal/adapters/ats"
	"github.com/jobradar/jobradar-api/internal/core"
	"github.com/jobradar/jobradar-api/internal/data"
	"github.com/jobradar/jobradar-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Users        *service.UserService
	Auth         *service.AuthService
	// Analysis is nil when no analysis service is configured; the router
	// skips the analyze route in that case.
	Analysis *service.AnalysisService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories, caches, and adapters into the service layer.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	jobRepo := data.NewJobRepo(deps.DB)
	userRepo := data.NewUserRepo(deps.DB)
	applicationRepo := data.NewApplicationRepo(deps.DB)

	var listing *core.JobListingCache
	if deps.RedisClient != nil {
		listing = core.NewJobListingCache(core.JobListingCacheOptions{
			Cache: data.NewRedisCacheRepo(deps.RedisClient),
			Jobs:  jobRepo,
			Config: core.JobListingCacheConfig{
				TTL:         cfg.Cache.JobsTTL,
				Limit:       cfg.Cache.JobsLimit,
				ReadTimeout: cfg.Cache.ReadTimeout,
			},
			Logger: logger,
		})
	}

	jobService, err := service.NewJobService(service.JobServiceOptions{
		Repo:    jobRepo,
		Listing: listing,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build job service: %w", err)
	}

	applicationService, err := service.NewApplicationService(service.ApplicationServiceOptions{
		Repo: applicationRepo,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build application service: %w", err)
	}

	userService, err := service.NewUserService(service.UserServiceOptions{Repo: userRepo})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build user service: %w", err)
	}

	authService, err := BuildAuthService(AuthDeps{
		Auth:        cfg.Auth,
		Users:       userRepo,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth service: %w", err)
	}

	analysisService, err := buildAnalysisService(cfg.ATS, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Jobs:         jobService,
		Applications: applicationService,
		Users:        userService,
		Auth:         authService,
		Analysis:     analysisService,
	}, nil
}

func buildAnalysisService(cfg config.ATSConfig, logger *slog.Logger) (*service.AnalysisService, error) {
	if !cfg.Enabled() {
		logger.Info("resume analysis disabled; no ATS base URL configured")
		return nil, nil
	}

	client, err := ats.NewClient(ats.ClientConfig{
		BaseURL:             cfg.BaseURL,
		AnalyzePath:         cfg.AnalyzePath,
		Timeout:             cfg.Timeout,
		ProbabilityExpr:     cfg.ProbabilityExpr,
		ScoreExpr:           cfg.ScoreExpr,
		MissingKeywordsExpr: cfg.MissingKeywordsExpr,
		SuggestionsExpr:     cfg.SuggestionsExpr,
	})
	if err != nil {
		return nil, fmt.Errorf("build ats client: %w", err)
	}

	analysisService, err := service.NewAnalysisService(service.AnalysisServiceOptions{Analyzer: client})
	if err != nil {
		return nil, fmt.Errorf("build analysis service: %w", err)
	}

	logger.Info("resume analysis enabled", "base_url", cfg.BaseURL)
	return analysisService, nil
}
