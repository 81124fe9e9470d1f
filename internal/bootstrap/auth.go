package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/jobradar/jobradar-api/config"
	"github.com/jobradar/jobradar-api/internal/adapters/devauth"
	"github.com/jobradar/jobradar-api/internal/adapters/github"
	"github.com/jobradar/jobradar-api/internal/adapters/oidc"
	redisadapter "github.com/jobradar/jobradar-api/internal/adapters/redis"
	"github.com/jobradar/jobradar-api/internal/core"
	"github.com/jobradar/jobradar-api/internal/ports"
	"github.com/jobradar/jobradar-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// AuthDeps groups dependencies for building the auth service.
type AuthDeps struct {
	Auth        config.AuthConfig
	Users       core.UserRepository
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService creates the auth service for the configured auth mode.
// Sessions always live in Redis so logins survive API restarts.
func BuildAuthService(deps AuthDeps) (*service.AuthService, error) {
	if deps.RedisClient == nil {
		return nil, fmt.Errorf("auth mode %q requires a redis client for sessions", deps.Auth.Mode)
	}

	provider, err := buildAuthProvider(deps.Auth, deps.Logger)
	if err != nil {
		return nil, err
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(deps.RedisClient, "session:")

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:   provider,
		Sessions:   sessionStore,
		Users:      deps.Users,
		SessionTTL: deps.Auth.SessionTTL,
	}), nil
}

//nolint:ireturn // the provider is chosen at runtime from configuration.
func buildAuthProvider(cfg config.AuthConfig, logger *slog.Logger) (ports.AuthProvider, error) {
	switch cfg.Mode {
	case config.AuthModeGitHub:
		provider, err := github.NewProvider(github.ProviderConfig{
			ClientID:     cfg.GitHub.ClientID,
			ClientSecret: cfg.GitHub.ClientSecret,
			RedirectURL:  cfg.GitHub.RedirectURL,
			Scope:        cfg.GitHub.Scope,
			APIBaseURL:   cfg.GitHub.APIBaseURL,
			AuthBaseURL:  cfg.GitHub.AuthBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("configure github provider: %w", err)
		}
		return provider, nil

	case config.AuthModeOIDC:
		provider, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			RedirectURL:  cfg.OIDC.RedirectURL,
			Scope:        cfg.OIDC.Scope,
			DiscoveryURL: cfg.OIDC.DiscoveryURL,
		})
		if err != nil {
			return nil, fmt.Errorf("configure oidc provider: %w", err)
		}
		return provider, nil

	case config.AuthModeMock:
		if logger != nil {
			logger.Warn("mock auth enabled; all logins resolve to the configured dev identity")
		}
		provider, err := devauth.NewProvider(devauth.Config{
			GitHubID:  cfg.DevAuth.GitHubID,
			Username:  cfg.DevAuth.Username,
			Email:     cfg.DevAuth.Email,
			AvatarURL: cfg.DevAuth.AvatarURL,
		})
		if err != nil {
			return nil, fmt.Errorf("configure dev auth provider: %w", err)
		}
		return provider, nil

	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Mode)
	}
}
