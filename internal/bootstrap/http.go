package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jobradar/jobradar-api/config"
	httpx "github.com/jobradar/jobradar-api/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Jobs:               cfg.Services.Jobs,
		Applications:       cfg.Services.Applications,
		Users:              cfg.Services.Users,
		Auth:               cfg.Services.Auth,
		Analysis:           analysisOrNil(cfg.Services),
		CookieDomain:       appCfg.HTTP.CookieDomain,
		ClientURL:          appCfg.HTTP.ClientURL,
		CallbackURL:        callbackURLFor(appCfg.Auth),
		CompressionEnabled: appCfg.HTTP.CompressionEnabled,
		CompressionLevel:   appCfg.HTTP.CompressionLevel,
		Logger:             logger,
	})

	return startServer(logger, handler, appCfg.HTTP.Addr)
}

// callbackURLFor picks the OAuth redirect URL for the active auth mode.
func callbackURLFor(cfg config.AuthConfig) string {
	if cfg.Mode == config.AuthModeOIDC {
		return cfg.OIDC.RedirectURL
	}
	return cfg.GitHub.RedirectURL
}

// analysisOrNil avoids a typed-nil interface when analysis is unconfigured.
func analysisOrNil(svcs ServiceContainer) httpx.AnalysisServiceInterface {
	if svcs.Analysis == nil {
		return nil
	}
	return svcs.Analysis
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}

	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}

	return nil
}
