package httpx

import (
	"log/slog"
	"net/http"
)

// RouterServices bundles the services and settings the router needs.
type RouterServices struct {
	Jobs         JobServiceInterface
	Applications ApplicationServiceInterface
	Users        UserServiceInterface
	Analysis     AnalysisServiceInterface // optional; analysis routes are skipped when nil
	Auth         AuthServiceInterface
	CookieDomain string
	ClientURL    string
	CallbackURL  string

	// CompressionEnabled turns on gzip for JSON responses; CompressionLevel
	// is the gzip level (1-9).
	CompressionEnabled bool
	CompressionLevel   int

	Logger *slog.Logger
}

// NewRouter builds the HTTP mux with all routes and middleware applied.
func NewRouter(svcs RouterServices) http.Handler {
	logger := svcs.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	registerAuthRoutes(mux, svcs, logger)
	registerJobRoutes(mux, svcs)
	registerApplicationRoutes(mux, svcs)
	registerUserRoutes(mux, svcs)
	registerAnalysisRoutes(mux, svcs)

	// Middleware chain, outermost first.
	var handler http.Handler = mux
	if svcs.CompressionEnabled {
		handler = Compression(CompressionConfig{Level: svcs.CompressionLevel, Logger: logger})(handler)
	}
	if svcs.ClientURL != "" {
		handler = CORS(CORSConfig{AllowedOrigin: svcs.ClientURL})(handler)
	}
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)

	return handler
}

func registerAuthRoutes(mux *http.ServeMux, svcs RouterServices, logger *slog.Logger) {
	h := &AuthHandlers{
		Svc:          svcs.Auth,
		CookieDomain: svcs.CookieDomain,
		ClientURL:    svcs.ClientURL,
		CallbackURL:  svcs.CallbackURL,
		Logger:       logger,
	}

	mux.HandleFunc("GET /auth/github", h.Login)
	mux.HandleFunc("GET /auth/github/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/user", h.CurrentUser)
}

func registerJobRoutes(mux *http.ServeMux, svcs RouterServices) {
	h := &JobHandlers{Svc: svcs.Jobs}

	// The listing is public; submission comes from the scraper pipeline.
	mux.HandleFunc("GET /api/jobs", h.List)
	mux.HandleFunc("POST /api/jobs", h.Submit)
}

func registerApplicationRoutes(mux *http.ServeMux, svcs RouterServices) {
	h := &ApplicationHandlers{Svc: svcs.Applications}
	auth := RequireAuth(svcs.Auth)

	mux.Handle("GET /api/applications", auth(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/applications", auth(http.HandlerFunc(h.Create)))
	mux.Handle("PATCH /api/applications/{id}", auth(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/applications/{id}", auth(http.HandlerFunc(h.Delete)))
}

func registerUserRoutes(mux *http.ServeMux, svcs RouterServices) {
	h := &UserHandlers{Svc: svcs.Users}
	auth := RequireAuth(svcs.Auth)

	mux.Handle("GET /api/user/profile", auth(http.HandlerFunc(h.Profile)))
	mux.Handle("POST /api/user/resume", auth(http.HandlerFunc(h.UpdateResume)))
}

func registerAnalysisRoutes(mux *http.ServeMux, svcs RouterServices) {
	if svcs.Analysis == nil {
		return
	}
	h := &AnalysisHandlers{Svc: svcs.Analysis}
	auth := RequireAuth(svcs.Auth)

	mux.Handle("POST /api/ats/analyze", auth(http.HandlerFunc(h.Analyze)))
}
