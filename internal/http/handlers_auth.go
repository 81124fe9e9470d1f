package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/jobradar/jobradar-api/internal/domain/auth"
	"github.com/jobradar/jobradar-api/internal/service"
)

type domainSession = domainauth.Session

const (
	sessionCookieName      = "session_id"
	oauthStateCookieName   = "oauth_state"
	oauthNonceCookieName   = "oauth_nonce"
	postLoginRedirectName  = "post_login_redirect"
	oauthCookieMaxAge      = 600 // seconds; bounds how long a login attempt stays valid
	defaultPostLoginTarget = "/dashboard"
)

// AuthServiceInterface defines the authentication operations handlers need.
type AuthServiceInterface interface {
	BeginLogin(ctx context.Context, redirectURL string) (*service.BeginLoginResult, error)
	CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers bundles the OAuth login, callback, logout, and current-user endpoints.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieDomain string
	// ClientURL is the frontend base URL the callback redirects to.
	ClientURL   string
	CallbackURL string
	Logger      *slog.Logger
}

// Login starts the OAuth flow: it asks the provider for an authorization URL
// and parks state/nonce in short-lived cookies for the callback to verify.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.BeginLogin(r.Context(), h.CallbackURL)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "begin login failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "login_failed",
			Err:     errors.New("failed to start login"),
		})
		return
	}

	secure := isSecureRequest(r)
	h.setOAuthCookie(w, oauthStateCookieName, result.State, secure)
	if result.Nonce != "" {
		h.setOAuthCookie(w, oauthNonceCookieName, result.Nonce, secure)
	}
	if target := safeRedirectPath(r.URL.Query().Get("redirect_uri")); target != "" {
		h.setOAuthCookie(w, postLoginRedirectName, target, secure)
	}

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// Callback completes the OAuth flow. The state query parameter must match the
// oauth_state cookie set by Login before the code is exchanged.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_callback",
			Err:     errors.New("missing code or state parameter"),
		})
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "state_mismatch",
			Err:     errors.New("state parameter does not match"),
		})
		return
	}

	var nonce string
	if nonceCookie, cookieErr := r.Cookie(oauthNonceCookieName); cookieErr == nil {
		nonce = nonceCookie.Value
	}

	result, err := h.Svc.CompleteLogin(r.Context(), service.CompleteLoginInput{
		Code:  code,
		State: state,
		Nonce: nonce,
	})
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "complete login failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "login_failed",
			Err:     errors.New("authentication failed"),
		})
		return
	}

	secure := isSecureRequest(r)
	h.setSessionCookie(w, result.Session, secure)
	h.clearCookie(w, oauthStateCookieName, secure)
	h.clearCookie(w, oauthNonceCookieName, secure)

	target := h.ClientURL + defaultPostLoginTarget
	if redirectCookie, cookieErr := r.Cookie(postLoginRedirectName); cookieErr == nil {
		if p := safeRedirectPath(redirectCookie.Value); p != "" {
			target = h.ClientURL + p
		}
		h.clearCookie(w, postLoginRedirectName, secure)
	}

	http.Redirect(w, r, target, http.StatusFound)
}

// Logout destroys the server-side session and clears the session cookie.
// Logging out without a session is not an error.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.Logger.ErrorContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearCookie(w, sessionCookieName, isSecureRequest(r))
	WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// currentUserResponse is the wire shape for GET /auth/user.
type currentUserResponse struct {
	Authenticated bool                 `json:"authenticated"`
	User          *currentUserIdentity `json:"user,omitempty"`
}

type currentUserIdentity struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// CurrentUser reports the session identity. Anonymous requests get a 200 with
// authenticated=false rather than a 401 so the frontend can poll it freely.
func (h *AuthHandlers) CurrentUser(w http.ResponseWriter, r *http.Request) {
	session := getSessionFromRequest(r, h.Svc)
	if session == nil {
		WriteJSON(w, http.StatusOK, currentUserResponse{Authenticated: false})
		return
	}

	WriteJSON(w, http.StatusOK, currentUserResponse{
		Authenticated: true,
		User: &currentUserIdentity{
			ID:        session.UserID,
			Username:  session.Username,
			Email:     session.Email,
			AvatarURL: session.AvatarURL,
		},
	})
}

func (h *AuthHandlers) setOAuthCookie(w http.ResponseWriter, name, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   oauthCookieMaxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, session domainauth.Session, secure bool) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = oauthCookieMaxAge
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// isSecureRequest reports whether the request arrived over TLS, directly or
// via a terminating proxy.
func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// safeRedirectPath accepts only same-site relative paths for post-login
// redirects; anything absolute or scheme-relative is an open-redirect risk.
func safeRedirectPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	return u.String()
}
