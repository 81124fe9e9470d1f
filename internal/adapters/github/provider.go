package github

// Package github implements the AuthProvider interface against GitHub's
// OAuth2 web application flow.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/jobradar/jobradar-api/internal/domain/auth"
	"github.com/jobradar/jobradar-api/internal/ports"
	"golang.org/x/oauth2"
)

const (
	defaultAPIBaseURL  = "https://api.github.com"
	defaultAuthBaseURL = "https://github.com"

	// GitHub OAuth tokens don't carry an expiry; sessions get this lifetime
	// unless the token response says otherwise.
	defaultIdentityTTL = time.Hour
)

// Provider implements the AuthProvider interface using GitHub OAuth2.
type Provider struct {
	config     *oauth2.Config
	apiBaseURL string
	httpClient *http.Client
}

// ProviderConfig holds configuration for the GitHub provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string
	// APIBaseURL and AuthBaseURL override GitHub endpoints; used in tests.
	APIBaseURL  string
	AuthBaseURL string
	HTTPClient  *http.Client // Optional, defaults to a client with a 30s timeout
}

// NewProvider creates a new GitHub OAuth provider.
func NewProvider(config ProviderConfig) (*Provider, error) {
	if config.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if config.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if config.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	apiBaseURL := strings.TrimSuffix(config.APIBaseURL, "/")
	if apiBaseURL == "" {
		apiBaseURL = defaultAPIBaseURL
	}
	authBaseURL := strings.TrimSuffix(config.AuthBaseURL, "/")
	if authBaseURL == "" {
		authBaseURL = defaultAuthBaseURL
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RedirectURL:  config.RedirectURL,
			Scopes:       strings.Fields(config.Scope),
			Endpoint: oauth2.Endpoint{
				AuthURL:  authBaseURL + "/login/oauth/authorize",
				TokenURL: authBaseURL + "/login/oauth/access_token",
			},
		},
		apiBaseURL: apiBaseURL,
		httpClient: httpClient,
	}, nil
}

// Begin starts the login flow and returns the GitHub authorize URL plus
// cryptographically secure state and nonce. GitHub's flow has no nonce
// parameter; the nonce only round-trips through our own cookies.
func (p *Provider) Begin(_ context.Context, in ports.BeginInput) (string, string, string, error) {
	if in.RedirectURL == "" {
		return "", "", "", errors.New("redirect URL is required")
	}

	state, err := generateRandomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := generateRandomString(32)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}

	authURL := p.config.AuthCodeURL(state)
	return authURL, state, nonce, nil
}

// Exchange completes the login flow: swaps the code for a token and fetches
// the authenticated user's profile.
func (p *Provider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if in.Code == "" {
		return domainauth.Identity{}, errors.New("authorization code is required")
	}
	if in.State == "" {
		return domainauth.Identity{}, errors.New("state is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.config.Exchange(ctx, in.Code)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("exchange code for token: %w", err)
	}

	user, err := p.fetchUser(ctx, token)
	if err != nil {
		return domainauth.Identity{}, err
	}

	email := user.Email
	if email == "" {
		// The /user email is only set when public; fall back to the
		// primary verified address from /user/emails.
		email, err = p.fetchPrimaryEmail(ctx, token)
		if err != nil {
			return domainauth.Identity{}, err
		}
	}

	expiresAt := time.Now().Add(defaultIdentityTTL)
	if !token.Expiry.IsZero() {
		expiresAt = token.Expiry
	}

	return domainauth.Identity{
		ExternalID: strconv.FormatInt(user.ID, 10),
		Username:   user.Login,
		Email:      email,
		AvatarURL:  user.AvatarURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// githubUser mirrors the fields we use from GET /user.
type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// githubEmail mirrors one entry of GET /user/emails.
type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (p *Provider) fetchUser(ctx context.Context, token *oauth2.Token) (*githubUser, error) {
	var user githubUser
	if err := p.apiGet(ctx, token, "/user", &user); err != nil {
		return nil, fmt.Errorf("fetch user profile: %w", err)
	}
	if user.ID == 0 || user.Login == "" {
		return nil, errors.New("github user response missing id or login")
	}
	return &user, nil
}

func (p *Provider) fetchPrimaryEmail(ctx context.Context, token *oauth2.Token) (string, error) {
	var emails []githubEmail
	if err := p.apiGet(ctx, token, "/user/emails", &emails); err != nil {
		// The user:email scope may not have been granted; an account
		// without a usable email is still a valid login.
		return "", nil
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, nil
		}
	}
	return "", nil
}

// apiGet performs an authenticated GET against the GitHub API and decodes the
// JSON response into out.
func (p *Provider) apiGet(ctx context.Context, token *oauth2.Token, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	token.SetAuthHeader(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github api request: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode github response: %w", err)
	}
	return nil
}

// generateRandomString generates a cryptographically secure URL-safe random string of exact length.
func generateRandomString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	nBytes := (length*3 + 3) / 4
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < length {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:length], nil
}
