package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeGitHub uses GitHub OAuth for authentication.
	AuthModeGitHub AuthMode = "github"
	// AuthModeOIDC uses a generic OIDC provider for authentication.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "github", "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: github, oidc, mock)", v)
	}
}

// GitHubOAuthConfig contains GitHub OAuth configuration.
type GitHubOAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:8080/auth/github/callback"`
	Scope        string `env:"SCOPE"        envDefault:"read:user user:email"`
	// APIBaseURL overrides the GitHub API endpoint; used in tests.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"https://api.github.com"`
	// AuthBaseURL overrides the GitHub OAuth endpoint; used in tests.
	AuthBaseURL string `env:"AUTH_BASE_URL" envDefault:"https://github.com"`
}

// OIDCConfig contains generic OIDC configuration (used when Mode=oidc).
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/github/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	GitHubID  string `env:"GITHUB_ID"  envDefault:"0"`
	Username  string `env:"USERNAME"   envDefault:"dev-user"`
	Email     string `env:"EMAIL"      envDefault:"dev@example.com"`
	AvatarURL string `env:"AVATAR_URL" envDefault:""`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"github"`

	// GitHub configuration (used when Mode=github).
	GitHub GitHubOAuthConfig `envPrefix:"GITHUB_"`

	// OIDC configuration (used when Mode=oidc).
	OIDC OIDCConfig `envPrefix:"OIDC_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL is how long a login session stays valid.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}
