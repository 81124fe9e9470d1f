package devauth

import (
	"context"
	"strings"
	"testing"

	"github.com/jobradar/jobradar-api/internal/ports"
)

func TestProvider_BeginAndExchange(t *testing.T) {
	prov, err := NewProvider(Config{GitHubID: "0", Username: "dev-user", Email: "dev@example.com"})
	if err != nil {
		t.Fatalf("NewProvider error: %v", err)
	}
	url, state, nonce, err := prov.Begin(context.Background(), ports.BeginInput{RedirectURL: "/"})
	if err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	if !strings.HasPrefix(url, "/auth/github/callback?") {
		t.Fatalf("unexpected authURL: %s", url)
	}
	if state == "" || nonce == "" {
		t.Fatal("state and nonce should be generated")
	}
	id, err := prov.Exchange(context.Background(), ports.ExchangeInput{Code: "dev", State: state, Nonce: nonce})
	if err != nil {
		t.Fatalf("Exchange error: %v", err)
	}
	if id.ExternalID != "0" || id.Username != "dev-user" || id.Email != "dev@example.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestNewProvider_RequiresIdentity(t *testing.T) {
	if _, err := NewProvider(Config{Username: "dev-user"}); err == nil {
		t.Fatal("expected error when GitHubID is missing")
	}
	if _, err := NewProvider(Config{GitHubID: "0"}); err == nil {
		t.Fatal("expected error when Username is missing")
	}
}
