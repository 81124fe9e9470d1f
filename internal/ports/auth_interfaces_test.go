package ports_test

import (
	"testing"

	mocks "github.com/jobradar/jobradar-api/internal/mocks/auth"
	"github.com/jobradar/jobradar-api/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.AuthProvider = (*mocks.MockAuthProvider)(nil)
	var _ ports.SessionStore = (*mocks.MemorySessionStore)(nil)
}
