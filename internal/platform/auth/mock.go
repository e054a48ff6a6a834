package auth

import (
	"context"
)

// MockVerifier provides fake token verification for tests.
type MockVerifier struct {
	User  *User
	Error error
}

// Verify returns the configured user or error.
func (m *MockVerifier) Verify(_ context.Context, _ string) (*User, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.User, nil
}

// TokenVerifier maps literal tokens to users, so a single test router can
// serve several identities.
type TokenVerifier map[string]*User

// Verify looks the token up.
func (v TokenVerifier) Verify(_ context.Context, token string) (*User, error) {
	if u, ok := v[token]; ok {
		return u, nil
	}
	return nil, ErrInvalidToken
}

// TestUser returns a standard test user.
func TestUser() *User {
	return &User{
		UID:           "test-user-123",
		Email:         "test@example.com",
		EmailVerified: true,
	}
}

var (
	_ Verifier = (*MockVerifier)(nil)
	_ Verifier = TokenVerifier(nil)
)
