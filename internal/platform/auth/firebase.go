package auth

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"
)

// idTokenVerifier is the part of *fbauth.Client the verifier needs.
type idTokenVerifier interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseVerifier accepts Firebase ID tokens, rejecting revoked ones and
// those of disabled accounts.
type FirebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier creates a verifier backed by client.
func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*User, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, firebaseError(err)
	}
	return userFromClaims(token.UID, token.Claims), nil
}

func firebaseError(err error) error {
	switch {
	case fbauth.IsCertificateFetchFailed(err):
		return ErrCertificateFetch
	case fbauth.IsIDTokenExpired(err):
		return ErrTokenExpired
	case fbauth.IsIDTokenRevoked(err):
		return ErrTokenRevoked
	case fbauth.IsUserDisabled(err):
		return ErrUserDisabled
	}
	return ErrInvalidToken
}

// userFromClaims reads the identity fields profile provisioning relies on.
func userFromClaims(uid string, claims map[string]any) *User {
	u := &User{UID: uid}
	u.Email, _ = claims["email"].(string)
	u.EmailVerified, _ = claims["email_verified"].(bool)
	return u
}

var _ Verifier = (*FirebaseVerifier)(nil)
