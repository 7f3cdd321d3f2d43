// Package identity verifies ID tokens minted by the external identity
// provider. It is the trust boundary between the provider's accounts and the
// application's local users.
package identity

import (
	"context"
	"errors"
)

var (
	ErrTokenInvalid       = errors.New("identity token invalid")
	ErrTokenExpired       = errors.New("identity token expired")
	ErrServiceUnavailable = errors.New("identity provider unavailable")
)

// Claims are the provider-attested facts extracted from a verified ID token.
type Claims struct {
	UID           string
	Email         string
	EmailVerified bool
	PhoneNumber   string
	Name          string
}

// Verifier checks a provider-issued ID token and returns its claims. Callers
// must treat any returned error as verification failure; there is no partial
// trust.
type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Claims, error)

	// Healthy reports whether the verifier can currently validate tokens,
	// for the health endpoint.
	Healthy(ctx context.Context) bool
}
