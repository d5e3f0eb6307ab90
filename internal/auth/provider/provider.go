package provider

import (
	"context"
	"errors"

	"presto-auth/internal/auth"
)

// ErrAuth indicates the provider rejected the exchange or returned
// unusable login data. It is fatal for the attempt; nothing has been
// mutated when it surfaces.
var ErrAuth = errors.New("provider: authentication failed")

// OAuthProvider defines the contract every external auth provider
// must implement. Implementations return identity facts and raw
// provider data only and must not perform user creation, linking,
// or session management.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "prestodoctor").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL.
	// State and PKCE parameters are provided by the caller; providers
	// that do not support PKCE ignore the challenge.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode exchanges the authorization code for provider
	// credentials and returns the login result with all data feeds
	// fetched. No auth decisions are made here.
	ExchangeCode(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (*auth.LoginResult, error)
}
