package provider

import (
	"context"

	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth"
)

// Token is the provider credential obtained from the code exchange.
type Token struct {
	AccessToken string
	Scope       string
}

// OAuthProvider defines the contract every external auth provider
// must implement. Implementations return identity facts only and
// must not perform account reconciliation or credential minting.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "ucl").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL.
	// The anti-forgery state token is provided by the caller.
	AuthCodeURL(state string) string

	// ExchangeCode exchanges the authorization code for an access token.
	// Failures are returned as typed auth flow errors.
	ExchangeCode(ctx context.Context, code string) (*Token, error)

	// FetchProfile retrieves the user's profile with the access token.
	FetchProfile(ctx context.Context, token *Token) (*auth.Profile, error)
}
