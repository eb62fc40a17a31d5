package authenticator

import (
	"context"
	"errors"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/fysikteknologsektionen/ftek-login/models"
)

// DefaultScopes are requested when the configuration names none
var DefaultScopes = []string{oidc.ScopeOpenID, "email", "profile"}

// Config holds the OpenID client configuration for one login attempt
type Config struct {
	DiscoveryURL string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Validate checks that the required settings are present
func (c Config) Validate() error {
	if c.DiscoveryURL == "" {
		return errors.New("discovery URL is required")
	}
	if c.ClientID == "" {
		return errors.New("client ID is required")
	}
	if c.ClientSecret == "" {
		return errors.New("client secret is required")
	}
	if c.RedirectURL == "" {
		return errors.New("redirect URL is required")
	}
	return nil
}

// DiscoveryDocument is the subset of the provider metadata the client uses
type DiscoveryDocument struct {
	Issuer                string `json:"issuer"`
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserInfoEndpoint      string `json:"userinfo_endpoint"`
	JWKSURI               string `json:"jwks_uri"`
}

// Token represents the tokens returned by the token endpoint
type Token struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       int64
}

// Provider abstracts the calls made against the identity provider.
// A Provider holds the token of a single login or refresh and must not be
// shared between users.
type Provider interface {
	AuthorizationURL(ctx context.Context, state, nonce string) (string, error)
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	ExchangeRefreshToken(ctx context.Context, refreshToken string) (*Token, error)
	VerifyNonce(ctx context.Context, expected string) error
	FetchUserInfo(ctx context.Context) (*models.Identity, error)
	CurrentRefreshToken() string
}
