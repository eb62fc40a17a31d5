package authenticator

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/fysikteknologsektionen/ftek-login/models"
)

// Client implements the Provider interface for OpenID Connect
type Client struct {
	cfg        Config
	resolver   *Resolver
	httpClient *http.Client
	logger     *logrus.Logger

	provider *oidc.Provider
	token    *oauth2.Token
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every provider request
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithResolver shares a discovery resolver between clients
func WithResolver(r *Resolver) Option {
	return func(c *Client) {
		c.resolver = r
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new OpenID Connect client with the given configuration
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:        cfg,
		httpClient: http.DefaultClient,
		logger:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.resolver == nil {
		c.resolver = NewResolver(cfg.DiscoveryURL, c.httpClient)
	}
	return c, nil
}

var _ Provider = (*Client)(nil)

func (c *Client) oauthConfig(ctx context.Context) (*oauth2.Config, error) {
	doc, err := c.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	scopes := c.cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURL:  c.cfg.RedirectURL,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   doc.AuthorizationEndpoint,
			TokenURL:  doc.TokenEndpoint,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}, nil
}

func (c *Client) oidcProvider(ctx context.Context) (*oidc.Provider, *DiscoveryDocument, error) {
	doc, err := c.resolver.Resolve(ctx)
	if err != nil {
		return nil, nil, err
	}

	if c.provider == nil {
		pc := &oidc.ProviderConfig{
			IssuerURL:   doc.Issuer,
			AuthURL:     doc.AuthorizationEndpoint,
			TokenURL:    doc.TokenEndpoint,
			UserInfoURL: doc.UserInfoEndpoint,
			JWKSURL:     doc.JWKSURI,
		}
		c.provider = pc.NewProvider(oidc.ClientContext(ctx, c.httpClient))
	}
	return c.provider, doc, nil
}

// AuthorizationURL returns the address the browser is sent to in order to
// authenticate at the provider
func (c *Client) AuthorizationURL(ctx context.Context, state, nonce string) (string, error) {
	conf, err := c.oauthConfig(ctx)
	if err != nil {
		return "", err
	}

	opts := []oauth2.AuthCodeOption{oauth2.SetAuthURLParam("prompt", "select_account")}
	if nonce != "" {
		opts = append(opts, oidc.Nonce(nonce))
	}
	return conf.AuthCodeURL(state, opts...), nil
}

// ExchangeCode exchanges an authorization code for tokens
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	conf, err := c.oauthConfig(ctx)
	if err != nil {
		return nil, err
	}

	oauth2Token, err := conf.Exchange(c.tokenContext(ctx), code)
	if err != nil {
		return nil, tokenError("authorization_code", err)
	}

	c.token = oauth2Token
	return toToken(oauth2Token), nil
}

// ExchangeRefreshToken obtains a new access token using a stored refresh token
func (c *Client) ExchangeRefreshToken(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, &TokenExchangeError{GrantType: "refresh_token", Err: errors.New("refresh token is empty")}
	}

	conf, err := c.oauthConfig(ctx)
	if err != nil {
		return nil, err
	}

	oauth2Token, err := conf.TokenSource(c.tokenContext(ctx), &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, tokenError("refresh_token", err)
	}

	c.token = oauth2Token
	return toToken(oauth2Token), nil
}

// CurrentRefreshToken returns the refresh token held by the client, if any
func (c *Client) CurrentRefreshToken() string {
	if c.token == nil {
		return ""
	}
	return c.token.RefreshToken
}

// VerifyNonce verifies the ID token from the last exchange and checks that
// it carries the expected nonce. Nothing is checked when the token response
// had no ID token or the provider publishes no issuer and key set.
func (c *Client) VerifyNonce(ctx context.Context, expected string) error {
	if c.token == nil {
		return ErrNoToken
	}

	rawIDToken, _ := c.token.Extra("id_token").(string)
	if rawIDToken == "" {
		c.logger.Debug("Token response carried no ID token, skipping nonce check")
		return nil
	}

	provider, doc, err := c.oidcProvider(ctx)
	if err != nil {
		return err
	}
	if doc.Issuer == "" || doc.JWKSURI == "" {
		c.logger.WithField("discovery_url", c.resolver.URL()).Debug("Provider publishes no issuer or key set, skipping nonce check")
		return nil
	}
	if expected == "" {
		return &NonceError{Err: errors.New("no nonce was issued for this login")}
	}

	idToken, err := provider.Verifier(&oidc.Config{ClientID: c.cfg.ClientID}).Verify(ctx, rawIDToken)
	if err != nil {
		return &NonceError{Err: err}
	}
	if idToken.Nonce != expected {
		return &NonceError{}
	}
	return nil
}

// FetchUserInfo requests the user info claims with the current access token
func (c *Client) FetchUserInfo(ctx context.Context) (*models.Identity, error) {
	if c.token == nil || c.token.AccessToken == "" {
		return nil, ErrNoToken
	}

	provider, _, err := c.oidcProvider(ctx)
	if err != nil {
		return nil, err
	}

	info, err := provider.UserInfo(oidc.ClientContext(ctx, strictClient(c.httpClient)), oauth2.StaticTokenSource(c.token))
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return nil, &UserInfoError{StatusCode: se.StatusCode, Err: err}
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, &UserInfoError{Err: err}
		}
		return nil, &ParseError{Err: err}
	}

	var identity models.Identity
	if err := info.Claims(&identity); err != nil {
		return nil, &ParseError{Err: err}
	}
	if identity.Email == "" {
		return nil, &ParseError{Field: "email"}
	}
	return &identity, nil
}

func (c *Client) tokenContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, strictClient(c.httpClient))
}

func tokenError(grantType string, err error) error {
	var se *statusError
	if errors.As(err, &se) {
		return &TokenExchangeError{GrantType: grantType, StatusCode: se.StatusCode, Err: err}
	}
	return &TokenExchangeError{GrantType: grantType, Err: err}
}

func toToken(oauth2Token *oauth2.Token) *Token {
	token := &Token{
		AccessToken:  oauth2Token.AccessToken,
		RefreshToken: oauth2Token.RefreshToken,
		Expiry:       oauth2Token.Expiry.Unix(),
	}

	if idToken, ok := oauth2Token.Extra("id_token").(string); ok {
		token.IDToken = idToken
	}
	return token
}
