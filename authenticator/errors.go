package authenticator

import (
	"errors"
	"fmt"
)

// ErrNoToken is returned when user info is requested before a token exchange
var ErrNoToken = errors.New("no access token has been obtained")

// DiscoveryError is returned when the discovery document cannot be used.
// Reason is safe to show to end users.
type DiscoveryError struct {
	URL        string
	StatusCode int
	Missing    []string
	Reason     string
	Err        error
}

func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// TokenExchangeError is returned when the token endpoint does not answer
// with a usable token
type TokenExchangeError struct {
	GrantType  string
	StatusCode int
	Err        error
}

func (e *TokenExchangeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("token request (%s) failed with status %d", e.GrantType, e.StatusCode)
	}
	return fmt.Sprintf("token request (%s) failed: %v", e.GrantType, e.Err)
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}

// UserInfoError is returned when the userinfo endpoint request fails
type UserInfoError struct {
	StatusCode int
	Err        error
}

func (e *UserInfoError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("userinfo request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("userinfo request failed: %v", e.Err)
}

func (e *UserInfoError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the user info response cannot be used
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse user info: %v", e.Err)
	}
	return fmt.Sprintf("user info response is missing %q", e.Field)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NonceError is returned when the ID token fails verification or carries
// a nonce other than the one issued for the login
type NonceError struct {
	Err error
}

func (e *NonceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ID token verification failed: %v", e.Err)
	}
	return "ID token nonce mismatch"
}

func (e *NonceError) Unwrap() error {
	return e.Err
}
