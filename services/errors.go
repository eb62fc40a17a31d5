package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fysikteknologsektionen/ftek-login/authenticator"
)

// Messages shown to users after a failed OpenID login
const (
	MsgSettingsUnset     = "OAuth login was not possible since required settings are unset"
	MsgMalformedCallback = "Malformatted response to OpenID authentication request"
	MsgStateMismatch     = "Anti-forgery state token mismatch"
	MsgTokenExchange     = "There was an error receiving the OAuth access token"
	MsgUserInfo          = "There was an error fetching user info from the OAuth provider"
	MsgNonceMismatch     = "ID token nonce mismatch"
	MsgNotAllowed        = "Sorry, your account cannot login to this site"
	MsgSessionFailed     = "Unable to assign a user to your session"

	MsgRetryHint = "Since the OpenID login failed, you were taken to the default login page. If you want to attempt another sign in with OpenID,"
)

// ConfigurationError means a required setting is unset
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("required settings are unset: %s", strings.Join(e.Missing, ", "))
}

// MalformedCallbackError means the callback lacked code or state
type MalformedCallbackError struct{}

func (e *MalformedCallbackError) Error() string {
	return "callback is missing code or state"
}

// StateMismatchError means the callback state differs from the stored one
type StateMismatchError struct{}

func (e *StateMismatchError) Error() string {
	return "anti-forgery state token mismatch"
}

// NoMatchingRuleError means no email rule admits the address
type NoMatchingRuleError struct {
	Email string
}

func (e *NoMatchingRuleError) Error() string {
	return fmt.Sprintf("no email rule matches %s", e.Email)
}

// ProvisioningError means the local user could not be created, updated or
// attached to the session
type ProvisioningError struct {
	Email string
	Err   error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("failed to provision user %s: %v", e.Email, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// RefreshSkipped records a user the background refresher could not update
type RefreshSkipped struct {
	UserID int64
	Email  string
	Err    error
}

func (e *RefreshSkipped) Error() string {
	return fmt.Sprintf("refresh skipped for user %d (%s): %v", e.UserID, e.Email, e.Err)
}

func (e *RefreshSkipped) Unwrap() error {
	return e.Err
}

// UserMessage maps a login failure to the text shown on the login page
func UserMessage(err error) string {
	var (
		cfgErr    *ConfigurationError
		malformed *MalformedCallbackError
		stateErr  *StateMismatchError
		discErr   *authenticator.DiscoveryError
		exErr     *authenticator.TokenExchangeError
		nonceErr  *authenticator.NonceError
		infoErr   *authenticator.UserInfoError
		parseErr  *authenticator.ParseError
		ruleErr   *NoMatchingRuleError
	)

	switch {
	case errors.As(err, &cfgErr):
		return MsgSettingsUnset
	case errors.As(err, &malformed):
		return MsgMalformedCallback
	case errors.As(err, &stateErr):
		return MsgStateMismatch
	case errors.As(err, &discErr):
		return discErr.Reason
	case errors.As(err, &exErr):
		return MsgTokenExchange
	case errors.As(err, &nonceErr):
		return MsgNonceMismatch
	case errors.As(err, &infoErr), errors.As(err, &parseErr), errors.Is(err, authenticator.ErrNoToken):
		return MsgUserInfo
	case errors.As(err, &ruleErr):
		return MsgNotAllowed
	default:
		return MsgSessionFailed
	}
}
