package models

import (
	"time"
)

// User represents a local account on the site
type User struct {
	ID           int64      `json:"id" db:"id"`
	Login        string     `json:"login" db:"login"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	DisplayName  string     `json:"display_name" db:"display_name"`
	Picture      string     `json:"picture,omitempty" db:"picture"`
	IsOAuthUser  bool       `json:"is_oauth_user" db:"is_oauth_user"`
	RefreshToken string     `json:"-" db:"refresh_token"`
	Roles        RoleSet    `json:"-"`
	RegisteredAt time.Time  `json:"registered_at" db:"registered_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// HasRefreshToken reports whether a refresh token is stored for the user
func (u *User) HasRefreshToken() bool {
	return u.RefreshToken != ""
}

// ApplyIdentity copies the profile fields present in the identity onto the
// user and marks the account as OpenID managed. The refresh token is only
// replaced when a new one is supplied.
func (u *User) ApplyIdentity(identity *Identity, refreshToken string) {
	if identity != nil {
		if identity.GivenName != "" {
			u.FirstName = identity.GivenName
		}
		if identity.FamilyName != "" {
			u.LastName = identity.FamilyName
		}
		if identity.Name != "" {
			u.DisplayName = identity.Name
		}
		if identity.Picture != "" {
			u.Picture = identity.Picture
		}
	}

	u.IsOAuthUser = true

	if refreshToken != "" {
		u.RefreshToken = refreshToken
	}
}
