package services

import "github.com/fysikteknologsektionen/ftek-login/models"

// ProfilePolicy decides what OpenID managed users may change themselves
type ProfilePolicy struct{}

// AllowPasswordReset reports whether the user may reset their password
func (ProfilePolicy) AllowPasswordReset(user *models.User) bool {
	return user == nil || !user.IsOAuthUser
}

// AvatarURL prefers the picture from the identity provider
func (ProfilePolicy) AvatarURL(user *models.User, fallback string) string {
	if user != nil && user.IsOAuthUser && user.Picture != "" {
		return user.Picture
	}
	return fallback
}

// LockedFields lists the profile fields that are managed by the identity
// provider and must not be edited locally
func (ProfilePolicy) LockedFields(user *models.User) []string {
	if user == nil || !user.IsOAuthUser {
		return nil
	}
	return []string{"first_name", "last_name", "email", "role"}
}
