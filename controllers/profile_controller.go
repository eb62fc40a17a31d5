package controllers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/fysikteknologsektionen/ftek-login/models"
	"github.com/fysikteknologsektionen/ftek-login/repositories"
	"github.com/fysikteknologsektionen/ftek-login/services"
	"github.com/fysikteknologsektionen/ftek-login/userctx"
)

const defaultAvatar = "/static/avatar.png"

// ProfileController exposes what a signed in user may see and change
type ProfileController struct {
	users  services.UserService
	policy services.ProfilePolicy
	logger *logrus.Logger
}

// NewProfileController creates a new profile controller
func NewProfileController(users services.UserService, policy services.ProfilePolicy, logger *logrus.Logger) *ProfileController {
	return &ProfileController{
		users:  users,
		policy: policy,
		logger: logger,
	}
}

type profileView struct {
	ID                 int64    `json:"id"`
	Login              string   `json:"login"`
	Email              string   `json:"email"`
	FirstName          string   `json:"first_name"`
	LastName           string   `json:"last_name"`
	DisplayName        string   `json:"display_name"`
	AvatarURL          string   `json:"avatar_url"`
	Roles              []string `json:"roles"`
	IsOAuthUser        bool     `json:"is_oauth_user"`
	LockedFields       []string `json:"locked_fields"`
	AllowPasswordReset bool     `json:"allow_password_reset"`
	RegisteredAt       string   `json:"registered_at"`
}

type errorView struct {
	Error string `json:"error"`
}

// Show handles GET /profile
func (c *ProfileController) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := c.currentUser(w, r)
	if !ok {
		return
	}

	locked := c.policy.LockedFields(user)
	if locked == nil {
		locked = []string{}
	}

	writeJSON(w, http.StatusOK, profileView{
		ID:                 user.ID,
		Login:              user.Login,
		Email:              user.Email,
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		DisplayName:        user.DisplayName,
		AvatarURL:          c.policy.AvatarURL(user, defaultAvatar),
		Roles:              user.Roles.Sorted(),
		IsOAuthUser:        user.IsOAuthUser,
		LockedFields:       locked,
		AllowPasswordReset: c.policy.AllowPasswordReset(user),
		RegisteredAt:       models.FormatDateTime(user.RegisteredAt),
	})
}

// ResetPassword handles POST /profile/password
func (c *ProfileController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	user, ok := c.currentUser(w, r)
	if !ok {
		return
	}

	if !c.policy.AllowPasswordReset(user) {
		c.logger.WithFields(logrus.Fields{
			"user_id": user.ID,
			"email":   user.Email,
		}).Info("Refused password reset for OpenID user")
		writeJSON(w, http.StatusForbidden, errorView{Error: "Password is managed by your OpenID provider"})
		return
	}

	// Native passwords are managed by the host site
	writeJSON(w, http.StatusNotImplemented, errorView{Error: "Password reset is not available here"})
}

func (c *ProfileController) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, ok := userctx.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorView{Error: "Not signed in"})
		return nil, false
	}

	user, err := c.users.GetUser(r.Context(), id)
	if errors.Is(err, repositories.ErrUserNotFound) {
		writeJSON(w, http.StatusNotFound, errorView{Error: "User not found"})
		return nil, false
	}
	if err != nil {
		c.logger.WithError(err).WithField("user_id", id).Error("Failed to load user")
		writeJSON(w, http.StatusInternalServerError, errorView{Error: "Failed to load user"})
		return nil, false
	}
	return user, true
}
