package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/fysikteknologsektionen/ftek-login/middleware"
	"github.com/fysikteknologsektionen/ftek-login/models"
)

// browserSession starts the host session in the gitea session store of r
type browserSession struct {
	w http.ResponseWriter
	r *http.Request
}

func newBrowserSession(w http.ResponseWriter, r *http.Request) *browserSession {
	return &browserSession{w: w, r: r}
}

// Start signs user in for the rest of the session. The session ID is
// regenerated first so an ID planted before sign-in is never authenticated.
func (s *browserSession) Start(ctx context.Context, user *models.User) error {
	// GetSession hides a missing session behind a non-nil interface
	if s.r.Context().Value("Session") == nil {
		return errors.New("no session on request")
	}
	sess, err := session.RegenerateSession(s.w, s.r)
	if err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}
	if err := sess.Set(middleware.SessionUserIDKey, user.ID); err != nil {
		return err
	}
	return sess.Set(middleware.SessionUserEmailKey, user.Email)
}
