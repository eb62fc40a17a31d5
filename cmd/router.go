package cmd

import (
	"fmt"
	"net/http"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/fysikteknologsektionen/ftek-login/config"
	"github.com/fysikteknologsektionen/ftek-login/controllers"
	authmiddleware "github.com/fysikteknologsektionen/ftek-login/middleware"
)

const sessionCookieName = "ftek_session"

// newRouter configures all routes
func newRouter(cfg *config.Config, ctrl *controllers.Controllers, logger *logrus.Logger) (*chi.Mux, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(authmiddleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // covers the token and userinfo round trips
	r.Use(middleware.Compress(5))

	lifetime := int64(cfg.SessionLifetime / time.Second)
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:    "memory",
		CookieName:  sessionCookieName,
		Secure:      cfg.UseHTTPS,
		Gclifetime:  lifetime,
		Maxlifetime: lifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	// The provider redirects back to SITE_URL/?ftek_openid, so the callback
	// is matched on the query marker before routing.
	r.Use(authmiddleware.OpenIDCallback(config.CallbackMarker, http.HandlerFunc(ctrl.Login.Callback)))

	// PUBLIC ROUTES
	r.Get("/login", ctrl.Login.Login)
	r.Post("/login", ctrl.Login.Login)
	r.Get("/logout", ctrl.Login.Logout)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status": "healthy", "service": "ftek-login"}`)
	})

	// PROTECTED ROUTES
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth)

		r.Get("/profile", ctrl.Profile.Show)
		r.Post("/profile/password", ctrl.Profile.ResetPassword)
	})

	return r, nil
}
