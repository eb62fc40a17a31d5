package controllers

import (
	"net/http"
	"strings"

	"gitea.com/go-chi/session"
	"github.com/sirupsen/logrus"

	"github.com/fysikteknologsektionen/ftek-login/config"
	"github.com/fysikteknologsektionen/ftek-login/cookies"
	"github.com/fysikteknologsektionen/ftek-login/middleware"
	"github.com/fysikteknologsektionen/ftek-login/models"
	"github.com/fysikteknologsektionen/ftek-login/services"
)

// LoginController handles the login page, the OpenID callback and logout
type LoginController struct {
	cfg    *config.Config
	login  services.LoginService
	logger *logrus.Logger
}

// NewLoginController creates a new login controller
func NewLoginController(cfg *config.Config, login services.LoginService, logger *logrus.Logger) *LoginController {
	return &LoginController{
		cfg:    cfg,
		login:  login,
		logger: logger,
	}
}

// loginPage is the data of the native login page
type loginPage struct {
	Notice     *services.LoginNotice
	RedirectTo string
}

// Login handles GET and POST /login
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	req := &services.LoginRequest{
		Query:   r.URL.Query(),
		Cookies: cookies.New(w, r, secureRequest(c.cfg, r)),
	}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		req.Form = r.PostForm
	}

	result := c.login.BeginLogin(r.Context(), req)
	if result.Outcome == services.OutcomeRedirect {
		http.Redirect(w, r, result.Location, http.StatusFound)
		return
	}

	page := models.PageData{
		Title: "Log In",
		Data: loginPage{
			Notice:     c.login.ConsumeLoginError(req.Cookies),
			RedirectTo: req.Query.Get("redirect_to"),
		},
	}

	status := http.StatusOK
	if req.Form != nil && (req.Form.Has("login") || req.Form.Has("password")) {
		// Password sign-in belongs to the host site
		status = http.StatusNotImplemented
		page.FlashMessages = append(page.FlashMessages, &models.FlashMessage{
			Type:    "warning",
			Message: "Password sign-in is not available here.",
		})
	}

	if err := renderTemplateWithStatus(w, status, "login.html", page); err != nil {
		c.logger.WithError(err).Error("Failed to render login page")
	}
}

// Callback handles the redirect back from the identity provider
func (c *LoginController) Callback(w http.ResponseWriter, r *http.Request) {
	result := c.login.CompleteLogin(r.Context(), &services.CallbackRequest{
		Query:     r.URL.Query(),
		Cookies:   cookies.New(w, r, secureRequest(c.cfg, r)),
		Session:   newBrowserSession(w, r),
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	})

	http.Redirect(w, r, result.Location, http.StatusFound)
}

// secureRequest reports whether cookies set for r must be marked Secure
func secureRequest(cfg *config.Config, r *http.Request) bool {
	return cfg.UseHTTPS || r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// Logout handles GET /logout
func (c *LoginController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	if err := sess.Flush(); err != nil {
		c.logger.WithError(err).Warn("Failed to clear session")
	}
	http.Redirect(w, r, "/login?loggedout=true", http.StatusSeeOther)
}
