package services

import (
	"context"
	"errors"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fysikteknologsektionen/ftek-login/authenticator"
	"github.com/fysikteknologsektionen/ftek-login/config"
	"github.com/fysikteknologsektionen/ftek-login/cookies"
	"github.com/fysikteknologsektionen/ftek-login/models"
	"github.com/fysikteknologsektionen/ftek-login/repositories"
)

// Actions on the login page that never start an OpenID login
var nativeLoginActions = map[string]bool{
	"logout":       true,
	"lostpassword": true,
	"rp":           true,
	"resetpass":    true,
}

// SessionStarter attaches an authenticated user to the browser session
type SessionStarter interface {
	Start(ctx context.Context, user *models.User) error
}

// ClientFactory creates identity provider clients
type ClientFactory interface {
	NewClient(cfg authenticator.Config) (authenticator.Provider, error)
	NewResolver(discoveryURL string) *authenticator.Resolver
	NewClientWithResolver(cfg authenticator.Config, r *authenticator.Resolver) (authenticator.Provider, error)
}

// LoginRequest is a visit to the login page
type LoginRequest struct {
	Query   url.Values
	Form    url.Values // nil unless the request was a POST
	Cookies cookies.Store
}

// CallbackRequest is the browser returning from the identity provider
type CallbackRequest struct {
	Query     url.Values
	Cookies   cookies.Store
	Session   SessionStarter
	IPAddress string
	UserAgent string
}

// Outcome tells the caller how to answer the request
type Outcome int

const (
	// OutcomeFallThrough renders the native login page
	OutcomeFallThrough Outcome = iota
	// OutcomeRedirect sends the browser to Location
	OutcomeRedirect
	// OutcomeAuthenticated means a session was started; redirect to Location
	OutcomeAuthenticated
	// OutcomeRejected means the callback failed; redirect to Location
	OutcomeRejected
)

// LoginResult is the result of a login step
type LoginResult struct {
	Outcome  Outcome
	Location string
	User     *models.User
	Err      error
}

// LoginNotice is shown on the native login page after a failed OpenID login
type LoginNotice struct {
	Message  string
	Hint     string
	RetryURL string
}

// LoginService interface defines the OpenID login flow
type LoginService interface {
	BeginLogin(ctx context.Context, req *LoginRequest) *LoginResult
	CompleteLogin(ctx context.Context, req *CallbackRequest) *LoginResult
	ConsumeLoginError(store cookies.Store) *LoginNotice
}

// loginService implements LoginService interface
type loginService struct {
	cfg     *config.Config
	users   UserService
	events  repositories.LoginEventRepository
	factory ClientFactory
	logger  *logrus.Logger
	now     func() time.Time
}

// NewLoginService creates a new login service
func NewLoginService(cfg *config.Config, users UserService, events repositories.LoginEventRepository, factory ClientFactory, logger *logrus.Logger) LoginService {
	return &loginService{
		cfg:     cfg,
		users:   users,
		events:  events,
		factory: factory,
		logger:  logger,
		now:     time.Now,
	}
}

// BeginLogin decides whether a login page visit starts an OpenID login
func (s *loginService) BeginLogin(ctx context.Context, req *LoginRequest) *LoginResult {
	if missing := s.cfg.OAuth.MissingSettings(); len(missing) > 0 {
		err := &ConfigurationError{Missing: missing}
		s.logger.WithField("missing", missing).Warn("OpenID login disabled")
		req.Cookies.Set(cookies.LoginErrorCookie, UserMessage(err))
		return &LoginResult{Outcome: OutcomeFallThrough, Err: err}
	}

	q := req.Query
	if q.Get("loggedout") == "true" {
		return &LoginResult{Outcome: OutcomeRedirect, Location: s.cfg.HomeURL()}
	}
	if q.Has("noopenid") || isCredentialSubmission(req.Form) {
		return &LoginResult{Outcome: OutcomeFallThrough}
	}
	if nativeLoginActions[q.Get("action")] {
		return &LoginResult{Outcome: OutcomeFallThrough}
	}

	redirectTo := q.Get("redirect_to")
	if redirectTo == "" && req.Form != nil {
		redirectTo = req.Form.Get("redirect_to")
	}
	if target := s.sanitizeRedirect(redirectTo); target != "" {
		req.Cookies.Set(cookies.RedirectToCookie, target)
	}

	location, err := s.authorizationURL(ctx, req.Cookies)
	if err != nil {
		s.logger.WithError(err).Error("Failed to build authorization URL")
		req.Cookies.Set(cookies.LoginErrorCookie, UserMessage(err))
		return &LoginResult{Outcome: OutcomeFallThrough, Err: err}
	}

	return &LoginResult{Outcome: OutcomeRedirect, Location: location}
}

func (s *loginService) authorizationURL(ctx context.Context, store cookies.Store) (string, error) {
	client, err := s.factory.NewClient(clientConfig(s.cfg))
	if err != nil {
		return "", err
	}

	state, err := authenticator.NewStateManager(store).GetOrCreate()
	if err != nil {
		return "", err
	}

	nonce, err := authenticator.NewRandomKey()
	if err != nil {
		return "", err
	}

	location, err := client.AuthorizationURL(ctx, state, nonce)
	if err != nil {
		return "", err
	}

	store.Set(cookies.NonceCookie, nonce)
	return location, nil
}

// CompleteLogin handles the redirect back from the identity provider
func (s *loginService) CompleteLogin(ctx context.Context, req *CallbackRequest) *LoginResult {
	user, identity, err := s.authenticate(ctx, req)
	if err != nil {
		return s.reject(ctx, req, identity, err)
	}

	target := s.postLoginTarget(req.Cookies)
	req.Cookies.Delete(cookies.RedirectToCookie)

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
		"roles":   user.Roles.Sorted(),
	}).Info("OpenID login succeeded")

	s.record(ctx, req, &models.LoginEvent{
		Email:   user.Email,
		Outcome: models.LoginAuthenticated,
	})

	return &LoginResult{Outcome: OutcomeAuthenticated, Location: target, User: user}
}

func (s *loginService) authenticate(ctx context.Context, req *CallbackRequest) (*models.User, *models.Identity, error) {
	if missing := s.cfg.OAuth.MissingSettings(); len(missing) > 0 {
		return nil, nil, &ConfigurationError{Missing: missing}
	}

	code, state := req.Query.Get("code"), req.Query.Get("state")
	if code == "" || state == "" {
		return nil, nil, &MalformedCallbackError{}
	}

	ok, err := authenticator.NewStateManager(req.Cookies).Validate(state)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, &StateMismatchError{}
	}

	client, err := s.factory.NewClient(clientConfig(s.cfg))
	if err != nil {
		return nil, nil, err
	}

	if _, err := client.ExchangeCode(ctx, code); err != nil {
		return nil, nil, err
	}

	nonce, _ := req.Cookies.Get(cookies.NonceCookie)
	req.Cookies.Delete(cookies.NonceCookie)
	if err := client.VerifyNonce(ctx, nonce); err != nil {
		return nil, nil, err
	}

	identity, err := client.FetchUserInfo(ctx)
	if err != nil {
		return nil, nil, err
	}

	roles, matched, invalid := s.cfg.OAuth.Users.Match(identity.Email)
	if invalid != nil {
		s.logger.WithError(invalid).Warn("Skipped invalid email rules")
	}
	if !matched {
		return nil, identity, &NoMatchingRuleError{Email: identity.Email}
	}

	user, err := s.users.Resolve(ctx, identity, roles, client.CurrentRefreshToken())
	if err != nil {
		return nil, identity, err
	}

	if req.Session == nil {
		return nil, identity, &ProvisioningError{Email: identity.Email, Err: errors.New("no session available")}
	}
	if err := req.Session.Start(ctx, user); err != nil {
		return nil, identity, &ProvisioningError{Email: identity.Email, Err: err}
	}

	return user, identity, nil
}

func (s *loginService) reject(ctx context.Context, req *CallbackRequest, identity *models.Identity, err error) *LoginResult {
	email := ""
	if identity != nil {
		email = identity.Email
	}

	s.logger.WithFields(logrus.Fields{
		"email": email,
		"ip":    req.IPAddress,
	}).WithError(err).Warn("OpenID login rejected")

	req.Cookies.Set(cookies.LoginErrorCookie, UserMessage(err))

	s.record(ctx, req, &models.LoginEvent{
		Email:   email,
		Outcome: models.LoginRejected,
		Reason:  err.Error(),
	})

	return &LoginResult{
		Outcome:  OutcomeRejected,
		Location: s.cfg.LoginURL() + "?noopenid",
		Err:      err,
	}
}

func (s *loginService) record(ctx context.Context, req *CallbackRequest, event *models.LoginEvent) {
	if s.events == nil {
		return
	}

	event.OccurredAt = s.now().UTC()
	event.IPAddress = req.IPAddress
	event.UserAgent = req.UserAgent

	if err := s.events.Create(ctx, event); err != nil {
		s.logger.WithError(err).Error("Failed to record login event")
	}
}

// ConsumeLoginError returns and clears the stored login failure, if any
func (s *loginService) ConsumeLoginError(store cookies.Store) *LoginNotice {
	msg, ok := store.Get(cookies.LoginErrorCookie)
	if !ok {
		return nil
	}
	store.Delete(cookies.LoginErrorCookie)
	if msg == "" {
		return nil
	}

	return &LoginNotice{
		Message:  msg,
		Hint:     MsgRetryHint,
		RetryURL: s.cfg.LoginURL(),
	}
}

// postLoginTarget picks where to send the browser after a successful login
func (s *loginService) postLoginTarget(store cookies.Store) string {
	raw, _ := store.Get(cookies.RedirectToCookie)
	target := s.sanitizeRedirect(raw)
	if target == "" || isProfileTarget(target) {
		return s.cfg.DefaultLandingURL()
	}
	return target
}

// sanitizeRedirect returns raw as an absolute URL on the site, or "" when it
// points elsewhere
func (s *loginService) sanitizeRedirect(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, `\`) {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	if u.Scheme == "" && u.Host == "" {
		if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
			return ""
		}
		return s.cfg.SiteURL + u.RequestURI()
	}

	site, err := url.Parse(s.cfg.SiteURL)
	if err != nil {
		return ""
	}
	if (u.Scheme != "http" && u.Scheme != "https") || !strings.EqualFold(u.Host, site.Host) {
		return ""
	}
	return u.String()
}

func isProfileTarget(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	base := path.Base(u.Path)
	return base == "profile.php" || base == "profile"
}

func isCredentialSubmission(form url.Values) bool {
	if form == nil {
		return false
	}
	return form.Has("login") || form.Has("password")
}

func clientConfig(cfg *config.Config) authenticator.Config {
	return authenticator.Config{
		DiscoveryURL: cfg.OAuth.DiscoveryDocURL,
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURL:  cfg.RedirectURI(),
		Scopes:       cfg.OAuth.Scopes,
	}
}
