package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fysikteknologsektionen/ftek-login/config"
	"github.com/fysikteknologsektionen/ftek-login/cookies"
	"github.com/fysikteknologsektionen/ftek-login/models"
	"github.com/fysikteknologsektionen/ftek-login/repositories"
	"github.com/fysikteknologsektionen/ftek-login/services"
	"github.com/fysikteknologsektionen/ftek-login/userctx"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeLoginService answers with canned results and records requests
type fakeLoginService struct {
	begin    *services.LoginResult
	complete *services.LoginResult
	notice   *services.LoginNotice
	// state is stored in the state cookie when set
	state string

	beginReq    *services.LoginRequest
	callbackReq *services.CallbackRequest
}

func (f *fakeLoginService) BeginLogin(ctx context.Context, req *services.LoginRequest) *services.LoginResult {
	f.beginReq = req
	if f.state != "" {
		req.Cookies.Set(cookies.StateCookie, f.state)
	}
	return f.begin
}

func (f *fakeLoginService) CompleteLogin(ctx context.Context, req *services.CallbackRequest) *services.LoginResult {
	f.callbackReq = req
	if f.state != "" {
		req.Cookies.Set(cookies.StateCookie, f.state)
	}
	return f.complete
}

func (f *fakeLoginService) ConsumeLoginError(store cookies.Store) *services.LoginNotice {
	return f.notice
}

// fakeUserService serves a fixed set of users
type fakeUserService struct {
	users map[int64]*models.User
}

func (f *fakeUserService) Resolve(ctx context.Context, identity *models.Identity, roles models.RoleSet, refreshToken string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, userID int64, identity *models.Identity, refreshToken string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, repositories.ErrUserNotFound
}

func newLoginController(fake *fakeLoginService) *LoginController {
	return NewLoginController(&config.Config{SiteURL: "https://ftek.se"}, fake, quietLogger())
}

func TestLogin_RedirectsToProvider(t *testing.T) {
	fake := &fakeLoginService{begin: &services.LoginResult{
		Outcome:  services.OutcomeRedirect,
		Location: "https://idp.example.com/authorize?state=abc",
	}}

	rec := httptest.NewRecorder()
	newLoginController(fake).Login(rec, httptest.NewRequest(http.MethodGet, "/login?redirect_to=%2Fadmin%2F", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://idp.example.com/authorize?state=abc", rec.Header().Get("Location"))
	assert.Equal(t, "/admin/", fake.beginReq.Query.Get("redirect_to"))
	assert.Nil(t, fake.beginReq.Form)
}

func TestLogin_RendersNoticeOnFallThrough(t *testing.T) {
	fake := &fakeLoginService{
		begin: &services.LoginResult{Outcome: services.OutcomeFallThrough},
		notice: &services.LoginNotice{
			Message:  services.MsgNotAllowed,
			Hint:     services.MsgRetryHint,
			RetryURL: "https://ftek.se/login",
		},
	}

	rec := httptest.NewRecorder()
	newLoginController(fake).Login(rec, httptest.NewRequest(http.MethodGet, "/login?noopenid", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Sorry, your account cannot login to this site")
	assert.Contains(t, body, `href="https://ftek.se/login"`)
	assert.Contains(t, body, `id="loginform"`)
}

func TestLogin_CredentialSubmission(t *testing.T) {
	fake := &fakeLoginService{begin: &services.LoginResult{Outcome: services.OutcomeFallThrough}}

	form := url.Values{"login": {"ada"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/login?noopenid", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	newLoginController(fake).Login(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Equal(t, "ada", fake.beginReq.Form.Get("login"))
	assert.NotContains(t, rec.Body.String(), "login_error")
}

func TestCallback_RedirectsToResultLocation(t *testing.T) {
	fake := &fakeLoginService{complete: &services.LoginResult{
		Outcome:  services.OutcomeRejected,
		Location: "https://ftek.se/login?noopenid",
	}}

	req := httptest.NewRequest(http.MethodGet, "/?ftek_openid&code=c&state=s", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	newLoginController(fake).Callback(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://ftek.se/login?noopenid", rec.Header().Get("Location"))
	require.NotNil(t, fake.callbackReq)
	assert.Equal(t, "c", fake.callbackReq.Query.Get("code"))
	assert.Equal(t, "203.0.113.9", fake.callbackReq.IPAddress)
	assert.Equal(t, "test-agent", fake.callbackReq.UserAgent)
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func TestLogin_SecureCookies(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header string
		secure bool
	}{
		{name: "plain http", target: "http://ftek.se/login", secure: false},
		{name: "tls", target: "https://ftek.se/login", secure: true},
		{name: "forwarded https", target: "http://ftek.se/login", header: "https", secure: true},
		{name: "forwarded http", target: "http://ftek.se/login", header: "http", secure: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeLoginService{
				state: "abc",
				begin: &services.LoginResult{Outcome: services.OutcomeRedirect, Location: "https://idp.example.com/authorize"},
			}
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-Forwarded-Proto", tt.header)
			}
			rec := httptest.NewRecorder()
			newLoginController(fake).Login(rec, req)

			assert.Equal(t, tt.secure, findCookie(t, rec, cookies.StateCookie).Secure)
		})
	}
}

func TestCallback_SecureCookies(t *testing.T) {
	tests := []struct {
		name   string
		target string
		header string
		secure bool
	}{
		{name: "plain http", target: "http://ftek.se/?ftek_openid", secure: false},
		{name: "tls", target: "https://ftek.se/?ftek_openid", secure: true},
		{name: "forwarded https", target: "http://ftek.se/?ftek_openid", header: "HTTPS", secure: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeLoginService{
				state:    "abc",
				complete: &services.LoginResult{Outcome: services.OutcomeRejected, Location: "https://ftek.se/login?noopenid"},
			}
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-Forwarded-Proto", tt.header)
			}
			rec := httptest.NewRecorder()
			newLoginController(fake).Callback(rec, req)

			assert.Equal(t, tt.secure, findCookie(t, rec, cookies.StateCookie).Secure)
		})
	}
}

func TestLogin_ConfiguredHTTPS(t *testing.T) {
	fake := &fakeLoginService{
		state: "abc",
		begin: &services.LoginResult{Outcome: services.OutcomeRedirect, Location: "https://idp.example.com/authorize"},
	}
	ctrl := NewLoginController(&config.Config{SiteURL: "https://ftek.se", UseHTTPS: true}, fake, quietLogger())

	rec := httptest.NewRecorder()
	ctrl.Login(rec, httptest.NewRequest(http.MethodGet, "http://ftek.se/login", nil))

	assert.True(t, findCookie(t, rec, cookies.StateCookie).Secure)
}

func newProfileController() *ProfileController {
	users := &fakeUserService{users: map[int64]*models.User{
		1: {
			ID:           1,
			Login:        "ada@ftek.se",
			Email:        "ada@ftek.se",
			FirstName:    "Ada",
			Picture:      "https://idp.example.com/ada.png",
			IsOAuthUser:  true,
			Roles:        models.NewRoleSet("editor", "author"),
			RegisteredAt: time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC),
		},
		2: {ID: 2, Login: "bob", Email: "bob@ftek.se"},
	}}
	return NewProfileController(users, services.ProfilePolicy{}, quietLogger())
}

func profileRequest(method, target string, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if userID != 0 {
		req = req.WithContext(userctx.SetUserID(req.Context(), userID))
	}
	return req
}

func TestProfileShow_OpenIDUser(t *testing.T) {
	rec := httptest.NewRecorder()
	newProfileController().Show(rec, profileRequest(http.MethodGet, "/profile", 1))

	require.Equal(t, http.StatusOK, rec.Code)

	var view profileView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "https://idp.example.com/ada.png", view.AvatarURL)
	assert.Equal(t, []string{"author", "editor"}, view.Roles)
	assert.Equal(t, []string{"first_name", "last_name", "email", "role"}, view.LockedFields)
	assert.False(t, view.AllowPasswordReset)
	assert.Equal(t, "2024-03-04 09:30", view.RegisteredAt)
}

func TestProfileShow_NativeUser(t *testing.T) {
	rec := httptest.NewRecorder()
	newProfileController().Show(rec, profileRequest(http.MethodGet, "/profile", 2))

	require.Equal(t, http.StatusOK, rec.Code)

	var view profileView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, defaultAvatar, view.AvatarURL)
	assert.Empty(t, view.LockedFields)
	assert.True(t, view.AllowPasswordReset)
}

func TestProfileResetPassword(t *testing.T) {
	cases := []struct {
		name   string
		userID int64
		want   int
	}{
		{"openid user", 1, http.StatusForbidden},
		{"native user", 2, http.StatusNotImplemented},
		{"unknown user", 99, http.StatusNotFound},
		{"anonymous", 0, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newProfileController().ResetPassword(rec, profileRequest(http.MethodPost, "/profile/password", tc.userID))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
