package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fysikteknologsektionen/ftek-login/authenticator"
	"github.com/fysikteknologsektionen/ftek-login/authenticator/authtest"
	"github.com/fysikteknologsektionen/ftek-login/config"
	"github.com/fysikteknologsektionen/ftek-login/models"
	"github.com/fysikteknologsektionen/ftek-login/repositories"
)

type refreshFixture struct {
	idp     *authtest.Provider
	cfg     *config.Config
	repos   *repositories.Repositories
	service RefreshService
	users   map[string]*models.User
}

func newRefreshFixture(t *testing.T, concurrency int) *refreshFixture {
	idp := authtest.New(t)
	cfg := testConfig(idp, models.EmailRules{{EmailPattern: `.*`}})
	cfg.Refresh.Concurrency = concurrency
	repos := repositories.NewRepositories(setupTestDB(t))
	logger := quietLogger()

	f := &refreshFixture{
		idp:     idp,
		cfg:     cfg,
		repos:   repos,
		service: NewRefreshService(cfg, repos.Users, NewUserService(repos.Users, logger), testFactory(idp), logger),
		users:   make(map[string]*models.User),
	}

	for _, name := range []string{"a", "b", "c"} {
		user := &models.User{
			Login:        name + "@ftek.se",
			Email:        name + "@ftek.se",
			PasswordHash: "hash",
			FirstName:    "Old " + name,
			IsOAuthUser:  true,
			RefreshToken: "rt-" + name,
		}
		require.NoError(t, repos.Users.Create(context.Background(), user))
		f.users[name] = user
	}

	// A user without refresh token is never refreshed
	require.NoError(t, repos.Users.Create(context.Background(), &models.User{
		Login: "native", Email: "native@ftek.se", PasswordHash: "hash",
	}))

	return f
}

func (f *refreshFixture) grant(name, givenName, newRefreshToken string) {
	f.idp.AddRefreshToken("rt-"+name, authtest.Grant{
		Claims:       map[string]any{"email": name + "@ftek.se", "given_name": givenName},
		RefreshToken: newRefreshToken,
	})
}

func (f *refreshFixture) reload(t *testing.T, name string) *models.User {
	user, err := f.repos.Users.GetByID(context.Background(), f.users[name].ID)
	require.NoError(t, err)
	return user
}

func TestRefreshAll_SkipsFailingUser(t *testing.T) {
	for _, concurrency := range []int{1, 3} {
		f := newRefreshFixture(t, concurrency)
		f.grant("a", "Alice", "")
		f.grant("c", "Carol", "rt-c2")
		// b's refresh token is unknown to the provider and is rejected

		report, err := f.service.RefreshAll(context.Background())

		require.NoError(t, err)
		assert.NotEmpty(t, report.RunID)
		assert.Equal(t, 3, report.Total)
		assert.Equal(t, 2, report.Refreshed)
		require.Len(t, report.Skipped, 1)
		assert.Equal(t, f.users["b"].ID, report.Skipped[0].UserID)

		var exErr *authenticator.TokenExchangeError
		assert.ErrorAs(t, report.Skipped[0], &exErr)

		a := f.reload(t, "a")
		assert.Equal(t, "Alice", a.FirstName)
		assert.Equal(t, "rt-a", a.RefreshToken)

		b := f.reload(t, "b")
		assert.Equal(t, "Old b", b.FirstName)
		assert.Equal(t, "rt-b", b.RefreshToken)

		c := f.reload(t, "c")
		assert.Equal(t, "Carol", c.FirstName)
		assert.Equal(t, "rt-c2", c.RefreshToken)

		// One discovery fetch is shared by the whole run
		assert.Equal(t, 1, f.idp.Hits(authtest.DiscoveryPath))
	}
}

func TestRefreshAll_UserInfoFailureSkipsUser(t *testing.T) {
	f := newRefreshFixture(t, 1)
	f.grant("a", "Alice", "")
	f.idp.AddRefreshToken("rt-b", authtest.Grant{Claims: map[string]any{"given_name": "No Mail"}})
	f.grant("c", "Carol", "")

	report, err := f.service.RefreshAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, report.Refreshed)
	require.Len(t, report.Skipped, 1)

	var parseErr *authenticator.ParseError
	assert.ErrorAs(t, report.Skipped[0], &parseErr)
	assert.Equal(t, "Old b", f.reload(t, "b").FirstName)
}

func TestRefreshAll_DiscoveryFailureSkipsEveryone(t *testing.T) {
	f := newRefreshFixture(t, 1)
	f.idp.SetStatus(authtest.DiscoveryPath, 503)

	report, err := f.service.RefreshAll(context.Background())

	require.NoError(t, err)
	assert.Zero(t, report.Refreshed)
	assert.Len(t, report.Skipped, 3)
}

func TestRefreshAll_IncompleteSettings(t *testing.T) {
	f := newRefreshFixture(t, 1)
	f.cfg.OAuth.ClientID = ""

	_, err := f.service.RefreshAll(context.Background())

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Zero(t, f.idp.Hits(authtest.DiscoveryPath))
}

func TestRefreshAll_CancelledContext(t *testing.T) {
	f := newRefreshFixture(t, 1)
	f.grant("a", "Alice", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.RefreshAll(ctx)

	// Listing runs on the cancelled context too
	assert.Error(t, err)
	assert.Equal(t, "Old a", f.reload(t, "a").FirstName)
}
