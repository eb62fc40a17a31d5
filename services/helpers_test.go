package services

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fysikteknologsektionen/ftek-login/authenticator"
	"github.com/fysikteknologsektionen/ftek-login/authenticator/authtest"
	"github.com/fysikteknologsektionen/ftek-login/config"
	"github.com/fysikteknologsektionen/ftek-login/database"
	"github.com/fysikteknologsektionen/ftek-login/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupTestDB(t *testing.T) *sql.DB {
	db, err := database.InitializeDatabase(filepath.Join(t.TempDir(), "test.db"), quietLogger())
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func testConfig(idp *authtest.Provider, rules models.EmailRules) *config.Config {
	return &config.Config{
		SiteURL:        "https://ftek.se",
		DefaultLanding: "/admin/",
		OAuth: config.OAuthSettings{
			DiscoveryDocURL: idp.DiscoveryURL(),
			ClientID:        idp.ClientID,
			ClientSecret:    idp.ClientSecret,
			Users:           rules,
		},
		Refresh: config.RefreshSettings{
			Interval:    168 * time.Hour,
			At:          "02:00",
			Concurrency: 1,
		},
	}
}

func testFactory(idp *authtest.Provider) *authenticator.Factory {
	return authenticator.NewFactory(idp.HTTPClient(), quietLogger())
}

// memoryStore is a cookies.Store backed by a map
type memoryStore map[string]string

func (m memoryStore) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func (m memoryStore) Set(name, value string) {
	m[name] = value
}

func (m memoryStore) Delete(name string) {
	delete(m, name)
}

// recordingSession remembers the user it was started for
type recordingSession struct {
	user *models.User
	err  error
}

func (s *recordingSession) Start(ctx context.Context, user *models.User) error {
	if s.err != nil {
		return s.err
	}
	s.user = user
	return nil
}
