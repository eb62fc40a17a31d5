package cmd

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fysikteknologsektionen/ftek-login/authenticator"
	"github.com/fysikteknologsektionen/ftek-login/config"
	"github.com/fysikteknologsektionen/ftek-login/database"
	"github.com/fysikteknologsektionen/ftek-login/repositories"
	"github.com/fysikteknologsektionen/ftek-login/services"
)

// outboundTimeout bounds every request to the identity provider
const outboundTimeout = 30 * time.Second

// app is the wired application shared by the commands
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	db       *sql.DB
	repos    *repositories.Repositories
	services *services.Services
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := database.InitializeDatabase(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repos := repositories.NewRepositories(db)
	factory := authenticator.NewFactory(&http.Client{Timeout: outboundTimeout}, logger)

	if !cfg.OAuth.IsComplete() {
		logger.WithField("missing", cfg.OAuth.MissingSettings()).Warn("OpenID settings incomplete, login falls back to the native page")
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		repos:    repos,
		services: services.NewServices(cfg, repos, factory, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Warn("Failed to close database")
	}
}
