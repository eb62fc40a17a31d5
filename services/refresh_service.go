package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fysikteknologsektionen/ftek-login/authenticator"
	"github.com/fysikteknologsektionen/ftek-login/config"
	"github.com/fysikteknologsektionen/ftek-login/models"
	"github.com/fysikteknologsektionen/ftek-login/repositories"
)

// RefreshReport summarizes one refresh run
type RefreshReport struct {
	RunID     string
	Started   time.Time
	Finished  time.Time
	Total     int
	Refreshed int
	Skipped   []*RefreshSkipped
}

// RefreshService interface defines the background profile refresher
type RefreshService interface {
	RefreshAll(ctx context.Context) (*RefreshReport, error)
}

// refreshService implements RefreshService interface
type refreshService struct {
	cfg     *config.Config
	repo    repositories.UserRepository
	users   UserService
	factory ClientFactory
	logger  *logrus.Logger
}

// NewRefreshService creates a new refresh service
func NewRefreshService(cfg *config.Config, repo repositories.UserRepository, users UserService, factory ClientFactory, logger *logrus.Logger) RefreshService {
	return &refreshService{
		cfg:     cfg,
		repo:    repo,
		users:   users,
		factory: factory,
		logger:  logger,
	}
}

// RefreshAll renews the profile of every user holding a refresh token.
// A failing user is skipped; only listing the users can fail the run.
func (s *refreshService) RefreshAll(ctx context.Context) (*RefreshReport, error) {
	report := &RefreshReport{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
	}
	log := s.logger.WithField("run_id", report.RunID)

	if missing := s.cfg.OAuth.MissingSettings(); len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}

	users, err := s.repo.ListWithRefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	report.Total = len(users)
	log.WithField("users", report.Total).Info("Refresh run started")

	resolver := s.factory.NewResolver(s.cfg.OAuth.DiscoveryDocURL)

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Refresh.Concurrency)

	for _, user := range users {
		user := user
		g.Go(func() error {
			err := s.refreshUser(ctx, resolver, user)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				skipped := &RefreshSkipped{UserID: user.ID, Email: user.Email, Err: err}
				report.Skipped = append(report.Skipped, skipped)
				log.WithFields(logrus.Fields{
					"user_id": user.ID,
					"email":   user.Email,
				}).WithError(err).Warn("Skipped user during refresh")
				return nil
			}
			report.Refreshed++
			return nil
		})
	}
	_ = g.Wait()

	report.Finished = time.Now().UTC()
	log.WithFields(logrus.Fields{
		"refreshed": report.Refreshed,
		"skipped":   len(report.Skipped),
		"duration":  report.Finished.Sub(report.Started).String(),
	}).Info("Refresh run finished")

	return report, nil
}

func (s *refreshService) refreshUser(ctx context.Context, resolver *authenticator.Resolver, user models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !user.HasRefreshToken() {
		return errors.New("user has no refresh token")
	}

	client, err := s.factory.NewClientWithResolver(clientConfig(s.cfg), resolver)
	if err != nil {
		return err
	}

	if _, err := client.ExchangeRefreshToken(ctx, user.RefreshToken); err != nil {
		return err
	}

	identity, err := client.FetchUserInfo(ctx)
	if err != nil {
		return err
	}

	_, err = s.users.UpdateProfile(ctx, user.ID, identity, client.CurrentRefreshToken())
	return err
}
