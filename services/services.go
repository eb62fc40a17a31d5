package services

import (
	"github.com/sirupsen/logrus"

	"github.com/fysikteknologsektionen/ftek-login/config"
	"github.com/fysikteknologsektionen/ftek-login/repositories"
)

// Services holds all service instances
type Services struct {
	Users   UserService
	Login   LoginService
	Refresh RefreshService
	Profile ProfilePolicy
}

// NewServices creates and initializes all service instances
func NewServices(cfg *config.Config, repos *repositories.Repositories, factory ClientFactory, logger *logrus.Logger) *Services {
	users := NewUserService(repos.Users, logger)
	return &Services{
		Users:   users,
		Login:   NewLoginService(cfg, users, repos.LoginEvents, factory, logger),
		Refresh: NewRefreshService(cfg, repos.Users, users, factory, logger),
	}
}
