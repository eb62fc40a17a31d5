package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/fysikteknologsektionen/ftek-login/models"
	"github.com/fysikteknologsektionen/ftek-login/repositories"
)

const (
	passwordLength   = 24
	passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()"
)

// UserService interface defines local user provisioning
type UserService interface {
	Resolve(ctx context.Context, identity *models.Identity, roles models.RoleSet, refreshToken string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, identity *models.Identity, refreshToken string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// userService implements UserService interface
type userService struct {
	users  repositories.UserRepository
	logger *logrus.Logger
	now    func() time.Time
}

// NewUserService creates a new user service
func NewUserService(users repositories.UserRepository, logger *logrus.Logger) UserService {
	return &userService{
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// Resolve finds or creates the user for identity, refreshes its profile and
// sets its roles to exactly roles
func (s *userService) Resolve(ctx context.Context, identity *models.Identity, roles models.RoleSet, refreshToken string) (*models.User, error) {
	if identity == nil || identity.Email == "" {
		return nil, &ProvisioningError{Err: errors.New("identity has no email")}
	}

	user, err := s.users.GetByEmail(ctx, identity.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		user, err = s.createUser(ctx, identity.Email)
	}
	if err != nil {
		return nil, &ProvisioningError{Email: identity.Email, Err: err}
	}

	if err := s.saveProfile(ctx, user, identity, refreshToken, roles); err != nil {
		return nil, &ProvisioningError{Email: identity.Email, Err: err}
	}

	return user, nil
}

// UpdateProfile refreshes the profile of an existing user
func (s *userService) UpdateProfile(ctx context.Context, userID int64, identity *models.Identity, refreshToken string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.applyIdentity(ctx, user, identity, refreshToken); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid user ID: %d", id)
	}
	return s.users.GetByID(ctx, id)
}

func (s *userService) createUser(ctx context.Context, email string) (*models.User, error) {
	password, err := randomPassword(passwordLength)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Login:        email,
		Email:        email,
		PasswordHash: string(hash),
		RegisteredAt: s.now().UTC(),
		Roles:        models.NewRoleSet(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   email,
	}).Info("Created user")
	return user, nil
}

func (s *userService) applyIdentity(ctx context.Context, user *models.User, identity *models.Identity, refreshToken string) error {
	user.ApplyIdentity(identity, refreshToken)
	return s.users.Update(ctx, user)
}

// saveProfile stores the identity and sets the roles of user to exactly
// desired in one step
func (s *userService) saveProfile(ctx context.Context, user *models.User, identity *models.Identity, refreshToken string, desired models.RoleSet) error {
	current := user.Roles
	if current == nil {
		current = models.NewRoleSet()
	}
	toAdd, toRemove := models.Reconcile(current, desired)

	user.ApplyIdentity(identity, refreshToken)
	if err := s.users.SaveProfile(ctx, user, toAdd, toRemove); err != nil {
		return err
	}

	if len(toAdd) > 0 || len(toRemove) > 0 {
		s.logger.WithFields(logrus.Fields{
			"user_id": user.ID,
			"added":   toAdd,
			"removed": toRemove,
		}).Info("Updated user roles")
	}

	user.Roles = models.NewRoleSet(desired.Sorted()...)
	return nil
}

func randomPassword(n int) (string, error) {
	max := big.NewInt(int64(len(passwordAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		b[i] = passwordAlphabet[idx.Int64()]
	}
	return string(b), nil
}
