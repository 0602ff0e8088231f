package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/fyren/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=user.go -destination=mocks/user_mock.go -package=mocks

var ErrInvalidRole = errors.New("invalid role")

type UserRepository interface {
	List(ctx context.Context) ([]*models.AppUser, error)
	Add(ctx context.Context, user *models.AppUser) error
	Update(ctx context.Context, id string, patch models.AppUserPatch) (*models.AppUser, error)
	FindByEmail(ctx context.Context, email string) (*models.AppUser, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]*models.AppUser, error)
	CreateUser(ctx context.Context, user *models.AppUser) error
	UpdateUser(ctx context.Context, id string, patch models.AppUserPatch) (*models.AppUser, error)
}

type userService struct {
	repo   UserRepository
	logger *logrus.Logger
}

func NewUserService(repo UserRepository, logger *logrus.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) ListUsers(ctx context.Context) ([]*models.AppUser, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list users")
		return nil, fmt.Errorf("service: could not list users: %w", err)
	}
	return users, nil
}

func (s *userService) CreateUser(ctx context.Context, user *models.AppUser) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "CreateUser",
		"email":   user.Email,
	})

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if !user.Role.Valid() {
		return fmt.Errorf("service: could not create user: %w: %s", ErrInvalidRole, user.Role)
	}

	if err := s.repo.Add(ctx, user); err != nil {
		log.WithError(err).Error("Failed to add user in repository")
		return fmt.Errorf("service: could not create user: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User created")
	return nil
}

// UpdateUser - единственный способ сменить роль пользователя после создания
func (s *userService) UpdateUser(ctx context.Context, id string, patch models.AppUserPatch) (*models.AppUser, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "UpdateUser",
		"user_id": id,
	})

	if patch.Role != nil && !patch.Role.Valid() {
		return nil, fmt.Errorf("service: could not update user: %w: %s", ErrInvalidRole, *patch.Role)
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.WithError(err).Warn("Attempted to update a non-existent user")
		} else {
			log.WithError(err).Error("Failed to update user in repository")
		}
		return nil, fmt.Errorf("service: could not update user: %w", err)
	}

	log.Info("User updated")
	return user, nil
}
