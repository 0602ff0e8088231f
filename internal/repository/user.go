package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/internal/service"
	"github.com/shenikar/fyren/internal/storage"
	"github.com/sirupsen/logrus"
)

type UserRepository struct {
	mu     sync.Mutex
	users  collection[models.AppUser]
	store  storage.Store
	logger *logrus.Logger
}

func NewUserRepository(store storage.Store, logger *logrus.Logger) service.UserRepository {
	return &UserRepository{
		users:  collection[models.AppUser]{store: store, key: storage.KeyUsers, logger: logger},
		store:  store,
		logger: logger,
	}
}

// defaultUsers - учетные записи, которыми заполняется пустое хранилище, по одной на роль
func defaultUsers(now time.Time) []*models.AppUser {
	return []*models.AppUser{
		{ID: "1", Name: "João Silva", Email: "user@email.com", Role: models.RoleUser, Active: true, CreatedAt: now},
		{ID: "2", Name: "Maria Santos", Email: "chief@email.com", Role: models.RoleChief, Active: true, CreatedAt: now},
		{ID: "3", Name: "Admin Fyren", Email: "admin@email.com", Role: models.RoleAdmin, Active: true, CreatedAt: now},
	}
}

// List возвращает пользователей. При первом обращении к пустому хранилищу
// коллекция заполняется пользователями по умолчанию.
func (r *UserRepository) List(ctx context.Context) ([]*models.AppUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadOrSeed(ctx)
	if err != nil {
		r.logger.WithError(err).Error("Failed to read users, returning empty list")
		return make([]*models.AppUser, 0), nil
	}
	return users, nil
}

// loadOrSeed вызывается под r.mu
func (r *UserRepository) loadOrSeed(ctx context.Context) ([]*models.AppUser, error) {
	_, err := r.store.Get(ctx, storage.KeyUsers)
	switch {
	case err == nil:
		return r.users.load(ctx)
	case errors.Is(err, storage.ErrKeyNotFound):
		users := defaultUsers(time.Now().UTC())
		if err := r.users.save(ctx, users); err != nil {
			return nil, fmt.Errorf("failed to seed users: %w", err)
		}
		r.logger.WithField("count", len(users)).Info("Seeded default users")
		return users, nil
	default:
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
}

// Add присваивает id и дату и добавляет пользователя в конец коллекции
func (r *UserRepository) Add(ctx context.Context, user *models.AppUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadOrSeed(ctx)
	if err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	stored := *user
	users = append(users, &stored)
	if err := r.users.save(ctx, users); err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}
	return nil
}

// Update сливает переданные поля с пользователем. Если пользователя нет, хранилище не меняется.
func (r *UserRepository) Update(ctx context.Context, id string, patch models.AppUserPatch) (*models.AppUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadOrSeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	for _, user := range users {
		if user.ID != id {
			continue
		}
		patch.Apply(user)
		if err := r.users.save(ctx, users); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		return user, nil
	}
	return nil, fmt.Errorf("user with id %s not found for update: %w", id, models.ErrUserNotFound)
}

// FindByEmail ищет пользователя по email без учета регистра
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.AppUser, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, models.ErrUserNotFound)
}
