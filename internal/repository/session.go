package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/internal/service"
	"github.com/shenikar/fyren/internal/storage"
	"github.com/sirupsen/logrus"
)

const onboardingDone = "true"

// SessionRepository хранит пользователя текущей сессии и флаг онбординга
type SessionRepository struct {
	store  storage.Store
	logger *logrus.Logger
}

func NewSessionRepository(store storage.Store, logger *logrus.Logger) service.SessionRepository {
	return &SessionRepository{store: store, logger: logger}
}

// GetCurrent возвращает пользователя сессии или nil, если сессии нет
func (r *SessionRepository) GetCurrent(ctx context.Context) (*models.User, error) {
	raw, err := r.store.Get(ctx, storage.KeyCurrentUser)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}

	user := &models.User{}
	if err := json.Unmarshal(raw, user); err != nil {
		r.logger.WithError(err).Error("Failed to decode current user, treating as logged out")
		return nil, nil
	}
	return user, nil
}

func (r *SessionRepository) SaveCurrent(ctx context.Context, user *models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal current user: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeyCurrentUser, payload); err != nil {
		return fmt.Errorf("failed to save current user: %w", err)
	}
	return nil
}

func (r *SessionRepository) ClearCurrent(ctx context.Context) error {
	if err := r.store.Delete(ctx, storage.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	return nil
}

func (r *SessionRepository) IsOnboarded(ctx context.Context) (bool, error) {
	raw, err := r.store.Get(ctx, storage.KeyOnboarding)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load onboarding flag: %w", err)
	}
	return string(raw) == onboardingDone, nil
}

func (r *SessionRepository) SetOnboarded(ctx context.Context) error {
	if err := r.store.Set(ctx, storage.KeyOnboarding, []byte(onboardingDone)); err != nil {
		return fmt.Errorf("failed to save onboarding flag: %w", err)
	}
	return nil
}
