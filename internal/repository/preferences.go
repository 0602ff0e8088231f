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

type PreferencesRepository struct {
	store  storage.Store
	logger *logrus.Logger
}

func NewPreferencesRepository(store storage.Store, logger *logrus.Logger) service.PreferencesRepository {
	return &PreferencesRepository{store: store, logger: logger}
}

// Get возвращает сохраненные настройки темы или значения по умолчанию
func (r *PreferencesRepository) Get(ctx context.Context) (models.ThemePreferences, error) {
	prefs := models.DefaultThemePreferences()

	raw, err := r.store.Get(ctx, storage.KeyThemePreferred)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			r.logger.WithError(err).Error("Failed to load theme preferences, using defaults")
		}
		return prefs, nil
	}

	if err := json.Unmarshal(raw, &prefs); err != nil {
		r.logger.WithError(err).Error("Failed to decode theme preferences, using defaults")
		return models.DefaultThemePreferences(), nil
	}
	if !prefs.Mode.Valid() {
		prefs.Mode = models.ThemeLight
	}
	if prefs.FontScale == 0 {
		prefs.FontScale = models.DefaultFontScale
	}
	prefs.FontScale = models.ClampFontScale(prefs.FontScale)
	return prefs, nil
}

func (r *PreferencesRepository) Save(ctx context.Context, prefs models.ThemePreferences) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal theme preferences: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeyThemePreferred, payload); err != nil {
		return fmt.Errorf("failed to save theme preferences: %w", err)
	}
	return nil
}
