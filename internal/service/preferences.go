package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shenikar/fyren/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=preferences.go -destination=mocks/preferences_mock.go -package=mocks

var ErrInvalidThemeMode = errors.New("invalid theme mode")

type PreferencesRepository interface {
	Get(ctx context.Context) (models.ThemePreferences, error)
	Save(ctx context.Context, prefs models.ThemePreferences) error
}

type PreferencesService interface {
	GetPreferences(ctx context.Context) (models.ThemePreferences, error)
	UpdatePreferences(ctx context.Context, prefs models.ThemePreferences) (models.ThemePreferences, error)
	SetMode(ctx context.Context, mode models.ThemeMode) (models.ThemePreferences, error)
	SetFontScale(ctx context.Context, scale float64) (models.ThemePreferences, error)
	IncreaseFontScale(ctx context.Context) (models.ThemePreferences, error)
	DecreaseFontScale(ctx context.Context) (models.ThemePreferences, error)
	ToggleTheme(ctx context.Context) (models.ThemePreferences, error)
	ToggleHighContrast(ctx context.Context) (models.ThemePreferences, error)
}

// preferencesService сериализует чтение-изменение-запись настроек
type preferencesService struct {
	mu     sync.Mutex
	repo   PreferencesRepository
	logger *logrus.Logger
}

func NewPreferencesService(repo PreferencesRepository, logger *logrus.Logger) PreferencesService {
	return &preferencesService{repo: repo, logger: logger}
}

func (s *preferencesService) GetPreferences(ctx context.Context) (models.ThemePreferences, error) {
	return s.repo.Get(ctx)
}

// UpdatePreferences заменяет настройки целиком; масштаб шрифта ограничивается допустимым диапазоном
func (s *preferencesService) UpdatePreferences(ctx context.Context, prefs models.ThemePreferences) (models.ThemePreferences, error) {
	if !prefs.Mode.Valid() {
		return models.ThemePreferences{}, fmt.Errorf("service: %w: %s", ErrInvalidThemeMode, prefs.Mode)
	}
	if prefs.Mode == models.ThemeHighContrast {
		prefs.HighContrast = true
	}
	prefs.FontScale = models.ClampFontScale(prefs.FontScale)

	s.mu.Lock()
	defer s.mu.Unlock()
	return prefs, s.save(ctx, prefs)
}

// SetMode меняет режим; выбор highContrast включает и флаг контраста
func (s *preferencesService) SetMode(ctx context.Context, mode models.ThemeMode) (models.ThemePreferences, error) {
	if !mode.Valid() {
		return models.ThemePreferences{}, fmt.Errorf("service: %w: %s", ErrInvalidThemeMode, mode)
	}
	return s.mutate(ctx, func(p *models.ThemePreferences) {
		p.Mode = mode
		if mode == models.ThemeHighContrast {
			p.HighContrast = true
		}
	})
}

func (s *preferencesService) SetFontScale(ctx context.Context, scale float64) (models.ThemePreferences, error) {
	return s.mutate(ctx, func(p *models.ThemePreferences) {
		p.FontScale = models.ClampFontScale(scale)
	})
}

func (s *preferencesService) IncreaseFontScale(ctx context.Context) (models.ThemePreferences, error) {
	return s.mutate(ctx, func(p *models.ThemePreferences) {
		p.FontScale = models.StepFontScale(p.FontScale, 1)
	})
}

func (s *preferencesService) DecreaseFontScale(ctx context.Context) (models.ThemePreferences, error) {
	return s.mutate(ctx, func(p *models.ThemePreferences) {
		p.FontScale = models.StepFontScale(p.FontScale, -1)
	})
}

// ToggleTheme переключает light/dark и выключает высокий контраст
func (s *preferencesService) ToggleTheme(ctx context.Context) (models.ThemePreferences, error) {
	return s.mutate(ctx, func(p *models.ThemePreferences) {
		if p.Mode == models.ThemeLight {
			p.Mode = models.ThemeDark
		} else {
			p.Mode = models.ThemeLight
		}
		p.HighContrast = false
	})
}

func (s *preferencesService) ToggleHighContrast(ctx context.Context) (models.ThemePreferences, error) {
	return s.mutate(ctx, func(p *models.ThemePreferences) {
		p.HighContrast = !p.HighContrast
		if p.HighContrast {
			p.Mode = models.ThemeHighContrast
		} else {
			p.Mode = models.ThemeLight
		}
	})
}

func (s *preferencesService) mutate(ctx context.Context, fn func(p *models.ThemePreferences)) (models.ThemePreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.repo.Get(ctx)
	if err != nil {
		return models.ThemePreferences{}, fmt.Errorf("service: could not load preferences: %w", err)
	}
	fn(&prefs)
	return prefs, s.save(ctx, prefs)
}

func (s *preferencesService) save(ctx context.Context, prefs models.ThemePreferences) error {
	if err := s.repo.Save(ctx, prefs); err != nil {
		s.logger.WithError(err).Error("Failed to save theme preferences")
		return fmt.Errorf("service: could not save preferences: %w", err)
	}
	return nil
}
