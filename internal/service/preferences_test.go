package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestPreferencesService(t *testing.T) (PreferencesService, *mocks.MockPreferencesRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockPreferencesRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	return NewPreferencesService(repoMock, logger), repoMock
}

func TestToggleHighContrast(t *testing.T) {
	service, repoMock := newTestPreferencesService(t)
	ctx := context.Background()

	repoMock.EXPECT().Get(ctx).Return(models.DefaultThemePreferences(), nil).Times(1)
	repoMock.EXPECT().Save(ctx, models.ThemePreferences{
		Mode:         models.ThemeHighContrast,
		HighContrast: true,
		FontScale:    1.0,
	}).Return(nil).Times(1)

	prefs, err := service.ToggleHighContrast(ctx)
	require.NoError(t, err)
	assert.True(t, prefs.HighContrast)
	assert.Equal(t, models.ThemeHighContrast, prefs.Mode)
}

func TestToggleHighContrast_Off(t *testing.T) {
	service, repoMock := newTestPreferencesService(t)
	ctx := context.Background()

	repoMock.EXPECT().Get(ctx).
		Return(models.ThemePreferences{Mode: models.ThemeHighContrast, HighContrast: true, FontScale: 1.2}, nil)
	repoMock.EXPECT().Save(ctx, gomock.Any()).Return(nil)

	prefs, err := service.ToggleHighContrast(ctx)
	require.NoError(t, err)
	assert.False(t, prefs.HighContrast)
	assert.Equal(t, models.ThemeLight, prefs.Mode)
	assert.Equal(t, 1.2, prefs.FontScale)
}

func TestToggleTheme_DisablesHighContrast(t *testing.T) {
	service, repoMock := newTestPreferencesService(t)
	ctx := context.Background()

	repoMock.EXPECT().Get(ctx).
		Return(models.ThemePreferences{Mode: models.ThemeLight, HighContrast: true, FontScale: 1.0}, nil)
	repoMock.EXPECT().Save(ctx, gomock.Any()).Return(nil)

	prefs, err := service.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, prefs.Mode)
	assert.False(t, prefs.HighContrast)
}

func TestSetFontScale_Clamped(t *testing.T) {
	service, repoMock := newTestPreferencesService(t)
	ctx := context.Background()

	repoMock.EXPECT().Get(ctx).Return(models.DefaultThemePreferences(), nil).Times(2)
	repoMock.EXPECT().Save(ctx, gomock.Any()).Return(nil).Times(2)

	prefs, err := service.SetFontScale(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, models.MaxFontScale, prefs.FontScale)

	prefs, err = service.SetFontScale(ctx, 0.1)
	require.NoError(t, err)
	assert.Equal(t, models.MinFontScale, prefs.FontScale)
}

func TestSetMode_Invalid(t *testing.T) {
	service, repoMock := newTestPreferencesService(t)

	repoMock.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.SetMode(context.Background(), "sepia")
	assert.ErrorIs(t, err, ErrInvalidThemeMode)
}

func TestFontScaleSteps(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		increase bool
		want     float64
	}{
		{"increase", 1.0, true, 1.1},
		{"increase clamps", 1.45, true, 1.5},
		{"increase at max", 1.5, true, 1.5},
		{"decrease", 1.2, false, 1.1},
		{"decrease clamps", 0.8, false, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repoMock := newTestPreferencesService(t)
			ctx := context.Background()

			repoMock.EXPECT().Get(ctx).Return(models.ThemePreferences{Mode: models.ThemeDark, FontScale: tt.current}, nil)
			repoMock.EXPECT().Save(ctx, models.ThemePreferences{Mode: models.ThemeDark, FontScale: tt.want}).Return(nil)

			var prefs models.ThemePreferences
			var err error
			if tt.increase {
				prefs, err = service.IncreaseFontScale(ctx)
			} else {
				prefs, err = service.DecreaseFontScale(ctx)
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, prefs.FontScale)
		})
	}
}
