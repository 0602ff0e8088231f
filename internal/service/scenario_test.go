package service_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/fyren/internal/config"
	"github.com/shenikar/fyren/internal/lockout"
	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/internal/repository"
	"github.com/shenikar/fyren/internal/service"
	"github.com/shenikar/fyren/internal/storage"
	"github.com/shenikar/fyren/internal/syncqueue"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	store     *storage.MemoryStore
	incidents service.IncidentService
	scheduler *syncqueue.TimerScheduler
}

// newTestApp собирает сервисы на настоящих репозиториях поверх хранилища в памяти
func newTestApp(t *testing.T, delay time.Duration) *testApp {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		SyncDelay:             delay,
		SyncTimeout:           time.Second,
		SyncMaxRetries:        1,
		NearbyMaxRadiusMeters: 50000,
	}

	store := storage.NewMemoryStore()
	incidentRepo := repository.NewIncidentRepository(store, logger)
	commentRepo := repository.NewCommentRepository(store, logger)

	syncer := service.NewSyncService(incidentRepo, logger)
	scheduler := syncqueue.NewTimerScheduler(syncqueue.NewDispatcher(syncer, logger, cfg), logger)
	t.Cleanup(scheduler.Stop)

	return &testApp{
		store:     store,
		incidents: service.NewIncidentService(incidentRepo, commentRepo, scheduler, logger, cfg),
		scheduler: scheduler,
	}
}

func TestScenario_CreateThenSynced(t *testing.T) {
	app := newTestApp(t, 50*time.Millisecond)
	ctx := context.Background()

	incident := &models.Incident{Title: "Incêndio", Description: "Fumaça no galpão"}
	require.NoError(t, app.incidents.CreateIncident(ctx, incident))

	stored, err := app.incidents.GetIncident(ctx, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SyncPending, stored.SyncStatus)
	assert.Len(t, stored.Timeline, 1)

	require.Eventually(t, func() bool {
		current, err := app.incidents.GetIncident(ctx, incident.ID)
		return err == nil && current.SyncStatus == models.SyncSynced
	}, 2*time.Second, 10*time.Millisecond)

	synced, err := app.incidents.GetIncident(ctx, incident.ID)
	require.NoError(t, err)
	require.Len(t, synced.Timeline, 2)
	assert.Equal(t, models.EventTitleSynced, synced.Timeline[0].Title)
	assert.Equal(t, models.EventTitleCreated, synced.Timeline[1].Title)
}

func TestScenario_EditBeforeSyncKeepsSingleSyncEvent(t *testing.T) {
	app := newTestApp(t, 80*time.Millisecond)
	ctx := context.Background()

	incident := &models.Incident{Title: "Alagamento"}
	require.NoError(t, app.incidents.CreateIncident(ctx, incident))

	title := "Alagamento na avenida"
	_, err := app.incidents.UpdateIncident(ctx, incident.ID, models.IncidentPatch{Title: &title})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, err := app.incidents.GetIncident(ctx, incident.ID)
		return err == nil && current.SyncStatus == models.SyncSynced
	}, 2*time.Second, 10*time.Millisecond)

	// Даем возможной устаревшей задаче сработать
	time.Sleep(150 * time.Millisecond)

	synced, err := app.incidents.GetIncident(ctx, incident.ID)
	require.NoError(t, err)
	syncEvents := 0
	for _, event := range synced.Timeline {
		if event.Title == models.EventTitleSynced {
			syncEvents++
		}
	}
	assert.Equal(t, 1, syncEvents)
	assert.Len(t, synced.Timeline, 3)
}

func TestScenario_IdsAreDistinct(t *testing.T) {
	app := newTestApp(t, time.Hour)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		incident := &models.Incident{Title: "x"}
		require.NoError(t, app.incidents.CreateIncident(ctx, incident))
		_, dup := seen[incident.ID]
		require.False(t, dup, "duplicate id %s", incident.ID)
		seen[incident.ID] = struct{}{}
	}

	all, err := app.incidents.ListIncidents(ctx, models.IncidentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

func TestScenario_UpdateMissingLeavesStorageUntouched(t *testing.T) {
	app := newTestApp(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, app.incidents.CreateIncident(ctx, &models.Incident{Title: "x"}))
	before, err := app.store.Get(ctx, storage.KeyIncidents)
	require.NoError(t, err)

	title := "y"
	_, err = app.incidents.UpdateIncident(ctx, "nonexistent", models.IncidentPatch{Title: &title})
	assert.ErrorIs(t, err, models.ErrIncidentNotFound)

	after, err := app.store.Get(ctx, storage.KeyIncidents)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestScenario_UpdateForcesPendingSync(t *testing.T) {
	app := newTestApp(t, 30*time.Millisecond)
	ctx := context.Background()

	incident := &models.Incident{Title: "x"}
	require.NoError(t, app.incidents.CreateIncident(ctx, incident))
	require.Eventually(t, func() bool {
		current, err := app.incidents.GetIncident(ctx, incident.ID)
		return err == nil && current.SyncStatus == models.SyncSynced
	}, 2*time.Second, 10*time.Millisecond)

	app.scheduler.Stop()

	status := models.StatusResolved
	updated, err := app.incidents.UpdateIncident(ctx, incident.ID, models.IncidentPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.SyncPending, updated.SyncStatus)
	assert.Equal(t, models.EventTitleStatusChanged, updated.Timeline[0].Title)
}

func TestScenario_LoginPersistsSession(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	store := storage.NewMemoryStore()
	sessions := repository.NewSessionRepository(store, logger)
	users := repository.NewUserRepository(store, logger)

	auth := service.NewAuthService(
		sessions,
		repository.NewRevokedTokenRepository(store, logger),
		service.NewDirectoryResolver(users),
		passwordFunc(func(p string) bool { return p == "123456" }),
		lockout.NewTracker(3, 30*time.Second),
		service.LockoutScopeGlobal,
		logger,
	)
	ctx := context.Background()

	user, err := auth.Login(ctx, "chief@email.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, models.RoleChief, user.Role)

	current, err := auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, current)

	onboarded, err := auth.IsOnboarded(ctx)
	require.NoError(t, err)
	assert.True(t, onboarded)

	session := models.SessionToken{ID: "tok-1", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, auth.Logout(ctx, session))
	current, err = auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	revoked, err := auth.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestScenario_ConcurrentPreferenceToggles(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	prefs := service.NewPreferencesService(repository.NewPreferencesRepository(storage.NewMemoryStore(), logger), logger)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := prefs.ToggleTheme(ctx)
			assert.NoError(t, err)
		}()
	}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := prefs.IncreaseFontScale(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Четное число переключений возвращает светлую тему, ни одно изменение не теряется
	current, err := prefs.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, current.Mode)
	assert.Equal(t, 1.5, current.FontScale)
}

type passwordFunc func(string) bool

func (f passwordFunc) Verify(password string) bool { return f(password) }
