package repository

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

// failingStore отдает ошибку на любое обращение
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("io error") }
func (failingStore) Set(context.Context, string, []byte) error   { return errors.New("io error") }
func (failingStore) Delete(context.Context, ...string) error     { return errors.New("io error") }

func TestIncidentRepository_CreatePrepends(t *testing.T) {
	repo := NewIncidentRepository(storage.NewMemoryStore(), newTestLogger())
	ctx := context.Background()

	first := &models.Incident{Title: "first"}
	second := &models.Incident{Title: "second"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.CreatedAt.IsZero())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Title)
	assert.Equal(t, "first", all[1].Title)
}

func TestIncidentRepository_CorruptDataReadsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, storage.KeyIncidents, []byte("{not json")))

	repo := NewIncidentRepository(store, newTestLogger())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = repo.GetByID(ctx, "any")
	assert.ErrorIs(t, err, models.ErrIncidentNotFound)
}

func TestIncidentRepository_ReadErrorIsSwallowed(t *testing.T) {
	repo := NewIncidentRepository(failingStore{}, newTestLogger())

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	err = repo.Create(context.Background(), &models.Incident{Title: "x"})
	assert.Error(t, err)
}

func TestIncidentRepository_Modify(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewIncidentRepository(store, newTestLogger())
	ctx := context.Background()

	incident := &models.Incident{Title: "old"}
	require.NoError(t, repo.Create(ctx, incident))

	updated, err := repo.Modify(ctx, incident.ID, func(i *models.Incident) (bool, error) {
		i.Title = "new"
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)

	stored, err := repo.GetByID(ctx, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", stored.Title)

	before, err := store.Get(ctx, storage.KeyIncidents)
	require.NoError(t, err)

	_, err = repo.Modify(ctx, incident.ID, func(i *models.Incident) (bool, error) {
		i.Title = "discarded"
		return false, nil
	})
	require.NoError(t, err)

	_, err = repo.Modify(ctx, "missing", func(*models.Incident) (bool, error) {
		t.Fatal("fn must not be called for a missing id")
		return false, nil
	})
	assert.ErrorIs(t, err, models.ErrIncidentNotFound)

	after, err := store.Get(ctx, storage.KeyIncidents)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestIncidentRepository_DeleteAllKeepsOtherKeys(t *testing.T) {
	store := storage.NewMemoryStore()
	logger := newTestLogger()
	incidents := NewIncidentRepository(store, logger)
	users := NewUserRepository(store, logger)
	ctx := context.Background()

	require.NoError(t, incidents.Create(ctx, &models.Incident{Title: "x"}))
	_, err := users.List(ctx)
	require.NoError(t, err)

	require.NoError(t, incidents.DeleteAll(ctx))

	all, err := incidents.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = store.Get(ctx, storage.KeyUsers)
	assert.NoError(t, err)
}

func TestCommentRepository_FIFO(t *testing.T) {
	repo := NewCommentRepository(storage.NewMemoryStore(), newTestLogger())
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &models.Comment{IncidentID: "A", Text: "c1"}))
	require.NoError(t, repo.Add(ctx, &models.Comment{IncidentID: "B", Text: "other"}))
	require.NoError(t, repo.Add(ctx, &models.Comment{IncidentID: "A", Text: "c2"}))

	forA, err := repo.ListByIncident(ctx, "A")
	require.NoError(t, err)
	require.Len(t, forA, 2)
	assert.Equal(t, "c1", forA[0].Text)
	assert.Equal(t, "c2", forA[1].Text)
	assert.NotEqual(t, forA[0].ID, forA[1].ID)

	none, err := repo.ListByIncident(ctx, "Z")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUserRepository_SeedOnce(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewUserRepository(store, newTestLogger())
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "João Silva", users[0].Name)
	assert.Equal(t, models.RoleUser, users[0].Role)
	assert.Equal(t, "Maria Santos", users[1].Name)
	assert.Equal(t, models.RoleChief, users[1].Role)
	assert.Equal(t, "Admin Fyren", users[2].Name)
	assert.Equal(t, models.RoleAdmin, users[2].Role)

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 3)

	// Пустая коллекция не заполняется повторно
	require.NoError(t, store.Set(ctx, storage.KeyUsers, []byte("[]")))
	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserRepository_AddAndUpdate(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewUserRepository(store, newTestLogger())
	ctx := context.Background()

	user := &models.AppUser{Name: "Ana", Email: "Ana@Email.com", Role: models.RoleUser, Active: true}
	require.NoError(t, repo.Add(ctx, user))
	assert.NotEmpty(t, user.ID)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 4)
	assert.Equal(t, "Ana", users[3].Name)

	active := false
	updated, err := repo.Update(ctx, user.ID, models.AppUserPatch{Active: &active})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, "Ana", updated.Name)

	found, err := repo.FindByEmail(ctx, "ana@email.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	before, err := store.Get(ctx, storage.KeyUsers)
	require.NoError(t, err)
	_, err = repo.Update(ctx, "missing", models.AppUserPatch{Active: &active})
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	after, err := store.Get(ctx, storage.KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = repo.FindByEmail(ctx, "nobody@email.com")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestSessionRepository(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewSessionRepository(store, newTestLogger())
	ctx := context.Background()

	current, err := repo.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	onboarded, err := repo.IsOnboarded(ctx)
	require.NoError(t, err)
	assert.False(t, onboarded)

	user := &models.User{ID: "u1", Name: "chief", Email: "chief@x.com", Role: models.RoleChief}
	require.NoError(t, repo.SaveCurrent(ctx, user))
	require.NoError(t, repo.SetOnboarded(ctx))

	current, err = repo.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, current)

	raw, err := store.Get(ctx, storage.KeyOnboarding)
	require.NoError(t, err)
	assert.Equal(t, "true", string(raw))

	require.NoError(t, repo.ClearCurrent(ctx))
	current, err = repo.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	require.NoError(t, store.Set(ctx, storage.KeyCurrentUser, []byte("garbage")))
	current, err = repo.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestPreferencesRepository(t *testing.T) {
	store := storage.NewMemoryStore()
	repo := NewPreferencesRepository(store, newTestLogger())
	ctx := context.Background()

	prefs, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultThemePreferences(), prefs)

	require.NoError(t, repo.Save(ctx, models.ThemePreferences{Mode: models.ThemeDark, FontScale: 1.3}))
	prefs, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, prefs.Mode)
	assert.Equal(t, 1.3, prefs.FontScale)

	require.NoError(t, store.Set(ctx, storage.KeyThemePreferred, []byte(`{"mode":"neon","fontScale":9}`)))
	prefs, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, prefs.Mode)
	assert.Equal(t, models.MaxFontScale, prefs.FontScale)
}
