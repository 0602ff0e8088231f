package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestSyncService(t *testing.T) (*syncService, *mocks.MockIncidentRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	svc := NewSyncService(repoMock, logger).(*syncService)
	svc.now = func() time.Time { return fixedNow }
	return svc, repoMock
}

func TestCompleteSync_MarksSynced(t *testing.T) {
	service, repoMock := newTestSyncService(t)
	ctx := context.Background()
	existing := &models.Incident{
		ID:         "inc-1",
		SyncStatus: models.SyncPending,
		Version:    1,
		Timeline:   []models.TimelineEvent{{ID: "e1", Title: models.EventTitleCreated}},
	}

	repoMock.EXPECT().Modify(ctx, "inc-1", gomock.Any()).DoAndReturn(modifyWith(existing)).Times(1)

	applied, err := service.CompleteSync(ctx, models.SyncTask{IncidentID: "inc-1", Version: 1})

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, models.SyncSynced, existing.SyncStatus)
	require.Len(t, existing.Timeline, 2)
	assert.Equal(t, models.EventTitleSynced, existing.Timeline[0].Title)
	assert.Equal(t, 1, existing.Version)
}

func TestCompleteSync_StaleVersionDropped(t *testing.T) {
	service, repoMock := newTestSyncService(t)
	ctx := context.Background()
	existing := &models.Incident{ID: "inc-1", SyncStatus: models.SyncPending, Version: 2}

	repoMock.EXPECT().Modify(ctx, "inc-1", gomock.Any()).DoAndReturn(modifyWith(existing)).Times(1)

	applied, err := service.CompleteSync(ctx, models.SyncTask{IncidentID: "inc-1", Version: 1})

	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, models.SyncPending, existing.SyncStatus)
	assert.Empty(t, existing.Timeline)
}

func TestCompleteSync_AlreadySynced(t *testing.T) {
	service, repoMock := newTestSyncService(t)
	ctx := context.Background()
	existing := &models.Incident{ID: "inc-1", SyncStatus: models.SyncSynced, Version: 1}

	repoMock.EXPECT().Modify(ctx, "inc-1", gomock.Any()).DoAndReturn(modifyWith(existing)).Times(1)

	applied, err := service.CompleteSync(ctx, models.SyncTask{IncidentID: "inc-1", Version: 1})
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestCompleteSync_MissingIncident(t *testing.T) {
	service, repoMock := newTestSyncService(t)
	ctx := context.Background()

	repoMock.EXPECT().Modify(ctx, "gone", gomock.Any()).Return(nil, models.ErrIncidentNotFound).Times(1)

	applied, err := service.CompleteSync(ctx, models.SyncTask{IncidentID: "gone", Version: 1})
	require.NoError(t, err)
	assert.False(t, applied)
}
