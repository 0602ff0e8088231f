package syncqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/fyren/internal/config"
	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestDispatcher(t *testing.T, cfg *config.Config) (*Dispatcher, *mocks.MockSyncService) {
	ctrl := gomock.NewController(t)
	syncMock := mocks.NewMockSyncService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	if cfg.SyncMaxRetries == 0 {
		cfg.SyncMaxRetries = 3
	}
	if cfg.SyncTimeout == 0 {
		cfg.SyncTimeout = time.Second
	}
	return NewDispatcher(syncMock, logger, cfg), syncMock
}

func pendingIncident(version int) *models.Incident {
	return &models.Incident{ID: "inc-1", Title: "Leak", Version: version, SyncStatus: models.SyncPending}
}

func TestDispatch_WithoutEndpoint_CompletesSync(t *testing.T) {
	dispatcher, syncMock := newTestDispatcher(t, &config.Config{})
	ctx := context.Background()
	task := models.SyncTask{IncidentID: "inc-1", Version: 1}

	syncMock.EXPECT().Snapshot(ctx, "inc-1").Return(pendingIncident(1), nil).Times(1)
	syncMock.EXPECT().CompleteSync(ctx, task).Return(true, nil).Times(1)

	require.NoError(t, dispatcher.Dispatch(ctx, task))
}

func TestDispatch_StaleVersion_Skips(t *testing.T) {
	dispatcher, syncMock := newTestDispatcher(t, &config.Config{})
	ctx := context.Background()
	task := models.SyncTask{IncidentID: "inc-1", Version: 1}

	syncMock.EXPECT().Snapshot(ctx, "inc-1").Return(pendingIncident(2), nil).Times(1)
	syncMock.EXPECT().CompleteSync(gomock.Any(), gomock.Any()).Times(0)

	require.NoError(t, dispatcher.Dispatch(ctx, task))
}

func TestDispatch_MissingIncident_Dropped(t *testing.T) {
	dispatcher, syncMock := newTestDispatcher(t, &config.Config{})
	ctx := context.Background()

	syncMock.EXPECT().Snapshot(ctx, "inc-1").Return(nil, models.ErrIncidentNotFound).Times(1)

	require.NoError(t, dispatcher.Dispatch(ctx, models.SyncTask{IncidentID: "inc-1", Version: 1}))
}

func TestDispatch_DeliversSignedPayload(t *testing.T) {
	var received []byte
	var signature string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received, _ = io.ReadAll(r.Body)
		signature = r.Header.Get(signatureHeader)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	dispatcher, syncMock := newTestDispatcher(t, &config.Config{
		SyncEndpointURL: server.URL,
		SyncSecret:      "secret",
	})
	ctx := context.Background()
	task := models.SyncTask{IncidentID: "inc-1", Version: 1}

	syncMock.EXPECT().Snapshot(ctx, "inc-1").Return(pendingIncident(1), nil).Times(1)
	syncMock.EXPECT().CompleteSync(ctx, task).Return(true, nil).Times(1)

	require.NoError(t, dispatcher.Dispatch(ctx, task))

	var got models.Incident
	require.NoError(t, json.Unmarshal(received, &got))
	assert.Equal(t, "inc-1", got.ID)
	assert.Equal(t, generateHMACSHA256(received, "secret"), signature)
}

func TestDispatch_RetriesThenFails_LeavesPending(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dispatcher, syncMock := newTestDispatcher(t, &config.Config{
		SyncEndpointURL: server.URL,
		SyncMaxRetries:  2,
		SyncBaseDelay:   time.Millisecond,
	})
	ctx := context.Background()

	syncMock.EXPECT().Snapshot(ctx, "inc-1").Return(pendingIncident(1), nil).Times(1)
	syncMock.EXPECT().CompleteSync(gomock.Any(), gomock.Any()).Times(0)

	err := dispatcher.Dispatch(ctx, models.SyncTask{IncidentID: "inc-1", Version: 1})
	require.Error(t, err)
	assert.ErrorContains(t, err, "after 2 attempts")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDispatch_RetrySucceeds(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	dispatcher, syncMock := newTestDispatcher(t, &config.Config{
		SyncEndpointURL: server.URL,
		SyncBaseDelay:   time.Millisecond,
	})
	ctx := context.Background()
	task := models.SyncTask{IncidentID: "inc-1", Version: 1}

	syncMock.EXPECT().Snapshot(ctx, "inc-1").Return(pendingIncident(1), nil).Times(1)
	syncMock.EXPECT().CompleteSync(ctx, task).Return(true, nil).Times(1)

	require.NoError(t, dispatcher.Dispatch(ctx, task))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
