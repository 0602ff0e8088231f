package syncqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/fyren/internal/config"
	"github.com/shenikar/fyren/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func TestRedisSyncPublisher_Schedule(t *testing.T) {
	mr, client := newTestRedis(t)
	publisher := NewRedisSyncPublisher(client)
	due := time.Date(2024, 5, 10, 12, 0, 3, 0, time.UTC)
	task := models.SyncTask{IncidentID: "inc-1", Version: 2, DueAt: due}

	require.NoError(t, publisher.Schedule(context.Background(), task))

	members, err := mr.ZMembers(syncQueueKey)
	require.NoError(t, err)
	require.Len(t, members, 1)

	var stored models.SyncTask
	require.NoError(t, json.Unmarshal([]byte(members[0]), &stored))
	assert.Equal(t, "inc-1", stored.IncidentID)
	assert.Equal(t, 2, stored.Version)

	score, err := mr.ZScore(syncQueueKey, members[0])
	require.NoError(t, err)
	assert.Equal(t, float64(due.UnixMilli()), score)
}

func TestSyncWorker_PollDispatchesOnlyDueTasks(t *testing.T) {
	mr, client := newTestRedis(t)
	dispatcher, syncMock := newTestDispatcher(t, &config.Config{})
	publisher := NewRedisSyncPublisher(client)
	worker := NewSyncWorker(client, dispatcher, silentLogger(), time.Hour)
	ctx := context.Background()

	due := models.SyncTask{IncidentID: "inc-1", Version: 1, DueAt: time.Now().Add(-time.Second)}
	later := models.SyncTask{IncidentID: "inc-2", Version: 1, DueAt: time.Now().Add(time.Hour)}
	require.NoError(t, publisher.Schedule(ctx, due))
	require.NoError(t, publisher.Schedule(ctx, later))

	syncMock.EXPECT().Snapshot(ctx, "inc-1").Return(pendingIncident(1), nil).Times(1)
	syncMock.EXPECT().CompleteSync(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, task models.SyncTask) (bool, error) {
			assert.Equal(t, "inc-1", task.IncidentID)
			return true, nil
		}).Times(1)

	worker.poll(ctx)

	members, err := mr.ZMembers(syncQueueKey)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Contains(t, members[0], `"incident_id":"inc-2"`)
}

func TestSyncWorker_ConcurrentWorkersClaimEachTaskOnce(t *testing.T) {
	mr, client := newTestRedis(t)
	dispatcher, syncMock := newTestDispatcher(t, &config.Config{})
	publisher := NewRedisSyncPublisher(client)
	ctx := context.Background()

	const tasks = 10
	for i := 0; i < tasks; i++ {
		id := fmt.Sprintf("inc-%d", i)
		require.NoError(t, publisher.Schedule(ctx, models.SyncTask{IncidentID: id, Version: 1, DueAt: time.Now().Add(-time.Second)}))
		syncMock.EXPECT().Snapshot(gomock.Any(), id).
			Return(&models.Incident{ID: id, Version: 1, SyncStatus: models.SyncPending}, nil).
			Times(1)
	}
	syncMock.EXPECT().CompleteSync(gomock.Any(), gomock.Any()).Return(true, nil).Times(tasks)

	workers := []*SyncWorker{
		NewSyncWorker(client, dispatcher, silentLogger(), time.Hour),
		NewSyncWorker(client, dispatcher, silentLogger(), time.Hour),
	}
	var wg sync.WaitGroup
	for _, w := range workers {
		wg.Add(1)
		go func(w *SyncWorker) {
			defer wg.Done()
			w.poll(ctx)
		}(w)
	}
	wg.Wait()

	assert.False(t, mr.Exists(syncQueueKey))
}

func TestSyncWorker_DropsUndecodableTask(t *testing.T) {
	mr, client := newTestRedis(t)
	dispatcher, syncMock := newTestDispatcher(t, &config.Config{})
	worker := NewSyncWorker(client, dispatcher, silentLogger(), time.Hour)

	_, err := mr.ZAdd(syncQueueKey, 1, "{broken")
	require.NoError(t, err)
	syncMock.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Times(0)

	worker.poll(context.Background())

	assert.False(t, mr.Exists(syncQueueKey))
}

func TestSyncWorker_StopsOnContextCancel(t *testing.T) {
	_, client := newTestRedis(t)
	dispatcher, _ := newTestDispatcher(t, &config.Config{})
	worker := NewSyncWorker(client, dispatcher, silentLogger(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	cancel()

	select {
	case <-worker.Done():
	case <-time.After(time.Second):
		t.Fatal("sync worker did not stop")
	}
}
