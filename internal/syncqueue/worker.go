package syncqueue

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/fyren/internal/models"
	"github.com/sirupsen/logrus"
)

const workerBatchSize = 20

// SyncWorker забирает созревшие задачи из Redis и передает их Dispatcher
type SyncWorker struct {
	redisClient  *redis.Client
	dispatcher   *Dispatcher
	logger       *logrus.Logger
	pollInterval time.Duration
	done         chan struct{}
}

func NewSyncWorker(redisClient *redis.Client, dispatcher *Dispatcher, logger *logrus.Logger, pollInterval time.Duration) *SyncWorker {
	return &SyncWorker{
		redisClient:  redisClient,
		dispatcher:   dispatcher,
		logger:       logger,
		pollInterval: pollInterval,
		done:         make(chan struct{}),
	}
}

// Start запускает горутину опроса очереди
func (w *SyncWorker) Start(ctx context.Context) {
	w.logger.Info("Starting sync worker...")
	go func() {
		defer close(w.done)
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping sync worker.")
				return
			case <-ticker.C:
				w.poll(ctx)
			}
		}
	}()
}

// Done закрывается после остановки горутины
func (w *SyncWorker) Done() <-chan struct{} {
	return w.done
}

func (w *SyncWorker) poll(ctx context.Context) {
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	members, err := w.redisClient.ZRangeByScore(ctx, syncQueueKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   now,
		Count: workerBatchSize,
	}).Result()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			w.logger.WithError(err).Error("Failed to read due sync tasks from Redis")
		}
		return
	}

	for _, member := range members {
		// ZREM служит захватом задачи: если другой воркер успел раньше, пропускаем
		removed, err := w.redisClient.ZRem(ctx, syncQueueKey, member).Result()
		if err != nil {
			w.logger.WithError(err).Error("Failed to claim sync task")
			continue
		}
		if removed == 0 {
			continue
		}

		var task models.SyncTask
		if err := json.Unmarshal([]byte(member), &task); err != nil {
			w.logger.WithError(err).Error("Failed to unmarshal sync task from Redis")
			continue
		}

		if err := w.dispatcher.Dispatch(ctx, task); err != nil {
			w.logger.WithError(err).WithField("incident_id", task.IncidentID).Error("Sync task failed")
		}
	}
}
