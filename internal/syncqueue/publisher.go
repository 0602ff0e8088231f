package syncqueue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/fyren/internal/models"
)

const (
	syncQueueKey = "fyren:sync_tasks"
)

// RedisSyncPublisher кладет задачи в sorted set Redis; score - время готовности в миллисекундах
type RedisSyncPublisher struct {
	redisClient *redis.Client
}

func NewRedisSyncPublisher(client *redis.Client) *RedisSyncPublisher {
	return &RedisSyncPublisher{
		redisClient: client,
	}
}

// Schedule публикует задачу синхронизации в отложенную очередь
func (p *RedisSyncPublisher) Schedule(ctx context.Context, task models.SyncTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal sync task: %w", err)
	}

	z := redis.Z{Score: float64(task.DueAt.UnixMilli()), Member: payload}
	if err := p.redisClient.ZAdd(ctx, syncQueueKey, z).Err(); err != nil {
		return fmt.Errorf("failed to publish sync task to Redis: %w", err)
	}
	return nil
}
