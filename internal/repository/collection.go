package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shenikar/fyren/internal/storage"
	"github.com/sirupsen/logrus"
)

// collection - JSON-массив записей, хранящийся целиком под одним ключом.
// Каждая мутация читает весь массив и перезаписывает его полностью.
type collection[T any] struct {
	store  storage.Store
	key    string
	logger *logrus.Logger
}

// readAll читает коллекцию для отображения: любые ошибки логируются, результат - пустой список
func (c collection[T]) readAll(ctx context.Context) []*T {
	items, err := c.load(ctx)
	if err != nil {
		c.logger.WithError(err).WithField("key", c.key).Error("Failed to read collection, returning empty list")
		return make([]*T, 0)
	}
	return items
}

// load читает коллекцию для последующей перезаписи.
// Отсутствие ключа и поврежденный JSON дают пустой список, ошибка хранилища возвращается.
func (c collection[T]) load(ctx context.Context) ([]*T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return make([]*T, 0), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", c.key, err)
	}

	items := make([]*T, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.WithError(err).WithField("key", c.key).Error("Failed to decode collection, treating as empty")
		return make([]*T, 0), nil
	}
	return items, nil
}

func (c collection[T]) save(ctx context.Context, items []*T) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, payload); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.key, err)
	}
	return nil
}
