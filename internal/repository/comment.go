package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/internal/service"
	"github.com/shenikar/fyren/internal/storage"
	"github.com/sirupsen/logrus"
)

type CommentRepository struct {
	mu       sync.Mutex
	comments collection[models.Comment]
	store    storage.Store
}

func NewCommentRepository(store storage.Store, logger *logrus.Logger) service.CommentRepository {
	return &CommentRepository{
		comments: collection[models.Comment]{store: store, key: storage.KeyComments, logger: logger},
		store:    store,
	}
}

// Add присваивает id и дату и добавляет комментарий в конец коллекции
func (r *CommentRepository) Add(ctx context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	comments, err := r.comments.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}

	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()

	stored := *comment
	comments = append(comments, &stored)
	if err := r.comments.save(ctx, comments); err != nil {
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) List(ctx context.Context) ([]*models.Comment, error) {
	return r.comments.readAll(ctx), nil
}

// ListByIncident возвращает комментарии инцидента в порядке добавления
func (r *CommentRepository) ListByIncident(ctx context.Context, incidentID string) ([]*models.Comment, error) {
	result := make([]*models.Comment, 0)
	for _, comment := range r.comments.readAll(ctx) {
		if comment.IncidentID == incidentID {
			result = append(result, comment)
		}
	}
	return result, nil
}

func (r *CommentRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Delete(ctx, storage.KeyComments); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}
