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

type IncidentRepository struct {
	mu        sync.Mutex
	incidents collection[models.Incident]
	store     storage.Store
}

func NewIncidentRepository(store storage.Store, logger *logrus.Logger) service.IncidentRepository {
	return &IncidentRepository{
		incidents: collection[models.Incident]{store: store, key: storage.KeyIncidents, logger: logger},
		store:     store,
	}
}

// Create присваивает инциденту id и добавляет его в начало коллекции
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	incidents, err := r.incidents.load(ctx)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}

	incident.ID = uuid.NewString()
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = time.Now().UTC()
	}

	stored := *incident
	incidents = append([]*models.Incident{&stored}, incidents...)
	if err := r.incidents.save(ctx, incidents); err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// List возвращает все инциденты в порядке хранения (новые первыми)
func (r *IncidentRepository) List(ctx context.Context) ([]*models.Incident, error) {
	return r.incidents.readAll(ctx), nil
}

// GetByID возвращает инцидент по id
func (r *IncidentRepository) GetByID(ctx context.Context, id string) (*models.Incident, error) {
	for _, incident := range r.incidents.readAll(ctx) {
		if incident.ID == id {
			return incident, nil
		}
	}
	return nil, fmt.Errorf("incident with id %s: %w", id, models.ErrIncidentNotFound)
}

// Modify выполняет read-modify-write одной записи под блокировкой коллекции.
// Если fn вернул false, коллекция не перезаписывается.
// Если записи нет, хранилище не трогается и возвращается ErrIncidentNotFound.
func (r *IncidentRepository) Modify(ctx context.Context, id string, fn func(incident *models.Incident) (bool, error)) (*models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	incidents, err := r.incidents.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to modify incident: %w", err)
	}

	for _, incident := range incidents {
		if incident.ID != id {
			continue
		}

		changed, err := fn(incident)
		if err != nil {
			return nil, err
		}
		if changed {
			if err := r.incidents.save(ctx, incidents); err != nil {
				return nil, fmt.Errorf("failed to modify incident: %w", err)
			}
		}
		return incident, nil
	}
	return nil, fmt.Errorf("incident with id %s not found for update: %w", id, models.ErrIncidentNotFound)
}

// DeleteAll удаляет всю коллекцию инцидентов
func (r *IncidentRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Delete(ctx, storage.KeyIncidents); err != nil {
		return fmt.Errorf("failed to delete incidents: %w", err)
	}
	return nil
}
