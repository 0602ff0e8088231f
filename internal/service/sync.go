package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/fyren/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=sync.go -destination=mocks/sync_mock.go -package=mocks

// SyncService завершает отложенную синхронизацию инцидента
type SyncService interface {
	Snapshot(ctx context.Context, id string) (*models.Incident, error)
	CompleteSync(ctx context.Context, task models.SyncTask) (bool, error)
}

type syncService struct {
	repo   IncidentRepository
	logger *logrus.Logger
	now    func() time.Time
}

func NewSyncService(repo IncidentRepository, logger *logrus.Logger) SyncService {
	return &syncService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot возвращает текущее состояние инцидента для отправки на удаленную точку
func (s *syncService) Snapshot(ctx context.Context, id string) (*models.Incident, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not load incident for sync: %w", err)
	}
	return incident, nil
}

// CompleteSync помечает инцидент синхронизированным, если он все еще ждет
// синхронизации и не менялся после постановки задачи. Устаревшая задача
// отбрасывается и возвращает false.
func (s *syncService) CompleteSync(ctx context.Context, task models.SyncTask) (bool, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "sync",
		"method":      "CompleteSync",
		"incident_id": task.IncidentID,
		"version":     task.Version,
	})

	applied := false
	_, err := s.repo.Modify(ctx, task.IncidentID, func(incident *models.Incident) (bool, error) {
		if incident.SyncStatus != models.SyncPending || incident.Version != task.Version {
			return false, nil
		}
		incident.PrependEvent(models.TimelineEvent{
			ID:          uuid.NewString(),
			Date:        s.now(),
			Title:       models.EventTitleSynced,
			Description: "Dados enviados para a central",
			Icon:        models.EventIconSynced,
		})
		incident.SyncStatus = models.SyncSynced
		applied = true
		return true, nil
	})
	if err != nil {
		if errors.Is(err, models.ErrIncidentNotFound) {
			log.Warn("Incident disappeared before sync completed")
			return false, nil
		}
		log.WithError(err).Error("Failed to complete incident sync")
		return false, fmt.Errorf("service: could not complete sync: %w", err)
	}

	if applied {
		log.Info("Incident synced")
	} else {
		log.Debug("Stale sync task dropped")
	}
	return applied, nil
}
