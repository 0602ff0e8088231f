package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/fyren/internal/config"
	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/pkg/geo"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=incident.go -destination=mocks/incident_mock.go -package=mocks

var (
	ErrInvalidStatus = errors.New("invalid incident status")
	ErrInvalidRadius = errors.New("invalid search radius")
)

// IncidentRepository определяет контракт для хранения коллекции инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	List(ctx context.Context) ([]*models.Incident, error)
	GetByID(ctx context.Context, id string) (*models.Incident, error)
	Modify(ctx context.Context, id string, fn func(incident *models.Incident) (bool, error)) (*models.Incident, error)
	DeleteAll(ctx context.Context) error
}

// SyncScheduler откладывает синхронизацию версии инцидента с удаленной точкой
type SyncScheduler interface {
	Schedule(ctx context.Context, task models.SyncTask) error
}

// IncidentService определяет контракт бизнес-логики жизненного цикла инцидента
type IncidentService interface {
	CreateIncident(ctx context.Context, incident *models.Incident) error
	GetIncident(ctx context.Context, id string) (*models.Incident, error)
	ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	UpdateIncident(ctx context.Context, id string, patch models.IncidentPatch) (*models.Incident, error)
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64) ([]*models.Incident, error)
	ClearLocalData(ctx context.Context) error
}

type incidentService struct {
	repo      IncidentRepository
	comments  CommentRepository
	scheduler SyncScheduler
	logger    *logrus.Logger
	cfg       *config.Config
	now       func() time.Time
}

func NewIncidentService(repo IncidentRepository, comments CommentRepository, scheduler SyncScheduler, logger *logrus.Logger, cfg *config.Config) IncidentService {
	return &incidentService{
		repo:      repo,
		comments:  comments,
		scheduler: scheduler,
		logger:    logger,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateIncident регистрирует инцидент: статус pending, ожидание синхронизации,
// одно событие создания в timeline
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CreateIncident",
		"title":   incident.Title,
	})
	log.Info("Attempting to create a new incident")

	if incident.Status == "" {
		incident.Status = models.StatusPending
	}
	if !incident.Status.Valid() {
		return fmt.Errorf("service: could not create incident: %w: %s", ErrInvalidStatus, incident.Status)
	}

	now := s.now()
	incident.SyncStatus = models.SyncPending
	incident.Version = 1
	incident.UpdatedAt = nil
	if incident.Images == nil {
		incident.Images = []string{}
	}
	if incident.Videos == nil {
		incident.Videos = []string{}
	}
	incident.Timeline = []models.TimelineEvent{{
		ID:          uuid.NewString(),
		Date:        now,
		Title:       models.EventTitleCreated,
		Description: "Ocorrência registrada no dispositivo",
		Icon:        models.EventIconCreated,
	}}

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	log = log.WithField("incident_id", incident.ID)
	s.scheduleSync(ctx, log, incident)
	log.Info("Incident created successfully")
	return nil
}

// GetIncident получает инцидент по ID
func (s *incidentService) GetIncident(ctx context.Context, id string) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident in repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return incident, nil
}

// ListIncidents возвращает инциденты, новые первыми
func (s *incidentService) ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
		"status":  filter.Status,
	})

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("service: could not list incidents: %w: %s", ErrInvalidStatus, filter.Status)
	}

	incidents, err := s.repo.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	result := make([]*models.Incident, 0, len(incidents))
	for _, incident := range incidents {
		if filter.Match(incident) {
			result = append(result, incident)
		}
	}

	log.WithField("count", len(result)).Debug("Incidents listed successfully")
	return result, nil
}

// UpdateIncident сливает изменения с инцидентом, добавляет событие в timeline
// и снова ставит инцидент в очередь синхронизации
func (s *incidentService) UpdateIncident(ctx context.Context, id string, patch models.IncidentPatch) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateIncident",
		"incident_id": id,
	})
	log.Info("Attempting to update incident")

	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("service: could not update incident: %w: %s", ErrInvalidStatus, *patch.Status)
	}

	updated, err := s.repo.Modify(ctx, id, func(incident *models.Incident) (bool, error) {
		now := s.now()
		previous := incident.Status
		patch.Apply(incident)

		event := models.TimelineEvent{
			ID:   uuid.NewString(),
			Date: now,
		}
		if incident.Status != previous {
			event.Title = models.EventTitleStatusChanged
			event.Description = fmt.Sprintf("Status alterado de %s para %s", previous, incident.Status)
			event.Icon = models.EventIconStatus
		} else {
			event.Title = models.EventTitleEdited
			event.Description = "Informações da ocorrência foram atualizadas"
			event.Icon = models.EventIconEdit
		}
		incident.PrependEvent(event)

		incident.SyncStatus = models.SyncPending
		incident.UpdatedAt = &now
		incident.Version++
		return true, nil
	})
	if err != nil {
		if errors.Is(err, models.ErrIncidentNotFound) {
			log.WithError(err).Warn("Attempted to update a non-existent incident")
		} else {
			log.WithError(err).Error("Failed to update incident in repository")
		}
		return nil, fmt.Errorf("service: could not update incident: %w", err)
	}

	s.scheduleSync(ctx, log, updated)
	log.WithField("version", updated.Version).Info("Incident updated successfully")
	return updated, nil
}

// FindNearby возвращает инциденты с координатами в пределах радиуса от точки
func (s *incidentService) FindNearby(ctx context.Context, lat, lon, radiusMeters float64) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "FindNearby",
		"radius":  radiusMeters,
	})

	if !(radiusMeters > 0 && radiusMeters <= s.cfg.NearbyMaxRadiusMeters) {
		return nil, fmt.Errorf("service: could not find nearby incidents: %w: %.0f", ErrInvalidRadius, radiusMeters)
	}

	incidents, err := s.repo.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not find nearby incidents: %w", err)
	}

	result := make([]*models.Incident, 0)
	for _, incident := range incidents {
		if incident.Location == nil {
			continue
		}
		if geo.DistanceMeters(lat, lon, incident.Location.Latitude, incident.Location.Longitude) <= radiusMeters {
			result = append(result, incident)
		}
	}

	log.WithField("count", len(result)).Info("Nearby search completed")
	return result, nil
}

// ClearLocalData удаляет все инциденты и комментарии. Пользователи и настройки сохраняются.
func (s *incidentService) ClearLocalData(ctx context.Context) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ClearLocalData",
	})
	log.Warn("Clearing local incident data")

	if err := s.repo.DeleteAll(ctx); err != nil {
		log.WithError(err).Error("Failed to delete incidents")
		return fmt.Errorf("service: could not clear local data: %w", err)
	}
	if err := s.comments.DeleteAll(ctx); err != nil {
		log.WithError(err).Error("Failed to delete comments")
		return fmt.Errorf("service: could not clear local data: %w", err)
	}
	return nil
}

// scheduleSync ставит задачу синхронизации. Ошибка планировщика не отменяет
// локальную запись: инцидент просто остается в pending_sync.
func (s *incidentService) scheduleSync(ctx context.Context, log *logrus.Entry, incident *models.Incident) {
	task := models.SyncTask{
		IncidentID: incident.ID,
		Version:    incident.Version,
		DueAt:      s.now().Add(s.cfg.SyncDelay),
	}
	if err := s.scheduler.Schedule(ctx, task); err != nil {
		log.WithError(err).Warn("Failed to schedule incident sync")
	}
}
