package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shenikar/fyren/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=dashboard.go -destination=mocks/dashboard_mock.go -package=mocks

type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
	GetAuditLog(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

type dashboardService struct {
	incidents IncidentRepository
	users     UserRepository
	logger    *logrus.Logger
	now       func() time.Time
}

func NewDashboardService(incidents IncidentRepository, users UserRepository, logger *logrus.Logger) DashboardService {
	return &dashboardService{
		incidents: incidents,
		users:     users,
		logger:    logger,
		now:       time.Now,
	}
}

// GetStats считает инциденты по статусам и периодам, а также пользователей
func (s *dashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	incidents, err := s.incidents.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list incidents for stats")
		return nil, fmt.Errorf("service: could not get stats: %w", err)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list users for stats")
		return nil, fmt.Errorf("service: could not get stats: %w", err)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)

	stats := &models.DashboardStats{Total: len(incidents), Users: len(users)}
	for _, incident := range incidents {
		switch incident.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusResolved:
			stats.Resolved++
		}
		if incident.SyncStatus == models.SyncPending {
			stats.PendingSync++
		}
		if !incident.CreatedAt.Before(today) {
			stats.TotalToday++
		}
		if !incident.CreatedAt.Before(weekAgo) {
			stats.TotalWeek++
		}
		if !incident.CreatedAt.Before(monthAgo) {
			stats.TotalMonth++
		}
	}
	for _, user := range users {
		if user.Active {
			stats.ActiveUsers++
		}
	}
	return stats, nil
}

// GetAuditLog собирает события timeline всех инцидентов, новые первыми.
// limit <= 0 означает без ограничения.
func (s *dashboardService) GetAuditLog(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	incidents, err := s.incidents.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list incidents for audit log")
		return nil, fmt.Errorf("service: could not get audit log: %w", err)
	}

	entries := make([]models.AuditEntry, 0)
	for _, incident := range incidents {
		for _, event := range incident.Timeline {
			entries = append(entries, models.AuditEntry{
				IncidentID:    incident.ID,
				IncidentTitle: incident.Title,
				Event:         event,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Event.Date.After(entries[j].Event.Date)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
