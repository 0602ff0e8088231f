package service

import (
	"context"
	"fmt"

	"github.com/shenikar/fyren/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=comment.go -destination=mocks/comment_mock.go -package=mocks

type CommentRepository interface {
	Add(ctx context.Context, comment *models.Comment) error
	List(ctx context.Context) ([]*models.Comment, error)
	ListByIncident(ctx context.Context, incidentID string) ([]*models.Comment, error)
	DeleteAll(ctx context.Context) error
}

type CommentService interface {
	AddComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, incidentID string) ([]*models.Comment, error)
}

type commentService struct {
	repo   CommentRepository
	logger *logrus.Logger
}

func NewCommentService(repo CommentRepository, logger *logrus.Logger) CommentService {
	return &commentService{repo: repo, logger: logger}
}

// AddComment сохраняет комментарий. Существование инцидента не проверяется.
func (s *commentService) AddComment(ctx context.Context, comment *models.Comment) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "comment",
		"method":      "AddComment",
		"incident_id": comment.IncidentID,
	})

	if err := s.repo.Add(ctx, comment); err != nil {
		log.WithError(err).Error("Failed to add comment in repository")
		return fmt.Errorf("service: could not add comment: %w", err)
	}

	log.WithField("comment_id", comment.ID).Info("Comment added")
	return nil
}

func (s *commentService) ListComments(ctx context.Context, incidentID string) ([]*models.Comment, error) {
	comments, err := s.repo.ListByIncident(ctx, incidentID)
	if err != nil {
		s.logger.WithError(err).WithField("incident_id", incidentID).Error("Failed to list comments")
		return nil, fmt.Errorf("service: could not list comments: %w", err)
	}
	return comments, nil
}
