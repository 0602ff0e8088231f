package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAddComment(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockCommentRepository(ctrl)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	service := NewCommentService(repoMock, logger)
	ctx := context.Background()

	comment := &models.Comment{IncidentID: "inc-1", UserID: "1", UserName: "João", Text: "a caminho"}
	repoMock.EXPECT().Add(ctx, comment).Return(nil).Times(1)
	require.NoError(t, service.AddComment(ctx, comment))

	repoMock.EXPECT().Add(ctx, gomock.Any()).Return(errors.New("boom")).Times(1)
	err := service.AddComment(ctx, &models.Comment{IncidentID: "inc-1"})
	assert.ErrorContains(t, err, "could not add comment")
}

func TestListComments(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockCommentRepository(ctrl)
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	service := NewCommentService(repoMock, logger)
	ctx := context.Background()

	want := []*models.Comment{{ID: "c1"}, {ID: "c2"}}
	repoMock.EXPECT().ListByIncident(ctx, "inc-1").Return(want, nil).Times(1)

	got, err := service.ListComments(ctx, "inc-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
