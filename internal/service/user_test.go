package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestUserService(t *testing.T) (UserService, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockUserRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	return NewUserService(repoMock, logger), repoMock
}

func TestCreateUser_DefaultRole(t *testing.T) {
	service, repoMock := newTestUserService(t)
	ctx := context.Background()
	user := &models.AppUser{Name: "Ana", Email: "ana@email.com", Active: true}

	repoMock.EXPECT().Add(ctx, user).Return(nil).Times(1)

	require.NoError(t, service.CreateUser(ctx, user))
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	service, repoMock := newTestUserService(t)

	repoMock.EXPECT().Add(gomock.Any(), gomock.Any()).Times(0)

	err := service.CreateUser(context.Background(), &models.AppUser{Role: "root"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUpdateUser_NotFound(t *testing.T) {
	service, repoMock := newTestUserService(t)
	ctx := context.Background()
	name := "x"

	repoMock.EXPECT().Update(ctx, "42", gomock.Any()).
		Return(nil, fmt.Errorf("user with id 42 not found for update: %w", models.ErrUserNotFound)).
		Times(1)

	_, err := service.UpdateUser(ctx, "42", models.AppUserPatch{Name: &name})
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUpdateUser_ChangeRole(t *testing.T) {
	service, repoMock := newTestUserService(t)
	ctx := context.Background()
	role := models.RoleChief
	patch := models.AppUserPatch{Role: &role}

	repoMock.EXPECT().Update(ctx, "1", patch).
		Return(&models.AppUser{ID: "1", Role: models.RoleChief}, nil).
		Times(1)

	user, err := service.UpdateUser(ctx, "1", patch)
	require.NoError(t, err)
	assert.Equal(t, models.RoleChief, user.Role)
}
