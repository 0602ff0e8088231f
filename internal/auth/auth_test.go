package auth

import (
	"testing"
	"time"

	"github.com/shenikar/fyren/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSharedPassword_Verify(t *testing.T) {
	p, err := newSharedPassword("123456", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, p.Verify("123456"))
	assert.False(t, p.Verify("wrong"))
	assert.False(t, p.Verify(""))
}

func TestTokenManager_SignAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	user := &models.User{ID: "u1", Name: "chief", Email: "chief@x.com", Role: models.RoleChief}

	token, err := m.Sign(user)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleChief, claims.Role)
	assert.Equal(t, "chief@x.com", claims.Email)

	session := claims.Session()
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "u1", session.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)

	// Каждый выпуск получает собственный идентификатор
	again, err := m.Sign(user)
	require.NoError(t, err)
	otherClaims, err := m.Parse(again)
	require.NoError(t, err)
	assert.NotEqual(t, session.ID, otherClaims.ID)
}

func TestTokenManager_RejectsForeignSecretAndExpired(t *testing.T) {
	user := &models.User{ID: "u1", Role: models.RoleUser}

	token, err := NewTokenManager("other", time.Hour).Sign(user)
	require.NoError(t, err)
	_, err = NewTokenManager("secret", time.Hour).Parse(token)
	assert.Error(t, err)

	expired, err := NewTokenManager("secret", -time.Minute).Sign(user)
	require.NoError(t, err)
	_, err = NewTokenManager("secret", time.Hour).Parse(expired)
	assert.Error(t, err)
}
