package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/fyren/internal/auth"
	"github.com/shenikar/fyren/internal/lockout"
	"github.com/shenikar/fyren/internal/repository"
	"github.com/shenikar/fyren/internal/service"
	"github.com/shenikar/fyren/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSessionRouter поднимает роутер с настоящим сервисом аутентификации поверх памяти
func newSessionRouter(t *testing.T) *gin.Engine {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	store := storage.NewMemoryStore()
	password, err := auth.NewSharedPassword("123456")
	require.NoError(t, err)

	authService := service.NewAuthService(
		repository.NewSessionRepository(store, logger),
		repository.NewRevokedTokenRepository(store, logger),
		service.EmailHeuristicResolver{},
		password,
		lockout.NewTracker(3, 30*time.Second),
		service.LockoutScopeGlobal,
		logger,
	)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(Services{Auth: authService}, auth.NewTokenManager("test-secret", time.Hour), logger).
		RegisterRoutes(router.Group("/api/v1"))
	return router
}

func loginAs(t *testing.T, router *gin.Engine, email string) map[string]string {
	t.Helper()
	w := makeRequest(router, http.MethodPost, "/api/v1/auth/login", jsonBody(t, LoginRequest{Email: email, Password: "123456"}))
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return map[string]string{"Authorization": "Bearer " + resp.Token}
}

func TestSession_TwoClients(t *testing.T) {
	router := newSessionRouter(t)

	userToken := loginAs(t, router, "user@x.com")
	adminToken := loginAs(t, router, "admin@x.com")

	// Каждый клиент видит себя, а не последнего вошедшего
	w := makeRequest(router, http.MethodGet, "/api/v1/auth/me", nil, userToken)
	require.Equal(t, http.StatusOK, w.Code)
	var me UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "user@x.com", me.Email)
	assert.Equal(t, "user", me.Role)

	w = makeRequest(router, http.MethodPost, "/api/v1/auth/logout", nil, adminToken)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Токен вышедшего клиента больше не принимается
	w = makeRequest(router, http.MethodGet, "/api/v1/auth/me", nil, adminToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session token revoked")

	// Выход другого клиента не затрагивает сессию пользователя
	w = makeRequest(router, http.MethodGet, "/api/v1/auth/me", nil, userToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "user@x.com", me.Email)
}

func TestSession_LockoutAcrossEmails(t *testing.T) {
	router := newSessionRouter(t)

	for i := 0; i < 3; i++ {
		makeRequest(router, http.MethodPost, "/api/v1/auth/login", jsonBody(t, LoginRequest{Email: "x@x.com", Password: "wrong"}))
	}

	w := makeRequest(router, http.MethodPost, "/api/v1/auth/login", jsonBody(t, LoginRequest{Email: "admin@x.com", Password: "123456"}))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
