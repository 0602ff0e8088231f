package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/fyren/internal/auth"
	"github.com/shenikar/fyren/internal/models"
	"github.com/shenikar/fyren/internal/service"
	"github.com/sirupsen/logrus"
)

// Services - набор сервисов, которые обслуживает HTTP API
type Services struct {
	Incidents   service.IncidentService
	Comments    service.CommentService
	Users       service.UserService
	Auth        service.AuthService
	Preferences service.PreferencesService
	Dashboard   service.DashboardService
}

type Handler struct {
	services Services
	tokens   *auth.TokenManager
	logger   *logrus.Logger
	validate *validator.Validate
}

func NewHandler(services Services, tokens *auth.TokenManager, logger *logrus.Logger) *Handler {
	return &Handler{
		services: services,
		tokens:   tokens,
		logger:   logger,
		validate: validator.New(),
	}
}

// bindJSON разбирает и валидирует тело запроса. При ошибке ответ уже отправлен.
func (h *Handler) bindJSON(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondError переводит ошибку сервиса в HTTP-ответ
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	var locked *service.LockedOutError
	switch {
	case errors.As(err, &locked):
		c.Header("Retry-After", strconv.Itoa(locked.RemainingSeconds()))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":               locked.Error(),
			"retry_after_seconds": locked.RemainingSeconds(),
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
	case errors.Is(err, models.ErrIncidentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
	case errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidRadius),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidThemeMode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
