package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/fyren/internal/models"
)

// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AppUserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Router /users [get]
func (h *Handler) listUsers(c *gin.Context) {
	log := h.logger.WithField("method", "listUsers")

	users, err := h.services.Users.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAppUserResponses(users))
}

// @Summary Create a user
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body CreateUserRequest true "User"
// @Success 201 {object} AppUserResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Router /users [post]
func (h *Handler) createUser(c *gin.Context) {
	var input CreateUserRequest
	log := h.logger.WithField("method", "createUser")

	if !h.bindJSON(c, log, &input) {
		return
	}

	user := &models.AppUser{
		Name:   input.Name,
		Email:  input.Email,
		Role:   models.Role(input.Role),
		Active: input.Active == nil || *input.Active,
	}
	if err := h.services.Users.CreateUser(c.Request.Context(), user); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToAppUserResponse(user))
}

// @Summary Update a user
// @Description Change name, email, role or the active flag of a user
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body UpdateUserRequest true "User patch"
// @Success 200 {object} AppUserResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [patch]
func (h *Handler) updateUser(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "updateUser").WithField("id", id)

	var input UpdateUserRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	user, err := h.services.Users.UpdateUser(c.Request.Context(), id, UpdateUserRequestToPatch(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAppUserResponse(user))
}

// @Summary Get dashboard statistics
// @Description Incident counts by status and period, and user counts
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DashboardStats
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dashboard/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	stats, err := h.services.Dashboard.GetStats(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Get audit log
// @Description Timeline events of all incidents, newest first
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of entries" default(100)
// @Success 200 {array} models.AuditEntry
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Router /audit [get]
func (h *Handler) getAuditLog(c *gin.Context) {
	log := h.logger.WithField("method", "getAuditLog")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	entries, err := h.services.Dashboard.GetAuditLog(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
