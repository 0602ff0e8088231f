package v1

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/fyren/internal/models"
)

const defaultNearbyRadiusMeters = 1000

// @Summary Create a new incident
// @Description Register an incident. It starts as pending, waits for sync and gets a creation event in its timeline. Any other initial status requires the chief or admin role.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if !h.bindJSON(c, log, &input) {
		return
	}

	user := currentUser(c)
	if input.Status != "" && input.Status != string(models.StatusPending) && !hasRole(user, models.RoleChief, models.RoleAdmin) {
		log.Warn("Initial status rejected for role")
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		return
	}

	model := CreateRequestToIncident(input, user.ID)
	if err := h.services.Incidents.CreateIncident(c.Request.Context(), model); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(model))
}

// @Summary Get a list of incidents
// @Description Get all incidents, newest first, optionally filtered by status
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter" Enums(all, pending, in_progress, resolved)
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	filter := models.IncidentFilter{}
	if status := c.Query("status"); status != "" && status != "all" {
		filter.Status = models.IncidentStatus(status)
	}

	incidents, err := h.services.Incidents.ListIncidents(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Find incidents near a point
// @Description Get incidents whose location lies within the radius of the point
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query number false "Radius in meters" default(1000)
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid coordinates or radius"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/nearby [get]
func (h *Handler) nearbyIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "nearbyIncidents")

	lat, errLat := parseFiniteFloat(c.Query("lat"))
	lon, errLon := parseFiniteFloat(c.Query("lon"))
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}
	radius, err := parseFiniteFloat(c.DefaultQuery("radius", strconv.Itoa(defaultNearbyRadiusMeters)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius"})
		return
	}

	incidents, err := h.services.Incidents.FindNearby(c.Request.Context(), lat, lon, radius)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// parseFiniteFloat разбирает число, отвергая NaN и бесконечности
func parseFiniteFloat(value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", value)
	}
	return f, nil
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.services.Incidents.GetIncident(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Update an existing incident
// @Description Merge the given fields into the incident. Changing the status requires the chief or admin role.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param incident body UpdateIncidentRequest true "Incident update request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [patch]
func (h *Handler) updateIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "updateIncident").WithField("id", id)

	var input UpdateIncidentRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	if input.Status != nil && !hasRole(currentUser(c), models.RoleChief, models.RoleAdmin) {
		log.Warn("Status change rejected for role")
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		return
	}

	incident, err := h.services.Incidents.UpdateIncident(c.Request.Context(), id, UpdateRequestToPatch(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary List incident comments
// @Description Get comments of the incident in the order they were added
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {array} CommentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/comments [get]
func (h *Handler) listComments(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "listComments").WithField("id", id)

	comments, err := h.services.Comments.ListComments(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToCommentResponses(comments))
}

// @Summary Add a comment
// @Description Add a comment to the incident on behalf of the session user
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param comment body CreateCommentRequest true "Comment"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/comments [post]
func (h *Handler) addComment(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "addComment").WithField("id", id)

	var input CreateCommentRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	user := currentUser(c)
	comment := &models.Comment{
		IncidentID: id,
		UserID:     user.ID,
		UserName:   user.Name,
		Text:       input.Text,
	}
	if err := h.services.Comments.AddComment(c.Request.Context(), comment); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, CommentResponse(*comment))
}

// @Summary Clear local incident data
// @Description Remove all incidents and comments. Users and preferences are kept.
// @Tags Admin
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /data [delete]
func (h *Handler) clearData(c *gin.Context) {
	log := h.logger.WithField("method", "clearData")

	if err := h.services.Incidents.ClearLocalData(c.Request.Context()); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
