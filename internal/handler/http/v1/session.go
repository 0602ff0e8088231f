package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Log in
// @Description Check the shared password, resolve the role and open a session. Three failed attempts lock login out for 30 seconds.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login request"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 403 {object} map[string]string "Account disabled"
// @Failure 429 {object} map[string]any "Locked out"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")

	if !h.bindJSON(c, log, &input) {
		return
	}

	user, err := h.services.Auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	token, err := h.tokens.Sign(user)
	if err != nil {
		log.WithError(err).Error("Failed to sign session token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Token: token, User: ModelToUserResponse(user)})
}

// @Summary Log out
// @Description Revoke the caller's session token and remove the persisted session user if it belongs to the caller
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	log := h.logger.WithField("method", "logout")

	if err := h.services.Auth.Logout(c.Request.Context(), currentSession(c)); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get the session user
// @Description Return the user the session token was issued to
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/me [get]
func (h *Handler) me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}
	c.JSON(http.StatusOK, ModelToUserResponse(user))
}

// @Summary Get onboarding flag
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} OnboardingResponse
// @Router /auth/onboarding [get]
func (h *Handler) getOnboarding(c *gin.Context) {
	log := h.logger.WithField("method", "getOnboarding")

	done, err := h.services.Auth.IsOnboarded(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, OnboardingResponse{Onboarded: done})
}

// @Summary Complete onboarding
// @Tags Auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/onboarding [post]
func (h *Handler) completeOnboarding(c *gin.Context) {
	log := h.logger.WithField("method", "completeOnboarding")

	if err := h.services.Auth.CompleteOnboarding(c.Request.Context()); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
