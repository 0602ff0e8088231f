package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/fyren/internal/models"
)

// @Summary Get theme preferences
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PreferencesDTO
// @Router /preferences [get]
func (h *Handler) getPreferences(c *gin.Context) {
	log := h.logger.WithField("method", "getPreferences")

	prefs, err := h.services.Preferences.GetPreferences(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPreferencesDTO(prefs))
}

// @Summary Replace theme preferences
// @Description Font scale is clamped to [0.8, 1.5]
// @Tags Preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param preferences body PreferencesDTO true "Preferences"
// @Success 200 {object} PreferencesDTO
// @Failure 400 {object} map[string]string "Invalid request body"
// @Router /preferences [put]
func (h *Handler) updatePreferences(c *gin.Context) {
	var input PreferencesDTO
	log := h.logger.WithField("method", "updatePreferences")

	if !h.bindJSON(c, log, &input) {
		return
	}

	fontScale := input.FontScale
	if fontScale == 0 {
		fontScale = models.DefaultFontScale
	}
	prefs, err := h.services.Preferences.UpdatePreferences(c.Request.Context(), models.ThemePreferences{
		Mode:         models.ThemeMode(input.Mode),
		HighContrast: input.HighContrast,
		FontScale:    fontScale,
	})
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPreferencesDTO(prefs))
}

// @Summary Set theme mode
// @Tags Preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param mode body SetModeRequest true "Mode"
// @Success 200 {object} PreferencesDTO
// @Router /preferences/mode [put]
func (h *Handler) setThemeMode(c *gin.Context) {
	var input SetModeRequest
	log := h.logger.WithField("method", "setThemeMode")

	if !h.bindJSON(c, log, &input) {
		return
	}

	prefs, err := h.services.Preferences.SetMode(c.Request.Context(), models.ThemeMode(input.Mode))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPreferencesDTO(prefs))
}

// @Summary Set font scale
// @Tags Preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scale body SetFontScaleRequest true "Font scale"
// @Success 200 {object} PreferencesDTO
// @Router /preferences/font-scale [put]
func (h *Handler) setFontScale(c *gin.Context) {
	var input SetFontScaleRequest
	log := h.logger.WithField("method", "setFontScale")

	if !h.bindJSON(c, log, &input) {
		return
	}

	prefs, err := h.services.Preferences.SetFontScale(c.Request.Context(), input.FontScale)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPreferencesDTO(prefs))
}

// @Summary Increase font scale
// @Description Raise the font scale by 0.1 up to 1.5
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PreferencesDTO
// @Router /preferences/font-scale/increase [post]
func (h *Handler) increaseFontScale(c *gin.Context) {
	log := h.logger.WithField("method", "increaseFontScale")

	prefs, err := h.services.Preferences.IncreaseFontScale(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPreferencesDTO(prefs))
}

// @Summary Decrease font scale
// @Description Lower the font scale by 0.1 down to 0.8
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PreferencesDTO
// @Router /preferences/font-scale/decrease [post]
func (h *Handler) decreaseFontScale(c *gin.Context) {
	log := h.logger.WithField("method", "decreaseFontScale")

	prefs, err := h.services.Preferences.DecreaseFontScale(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPreferencesDTO(prefs))
}

// @Summary Toggle light/dark theme
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PreferencesDTO
// @Router /preferences/theme [post]
func (h *Handler) toggleTheme(c *gin.Context) {
	log := h.logger.WithField("method", "toggleTheme")

	prefs, err := h.services.Preferences.ToggleTheme(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPreferencesDTO(prefs))
}

// @Summary Toggle high contrast
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PreferencesDTO
// @Router /preferences/high-contrast [post]
func (h *Handler) toggleHighContrast(c *gin.Context) {
	log := h.logger.WithField("method", "toggleHighContrast")

	prefs, err := h.services.Preferences.ToggleHighContrast(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPreferencesDTO(prefs))
}
