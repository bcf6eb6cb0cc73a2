package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gongobongo-backend-go/internal/core"
	"gongobongo-backend-go/internal/models"
)

// SettingsHandler serves the per-user preference endpoints.
type SettingsHandler struct {
	settings core.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler instance.
func NewSettingsHandler(settings core.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetNotifications returns the caller's notification preferences.
func (h *SettingsHandler) GetNotifications(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	settings, err := h.settings.Get(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings.Notifications)
}

// PutNotifications replaces the caller's notification preferences.
func (h *SettingsHandler) PutNotifications(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var prefs models.NotificationSettings
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}

	settings, err := h.settings.SetNotifications(c.Request.Context(), uid, prefs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings.Notifications)
}

// GetTheme returns the caller's theme preference.
func (h *SettingsHandler) GetTheme(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	settings, err := h.settings.Get(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": settings.Theme})
}

// PutTheme replaces the caller's theme preference.
func (h *SettingsHandler) PutTheme(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}

	settings, err := h.settings.SetTheme(c.Request.Context(), uid, req.Theme)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": settings.Theme})
}
