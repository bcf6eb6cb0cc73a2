package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gongobongo-backend-go/internal/core"
)

// PresenceHandler serves the presence heartbeat endpoints.
type PresenceHandler struct {
	presence core.PresenceService
}

// NewPresenceHandler creates a new PresenceHandler instance.
func NewPresenceHandler(presence core.PresenceService) *PresenceHandler {
	return &PresenceHandler{presence: presence}
}

// Heartbeat records the caller as online now. Clients call this on a fixed
// interval while a session is open.
func (h *PresenceHandler) Heartbeat(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.presence.Heartbeat(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Offline marks the caller offline. Called on explicit logout.
func (h *PresenceHandler) Offline(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.presence.Offline(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
