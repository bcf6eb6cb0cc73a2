package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gongobongo-backend-go/internal/core"
	"gongobongo-backend-go/internal/models"
)

// AssistHandler serves the AI assist endpoints.
type AssistHandler struct {
	assist core.AssistService
}

// NewAssistHandler creates a new AssistHandler instance.
func NewAssistHandler(assist core.AssistService) *AssistHandler {
	return &AssistHandler{assist: assist}
}

// Summarize returns a concise summary of the posted text.
func (h *AssistHandler) Summarize(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req models.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}

	summary, err := h.assist.Summarize(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// SuggestReplies returns up to three reply candidates for the posted message.
// Generation failures surface as an empty list, never an error.
func (h *AssistHandler) SuggestReplies(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req models.SuggestRepliesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}

	suggestions := h.assist.SuggestReplies(c.Request.Context(), req.Message)
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
