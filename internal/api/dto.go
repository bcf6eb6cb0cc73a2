package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gongobongo-backend-go/internal/core"
	"gongobongo-backend-go/internal/middleware"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// currentUserID returns the authenticated caller's UID from the request
// context, aborting with 500 when the auth middleware did not run.
func currentUserID(c *gin.Context) (string, bool) {
	uid := c.GetString(middleware.ContextUserID)
	if uid == "" {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "UserID not found in context"})
		return "", false
	}
	return uid, true
}

// mapErrorToStatus translates service errors into HTTP status codes.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrUserNotFound),
		errors.Is(err, core.ErrChatNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrForbiddenAccess),
		errors.Is(err, core.ErrInitiatorDecision),
		errors.Is(err, core.ErrChatNotWritable):
		return http.StatusForbidden
	case errors.Is(err, core.ErrSelfChat),
		errors.Is(err, core.ErrEmptyMessage),
		errors.Is(err, core.ErrEmptyInput),
		errors.Is(err, core.ErrInvalidTheme),
		errors.Is(err, core.ErrGroupLifecycle):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotPending):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status and error body.
func respondError(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal details stay in the request log.
		_ = c.Error(err)
		msg = "Internal Server Error"
	}
	c.JSON(status, ErrorResponse{Error: msg})
}
