package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gongobongo-backend-go/internal/core"
	"gongobongo-backend-go/internal/middleware"
	"gongobongo-backend-go/internal/models"
)

// UserHandler serves the profile and contacts endpoints.
type UserHandler struct {
	users core.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users core.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Initialize resolves the caller's profile from the verified token claims,
// creating it on first login. Returns 201 when the profile was created and
// 200 when it already existed.
func (h *UserHandler) Initialize(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	user, created, err := h.users.GetOrCreate(c.Request.Context(),
		uid,
		c.GetString(middleware.ContextUserEmail),
		c.GetString(middleware.ContextDisplayName),
		c.GetString(middleware.ContextPhotoURL))
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, user)
}

// Me returns the caller's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Get returns another user's profile with resolved presence.
func (h *UserHandler) Get(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// List returns every profile except the caller's, for the contacts screen.
func (h *UserHandler) List(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	users, err := h.users.ListContacts(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// UpdateMe applies display name and photo changes to the caller's profile.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteMe removes the caller's account.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
