package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gongobongo-backend-go/internal/core"
	"gongobongo-backend-go/internal/models"
)

// ChatHandler serves the conversation lifecycle and message endpoints.
type ChatHandler struct {
	chats    core.ChatService
	messages core.MessageService
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(chats core.ChatService, messages core.MessageService) *ChatHandler {
	return &ChatHandler{chats: chats, messages: messages}
}

// Start opens a 1:1 chat with the target user, returning the existing one
// when a conversation already exists for the pair.
func (h *ChatHandler) Start(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.StartChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}

	chat, err := h.chats.StartDirect(c.Request.Context(), uid, req.TargetUID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// CreateGroup creates a group chat with the caller as a member.
func (h *ChatHandler) CreateGroup(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateGroupChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}

	chat, err := h.chats.CreateGroup(c.Request.Context(), uid, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, chat)
}

// List returns the caller's chats, most recently active first.
func (h *ChatHandler) List(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	chats, err := h.chats.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if chats == nil {
		chats = []*models.Chat{}
	}
	c.JSON(http.StatusOK, chats)
}

// ListRequests returns the caller's incoming pending chat requests.
func (h *ChatHandler) ListRequests(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	chats, err := h.chats.ListRequests(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if chats == nil {
		chats = []*models.Chat{}
	}
	c.JSON(http.StatusOK, chats)
}

// Get returns one chat the caller participates in.
func (h *ChatHandler) Get(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	chat, err := h.chats.GetByID(c.Request.Context(), uid, c.Param("chatId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// Accept moves a pending chat to accepted.
func (h *ChatHandler) Accept(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	chat, err := h.chats.Accept(c.Request.Context(), uid, c.Param("chatId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// Decline moves a pending chat to declined.
func (h *ChatHandler) Decline(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	chat, err := h.chats.Decline(c.Request.Context(), uid, c.Param("chatId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chat)
}

// ListMessages returns a chat's messages in display order.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	msgs, err := h.messages.List(c.Request.Context(), uid, c.Param("chatId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if msgs == nil {
		msgs = []*models.Message{}
	}
	c.JSON(http.StatusOK, msgs)
}

// SendMessage runs the message pipeline for one new message.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload: " + err.Error()})
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), uid, c.Param("chatId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
