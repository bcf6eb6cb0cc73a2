package api

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles the route handlers for registration.
type Handlers struct {
	Users    *UserHandler
	Chats    *ChatHandler
	Assist   *AssistHandler
	Settings *SettingsHandler
	Presence *PresenceHandler
}

// RegisterRoutes sets up the API routes for the v1 group. The group is
// expected to already carry the authentication middleware.
func RegisterRoutes(router *gin.RouterGroup, h Handlers) {
	users := router.Group("/users")
	{
		users.POST("/initialize", h.Users.Initialize)
		users.GET("", h.Users.List)
		users.GET("/me", h.Users.Me)
		users.PUT("/me", h.Users.UpdateMe)
		users.DELETE("/me", h.Users.DeleteMe)
		users.GET("/:userId", h.Users.Get)
	}

	chats := router.Group("/chats")
	{
		chats.POST("", h.Chats.Start)
		chats.POST("/group", h.Chats.CreateGroup)
		chats.GET("", h.Chats.List)
		chats.GET("/requests", h.Chats.ListRequests)
		chats.GET("/:chatId", h.Chats.Get)
		chats.POST("/:chatId/accept", h.Chats.Accept)
		chats.POST("/:chatId/decline", h.Chats.Decline)
		chats.GET("/:chatId/messages", h.Chats.ListMessages)
		chats.POST("/:chatId/messages", h.Chats.SendMessage)
	}

	assist := router.Group("/assist")
	{
		assist.POST("/summarize", h.Assist.Summarize)
		assist.POST("/suggest-replies", h.Assist.SuggestReplies)
	}

	settings := router.Group("/settings")
	{
		settings.GET("/notifications", h.Settings.GetNotifications)
		settings.PUT("/notifications", h.Settings.PutNotifications)
		settings.GET("/theme", h.Settings.GetTheme)
		settings.PUT("/theme", h.Settings.PutTheme)
	}

	presence := router.Group("/presence")
	{
		presence.POST("/heartbeat", h.Presence.Heartbeat)
		presence.POST("/offline", h.Presence.Offline)
	}
}
