package models

// StartChatRequest represents the request body for opening (or returning an
// existing) 1:1 conversation with another user.
type StartChatRequest struct {
	TargetUID string `json:"targetUid" binding:"required"`
}

// CreateGroupChatRequest represents the request body for creating a group chat.
type CreateGroupChatRequest struct {
	Name       string   `json:"name" binding:"required"`
	Avatar     string   `json:"avatar,omitempty"`
	MemberUIDs []string `json:"memberUids" binding:"required,min=1"`
}

// SendMessageRequest represents the request body for sending a message.
// ReplyTo carries the ID of the message being replied to, if any.
type SendMessageRequest struct {
	Text    string `json:"text" binding:"required"`
	ReplyTo string `json:"replyTo,omitempty"`
}

// UpdateProfileRequest represents the request body for profile updates.
// Pointers distinguish "not provided" from "clear this field".
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	PhotoURL    *string `json:"photoURL,omitempty"`
}

// SummarizeRequest represents the request body for the summarize assist flow.
type SummarizeRequest struct {
	Text string `json:"text" binding:"required"`
}

// SuggestRepliesRequest represents the request body for the reply-suggestion
// assist flow.
type SuggestRepliesRequest struct {
	Message string `json:"message" binding:"required"`
}

// UpdateThemeRequest represents the request body for the theme preference.
// The "theme" rule is registered by the api package.
type UpdateThemeRequest struct {
	Theme string `json:"theme" binding:"required,theme"`
}
