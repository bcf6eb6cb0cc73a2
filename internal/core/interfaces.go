package core

import (
	"context"

	"gongobongo-backend-go/internal/models"
)

// UserService defines the interface for user profile operations.
type UserService interface {
	// GetOrCreate retrieves a user by UID, creating the profile from the auth
	// claims on first login. Returns the user, whether it was created, and an error.
	GetOrCreate(ctx context.Context, uid, email, displayName, photoURL string) (*models.User, bool, error)
	// GetByID returns the profile with presence resolved from the realtime
	// channel when available.
	GetByID(ctx context.Context, uid string) (*models.User, error)
	ListContacts(ctx context.Context, uid string) ([]*models.User, error)
	UpdateProfile(ctx context.Context, uid string, req models.UpdateProfileRequest) (*models.User, error)
	// Delete removes the account: the Auth user, the profile document and the
	// presence record.
	Delete(ctx context.Context, uid string) error
}

// ChatService defines the interface for the conversation request/accept lifecycle.
type ChatService interface {
	// StartDirect opens a 1:1 chat with target, returning the existing chat
	// when there is one. Non-bot targets get a pending chat; the bot identity
	// bypasses the lifecycle and the chat is created accepted.
	StartDirect(ctx context.Context, actorUID, targetUID string) (*models.Chat, error)
	CreateGroup(ctx context.Context, actorUID string, req models.CreateGroupChatRequest) (*models.Chat, error)
	GetByID(ctx context.Context, actorUID, chatID string) (*models.Chat, error)
	List(ctx context.Context, actorUID string) ([]*models.Chat, error)
	ListRequests(ctx context.Context, actorUID string) ([]*models.Chat, error)
	Accept(ctx context.Context, actorUID, chatID string) (*models.Chat, error)
	Decline(ctx context.Context, actorUID, chatID string) (*models.Chat, error)
}

// MessageService defines the interface for the message send pipeline.
type MessageService interface {
	Send(ctx context.Context, actorUID, chatID string, req models.SendMessageRequest) (*models.Message, error)
	List(ctx context.Context, actorUID, chatID string) ([]*models.Message, error)
}

// AssistService defines the interface for the AI assist flows.
type AssistService interface {
	Summarize(ctx context.Context, text string) (string, error)
	// SuggestReplies degrades to an empty list on generation errors; the
	// caller never sees a failure.
	SuggestReplies(ctx context.Context, message string) []string
}

// SettingsService defines the interface for per-user preferences.
type SettingsService interface {
	Get(ctx context.Context, uid string) (*models.UserSettings, error)
	SetNotifications(ctx context.Context, uid string, prefs models.NotificationSettings) (*models.UserSettings, error)
	SetTheme(ctx context.Context, uid, theme string) (*models.UserSettings, error)
}

// PresenceService defines the interface for presence bookkeeping.
type PresenceService interface {
	Heartbeat(ctx context.Context, uid string) error
	Offline(ctx context.Context, uid string) error
	// SweepStale marks offline every user whose authoritative presence record
	// has gone silent. Returns the number of users swept.
	SweepStale(ctx context.Context) (int, error)
}

// TextGenerator is the narrow surface of the generation collaborator the
// services depend on. Implemented by the Gemini client in internal/ai.
type TextGenerator interface {
	Summarize(ctx context.Context, text string) (string, error)
	SuggestReplies(ctx context.Context, message string) ([]string, error)
	BotReply(ctx context.Context, message string) (string, error)
}

// EventPublisher publishes domain events to the notifications queue.
// Implementations are best-effort; publish failures never fail the operation
// that raised the event.
type EventPublisher interface {
	Publish(queueName string, body []byte) error
}
