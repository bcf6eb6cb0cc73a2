package db

import (
	"context"
	"time"

	"gongobongo-backend-go/internal/models"
)

// UserRepository defines the interface for user profile storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*models.User, error)
	// Upsert writes the full user document, creating it on first login.
	// Callers are expected to load-and-modify before writing.
	Upsert(ctx context.Context, user *models.User) error
	ListExcept(ctx context.Context, uid string) ([]*models.User, error)
	SetOnline(ctx context.Context, uid string, online bool) error
	Delete(ctx context.Context, uid string) error
}

// ChatRepository defines the interface for conversation storage operations.
type ChatRepository interface {
	Create(ctx context.Context, chat *models.Chat) (string, error) // Returns new chat ID
	GetByID(ctx context.Context, chatID string) (*models.Chat, error)
	// FindDirect returns the existing non-group chat whose participant set is
	// exactly {uidA, uidB}, or ErrNotFound.
	FindDirect(ctx context.Context, uidA, uidB string) (*models.Chat, error)
	ListByParticipant(ctx context.Context, uid string) ([]*models.Chat, error)
	// ListPendingFor returns pending chats where uid participates but did not
	// initiate, newest first.
	ListPendingFor(ctx context.Context, uid string) ([]*models.Chat, error)
	SetStatus(ctx context.Context, chatID, status string) error
}

// MessageRepository defines the interface for message storage operations.
// Messages live in a subcollection of their chat.
type MessageRepository interface {
	// Append writes the message and the parent chat's lastMessage/updatedAt
	// summary as a single grouped write, so a reader never observes one
	// without the other. Returns the new message ID.
	Append(ctx context.Context, chatID string, msg *models.Message) (string, error)
	GetByID(ctx context.Context, chatID, messageID string) (*models.Message, error)
	ListByChatID(ctx context.Context, chatID string) ([]*models.Message, error)
	// HasMessageFrom reports whether senderID has written at least one
	// message in the chat.
	HasMessageFrom(ctx context.Context, chatID, senderID string) (bool, error)
}

// SettingsRepository defines the interface for per-user settings storage.
type SettingsRepository interface {
	Get(ctx context.Context, uid string) (*models.UserSettings, error)
	Set(ctx context.Context, settings *models.UserSettings) error
}

// PresenceRepository defines the interface for the realtime presence channel.
type PresenceRepository interface {
	SetStatus(ctx context.Context, uid string, status *models.PresenceStatus) error
	GetStatus(ctx context.Context, uid string) (*models.PresenceStatus, error)
	// ListOnlineBefore returns the UIDs of users currently marked online whose
	// lastSeen is older than the cutoff. Used by the offline sweeper.
	ListOnlineBefore(ctx context.Context, cutoff time.Time) ([]string, error)
	Remove(ctx context.Context, uid string) error
}
