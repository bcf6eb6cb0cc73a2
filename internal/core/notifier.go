package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gongobongo-backend-go/internal/db"
	"gongobongo-backend-go/internal/models"
)

// EmailSender delivers one notification email. Implemented by pkg/mailer.
type EmailSender interface {
	Send(recipient, subject, body string) error
}

// Notifier consumes message.sent events and emails the recipients that opted
// in. An email goes out only when the recipient enabled email notifications
// and is currently offline; online users see the message in the client.
type Notifier struct {
	userRepo     db.UserRepository
	settingsRepo db.SettingsRepository
	presenceRepo db.PresenceRepository
	mailer       EmailSender
	logger       *zap.Logger
}

// NewNotifier creates a new Notifier instance.
func NewNotifier(userRepo db.UserRepository, settingsRepo db.SettingsRepository, presenceRepo db.PresenceRepository, mailer EmailSender, logger *zap.Logger) *Notifier {
	return &Notifier{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		presenceRepo: presenceRepo,
		mailer:       mailer,
		logger:       logger,
	}
}

// HandleEvent processes one raw queue payload. Malformed payloads are dropped
// with a log line; the queue never sees a redelivery loop over bad data.
func (n *Notifier) HandleEvent(body []byte) {
	var event MessageSentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		n.logger.Warn("Dropping malformed notification event", zap.Error(err))
		return
	}
	if event.Type != EventMessageSent {
		return
	}

	ctx := context.Background()
	for _, uid := range event.Recipients {
		if err := n.notify(ctx, uid, &event); err != nil {
			n.logger.Warn("Failed to notify recipient",
				zap.String("uid", uid),
				zap.String("chatID", event.ChatID),
				zap.Error(err))
		}
	}
}

func (n *Notifier) notify(ctx context.Context, uid string, event *MessageSentEvent) error {
	settings, err := n.settingsRepo.Get(ctx, uid)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			return err
		}
		settings = models.DefaultSettings(uid)
	}
	if !settings.Notifications.EmailEnabled {
		return nil
	}

	if status, err := n.presenceRepo.GetStatus(ctx, uid); err == nil && status.IsOnline {
		return nil
	}

	user, err := n.userRepo.GetByID(ctx, uid)
	if err != nil {
		return err
	}
	if user.Email == "" {
		return nil
	}

	sender := event.SenderDisplayName
	if sender == "" {
		sender = event.SenderID
	}
	subject := fmt.Sprintf("New message from %s", sender)
	body := fmt.Sprintf("<p><b>%s</b> sent you a message:</p><p>%s</p>", sender, event.Preview)
	return n.mailer.Send(user.Email, subject, body)
}
