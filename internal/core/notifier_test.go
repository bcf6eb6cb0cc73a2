package core

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"gongobongo-backend-go/internal/models"
)

func notifierFixture(t *testing.T) (*Notifier, *fakeMailer, *fakeSettingsRepo, *fakePresenceRepo) {
	t.Helper()
	userRepo := newFakeUserRepo(
		&models.User{UID: "bob", Email: "bob@example.com"},
		&models.User{UID: "carol", Email: "carol@example.com"},
	)
	settingsRepo := newFakeSettingsRepo()
	presenceRepo := newFakePresenceRepo()
	mailer := &fakeMailer{}
	return NewNotifier(userRepo, settingsRepo, presenceRepo, mailer, zap.NewNop()), mailer, settingsRepo, presenceRepo
}

func sentEventBody(t *testing.T, recipients ...string) []byte {
	t.Helper()
	body, err := json.Marshal(MessageSentEvent{
		Type:              EventMessageSent,
		ChatID:            "chat-1",
		MessageID:         "msg-1",
		SenderID:          "alice",
		SenderDisplayName: "Alice",
		Recipients:        recipients,
		Preview:           "hello",
		SentAt:            time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return body
}

func TestNotifierEmailsOfflineOptedInRecipients(t *testing.T) {
	notifier, mailer, settingsRepo, _ := notifierFixture(t)
	settingsRepo.settings["bob"] = &models.UserSettings{
		UID:           "bob",
		Notifications: models.NotificationSettings{EmailEnabled: true},
		Theme:         models.ThemeLight,
	}

	notifier.HandleEvent(sentEventBody(t, "bob"))

	if len(mailer.recipients) != 1 || mailer.recipients[0] != "bob@example.com" {
		t.Errorf("emails sent to %v, want [bob@example.com]", mailer.recipients)
	}
	if mailer.subjects[0] != "New message from Alice" {
		t.Errorf("subject = %q, want sender named", mailer.subjects[0])
	}
}

func TestNotifierSkipsByPreferenceAndPresence(t *testing.T) {
	t.Run("default settings mean no email", func(t *testing.T) {
		notifier, mailer, _, _ := notifierFixture(t)
		notifier.HandleEvent(sentEventBody(t, "bob"))
		if len(mailer.recipients) != 0 {
			t.Errorf("emails sent to %v, want none without opt-in", mailer.recipients)
		}
	})

	t.Run("online recipients are skipped", func(t *testing.T) {
		notifier, mailer, settingsRepo, presenceRepo := notifierFixture(t)
		settingsRepo.settings["bob"] = &models.UserSettings{
			UID:           "bob",
			Notifications: models.NotificationSettings{EmailEnabled: true},
		}
		presenceRepo.statuses["bob"] = &models.PresenceStatus{IsOnline: true, LastSeen: time.Now().UnixMilli()}

		notifier.HandleEvent(sentEventBody(t, "bob"))
		if len(mailer.recipients) != 0 {
			t.Errorf("emails sent to %v, want none while online", mailer.recipients)
		}
	})

	t.Run("malformed payload is dropped", func(t *testing.T) {
		notifier, mailer, _, _ := notifierFixture(t)
		notifier.HandleEvent([]byte("{not json"))
		if len(mailer.recipients) != 0 {
			t.Errorf("emails sent to %v, want none for bad payload", mailer.recipients)
		}
	})

	t.Run("foreign event types are ignored", func(t *testing.T) {
		notifier, mailer, settingsRepo, _ := notifierFixture(t)
		settingsRepo.settings["bob"] = &models.UserSettings{
			UID:           "bob",
			Notifications: models.NotificationSettings{EmailEnabled: true},
		}
		body, _ := json.Marshal(MessageSentEvent{Type: "something.else", Recipients: []string{"bob"}})
		notifier.HandleEvent(body)
		if len(mailer.recipients) != 0 {
			t.Errorf("emails sent to %v, want none for foreign type", mailer.recipients)
		}
	})
}
