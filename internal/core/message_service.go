package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"gongobongo-backend-go/internal/db"
	"gongobongo-backend-go/internal/models"
	"gongobongo-backend-go/pkg/cache"
)

// Errors returned by the message send pipeline.
var (
	ErrEmptyMessage    = errors.New("message text cannot be empty")
	ErrChatNotWritable = errors.New("chat does not accept messages from this user")
)

// profileCacheTTL bounds how stale a cached sender snapshot may get. Profile
// edits between refreshes only affect the denormalized metadata on new
// messages, never the profile document itself.
const profileCacheTTL = 5 * time.Minute

// messageService implements the MessageService interface.
type messageService struct {
	chatRepo  db.ChatRepository
	msgRepo   db.MessageRepository
	userRepo  db.UserRepository
	profiles  cache.Cache // optional, nil disables snapshot caching
	generator TextGenerator
	publisher EventPublisher // optional, nil disables event publication
	queueName string
	logger    *zap.Logger
}

// NewMessageServiceConfig contains the collaborators of the message pipeline.
// Profiles and Publisher may be nil; the pipeline degrades to direct reads and
// no event publication.
type NewMessageServiceConfig struct {
	ChatRepo  db.ChatRepository
	MsgRepo   db.MessageRepository
	UserRepo  db.UserRepository
	Profiles  cache.Cache
	Generator TextGenerator
	Publisher EventPublisher
	QueueName string
	Logger    *zap.Logger
}

// NewMessageService creates a new MessageService instance.
func NewMessageService(cfg NewMessageServiceConfig) MessageService {
	return &messageService{
		chatRepo:  cfg.ChatRepo,
		msgRepo:   cfg.MsgRepo,
		userRepo:  cfg.UserRepo,
		profiles:  cfg.Profiles,
		generator: cfg.Generator,
		publisher: cfg.Publisher,
		queueName: cfg.QueueName,
		logger:    cfg.Logger,
	}
}

// Send runs the message pipeline: authorization, lifecycle eligibility, sender
// metadata snapshot, reply context, the grouped append, and the synchronous
// bot turn when the conversation partner is the bot identity.
func (s *messageService) Send(ctx context.Context, actorUID, chatID string, req models.SendMessageRequest) (*models.Message, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	chat, err := s.loadChatFor(ctx, actorUID, chatID)
	if err != nil {
		return nil, err
	}

	ok, err := CanSend(ctx, s.msgRepo, chat, actorUID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: status is '%s'", ErrChatNotWritable, chat.Status)
	}

	msg := &models.Message{
		Text:     text,
		SenderID: actorUID,
		Status:   models.MessageStatusSent,
	}
	s.attachSenderSnapshot(ctx, msg)
	s.attachReplyContext(ctx, chatID, req.ReplyTo, msg)

	if _, err := s.msgRepo.Append(ctx, chatID, msg); err != nil {
		return nil, err
	}

	s.publishMessageSent(chat, msg)

	if partner := chat.PartnerOf(actorUID); models.IsBot(partner) && !models.IsBot(actorUID) {
		s.sendBotReply(ctx, chat, text)
	}

	return msg, nil
}

// List returns a chat's messages in display order after verifying the actor
// participates in it.
func (s *messageService) List(ctx context.Context, actorUID, chatID string) ([]*models.Message, error) {
	if _, err := s.loadChatFor(ctx, actorUID, chatID); err != nil {
		return nil, err
	}
	msgs, err := s.msgRepo.ListByChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages of chat '%s': %w", chatID, err)
	}
	return msgs, nil
}

func (s *messageService) loadChatFor(ctx context.Context, actorUID, chatID string) (*models.Chat, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrChatNotFound, chatID)
		}
		return nil, fmt.Errorf("failed to get chat '%s': %w", chatID, err)
	}
	if !chat.HasParticipant(actorUID) {
		return nil, ErrForbiddenAccess
	}
	return chat, nil
}

// attachSenderSnapshot denormalizes the sender's display name and photo onto
// the message. The snapshot is intentionally frozen at send time. Best-effort:
// a message without display metadata still renders from the sender ID.
func (s *messageService) attachSenderSnapshot(ctx context.Context, msg *models.Message) {
	if models.IsBot(msg.SenderID) {
		msg.SenderDisplayName = models.BotDisplayName
		msg.SenderPhotoURL = models.BotPhotoURL
		return
	}

	if snap, ok := s.cachedProfile(msg.SenderID); ok {
		msg.SenderDisplayName = snap.DisplayName
		msg.SenderPhotoURL = snap.PhotoURL
		return
	}

	user, err := s.userRepo.GetByID(ctx, msg.SenderID)
	if err != nil {
		s.logger.Warn("Failed to load sender profile for message snapshot",
			zap.String("uid", msg.SenderID),
			zap.Error(err))
		return
	}
	msg.SenderDisplayName = user.DisplayName
	msg.SenderPhotoURL = user.PhotoURL
	s.cacheProfile(user)
}

// profileSnapshot is the cached subset of a profile the pipeline needs.
type profileSnapshot struct {
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

func profileCacheKey(uid string) string {
	return "profile:" + uid
}

func (s *messageService) cachedProfile(uid string) (*profileSnapshot, bool) {
	if s.profiles == nil {
		return nil, false
	}
	raw, err := s.profiles.Get(profileCacheKey(uid))
	if err != nil || raw == "" {
		return nil, false
	}
	var snap profileSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

func (s *messageService) cacheProfile(user *models.User) {
	if s.profiles == nil {
		return
	}
	raw, err := json.Marshal(profileSnapshot{DisplayName: user.DisplayName, PhotoURL: user.PhotoURL})
	if err != nil {
		return
	}
	if err := s.profiles.Set(profileCacheKey(user.UID), string(raw), profileCacheTTL); err != nil {
		s.logger.Debug("Failed to cache sender profile snapshot",
			zap.String("uid", user.UID),
			zap.Error(err))
	}
}

// attachReplyContext snapshots the replied-to message onto the new one. The
// reference is advisory: an unresolvable ID leaves the reply fields empty
// rather than failing the send.
func (s *messageService) attachReplyContext(ctx context.Context, chatID, replyTo string, msg *models.Message) {
	if replyTo == "" {
		return
	}
	msg.ReplyTo = replyTo

	replied, err := s.msgRepo.GetByID(ctx, chatID, replyTo)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			s.logger.Warn("Failed to load replied-to message",
				zap.String("chatID", chatID),
				zap.String("replyTo", replyTo),
				zap.Error(err))
		}
		return
	}

	msg.RepliedMessageText = TruncateSnippet(replied.Text, models.RepliedSnippetLimit)
	// Display name, not UID: clients compare it against display names when
	// rendering the quoted header.
	msg.RepliedMessageSender = replied.SenderDisplayName
	if msg.RepliedMessageSender == "" {
		msg.RepliedMessageSender = "User"
	}
}

// TruncateSnippet shortens text to at most limit characters, appending "..."
// when anything was cut.
func TruncateSnippet(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

// sendBotReply generates and appends the bot's turn. A generation failure is
// replaced by the canned fallback text so the conversation never hangs
// without a response.
func (s *messageService) sendBotReply(ctx context.Context, chat *models.Chat, userText string) {
	replyText, err := s.generator.BotReply(ctx, userText)
	if err != nil {
		s.logger.Error("Bot reply generation failed, sending fallback",
			zap.String("chatID", chat.ID),
			zap.Error(err))
		replyText = models.BotFallbackReply
	}

	botMsg := &models.Message{
		Text:              replyText,
		SenderID:          models.BotUID,
		Status:            models.MessageStatusSent,
		SenderDisplayName: models.BotDisplayName,
		SenderPhotoURL:    models.BotPhotoURL,
	}
	if _, err := s.msgRepo.Append(ctx, chat.ID, botMsg); err != nil {
		s.logger.Error("Failed to append bot reply",
			zap.String("chatID", chat.ID),
			zap.Error(err))
	}
}

// publishMessageSent emits the message.sent event for the notification
// worker. Best-effort; a broker outage never fails a send.
func (s *messageService) publishMessageSent(chat *models.Chat, msg *models.Message) {
	if s.publisher == nil {
		return
	}

	var recipients []string
	for _, p := range chat.Participants {
		if p != msg.SenderID && !models.IsBot(p) {
			recipients = append(recipients, p)
		}
	}
	if len(recipients) == 0 {
		return
	}

	event := MessageSentEvent{
		Type:              EventMessageSent,
		ChatID:            chat.ID,
		MessageID:         msg.ID,
		SenderID:          msg.SenderID,
		SenderDisplayName: msg.SenderDisplayName,
		Recipients:        recipients,
		Preview:           TruncateSnippet(msg.Text, models.RepliedSnippetLimit),
		SentAt:            time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(s.queueName, body); err != nil {
		s.logger.Warn("Failed to publish message.sent event",
			zap.String("chatID", chat.ID),
			zap.Error(err))
	}
}
