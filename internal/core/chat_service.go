package core

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gongobongo-backend-go/internal/db"
	"gongobongo-backend-go/internal/models"
)

// Errors returned by the chat lifecycle.
var (
	ErrChatNotFound      = errors.New("chat not found")
	ErrForbiddenAccess   = errors.New("user does not have access to this chat")
	ErrSelfChat          = errors.New("cannot start a chat with yourself")
	ErrNotPending        = errors.New("chat is not pending")
	ErrInitiatorDecision = errors.New("only the invited participant can decide on a pending chat")
	ErrGroupLifecycle    = errors.New("group chats have no request lifecycle")
)

// chatService implements the ChatService interface.
type chatService struct {
	chatRepo db.ChatRepository
	userRepo db.UserRepository
}

// NewChatService creates a new ChatService instance.
func NewChatService(chatRepo db.ChatRepository, userRepo db.UserRepository) ChatService {
	return &chatService{chatRepo: chatRepo, userRepo: userRepo}
}

// StartDirect opens a 1:1 chat between actor and target. If one already
// exists it is returned unchanged, whatever its lifecycle state. Otherwise a
// new chat is created: pending with initiatedBy=actor for human targets,
// accepted outright for the bot identity.
func (s *chatService) StartDirect(ctx context.Context, actorUID, targetUID string) (*models.Chat, error) {
	if actorUID == targetUID {
		return nil, ErrSelfChat
	}

	if !models.IsBot(targetUID) {
		if _, err := s.userRepo.GetByID(ctx, targetUID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, fmt.Errorf("%w: target user '%s'", ErrUserNotFound, targetUID)
			}
			return nil, fmt.Errorf("failed to look up target user '%s': %w", targetUID, err)
		}
	}

	existing, err := s.chatRepo.FindDirect(ctx, actorUID, targetUID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up existing chat: %w", err)
	}

	// Participants are stored sorted so the pair is deterministic regardless
	// of who initiated.
	participants := []string{actorUID, targetUID}
	sort.Strings(participants)

	chat := &models.Chat{
		Participants: participants,
		IsGroup:      false,
	}
	if models.IsBot(targetUID) {
		chat.Status = models.ChatStatusAccepted
	} else {
		chat.Status = models.ChatStatusPending
		chat.InitiatedBy = actorUID
	}

	if _, err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return chat, nil
}

// CreateGroup creates a group chat. Groups carry no request lifecycle: any
// member may post immediately.
func (s *chatService) CreateGroup(ctx context.Context, actorUID string, req models.CreateGroupChatRequest) (*models.Chat, error) {
	members := map[string]bool{actorUID: true}
	for _, uid := range req.MemberUIDs {
		if uid != "" {
			members[uid] = true
		}
	}
	if len(members) < 2 {
		return nil, fmt.Errorf("%w: a group needs at least one member besides the creator", ErrSelfChat)
	}

	participants := make([]string, 0, len(members))
	for uid := range members {
		participants = append(participants, uid)
	}
	sort.Strings(participants)

	chat := &models.Chat{
		Participants: participants,
		IsGroup:      true,
		GroupName:    req.Name,
		GroupAvatar:  req.Avatar,
	}
	if _, err := s.chatRepo.Create(ctx, chat); err != nil {
		return nil, fmt.Errorf("failed to create group chat: %w", err)
	}
	return chat, nil
}

// GetByID returns a chat after verifying the actor participates in it.
func (s *chatService) GetByID(ctx context.Context, actorUID, chatID string) (*models.Chat, error) {
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

// List returns the actor's chats, most recently updated first.
func (s *chatService) List(ctx context.Context, actorUID string) ([]*models.Chat, error) {
	chats, err := s.chatRepo.ListByParticipant(ctx, actorUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats for '%s': %w", actorUID, err)
	}
	return chats, nil
}

// ListRequests returns the actor's incoming pending chat requests.
func (s *chatService) ListRequests(ctx context.Context, actorUID string) ([]*models.Chat, error) {
	chats, err := s.chatRepo.ListPendingFor(ctx, actorUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat requests for '%s': %w", actorUID, err)
	}
	return chats, nil
}

// Accept transitions a pending chat to accepted. Only the non-initiating
// participant may accept; the initiator's accept is a no-op that returns the
// chat unchanged. Accepted is terminal.
func (s *chatService) Accept(ctx context.Context, actorUID, chatID string) (*models.Chat, error) {
	return s.decide(ctx, actorUID, chatID, models.ChatStatusAccepted)
}

// Decline transitions a pending chat to declined, a terminal state in which
// no messages may ever be sent. Only the non-initiating participant may
// decline.
func (s *chatService) Decline(ctx context.Context, actorUID, chatID string) (*models.Chat, error) {
	return s.decide(ctx, actorUID, chatID, models.ChatStatusDeclined)
}

func (s *chatService) decide(ctx context.Context, actorUID, chatID, decision string) (*models.Chat, error) {
	chat, err := s.GetByID(ctx, actorUID, chatID)
	if err != nil {
		return nil, err
	}
	if chat.IsGroup {
		return nil, ErrGroupLifecycle
	}
	if chat.Status != models.ChatStatusPending {
		if chat.Status == decision {
			// Already decided the same way; idempotent.
			return chat, nil
		}
		return nil, fmt.Errorf("%w: status is '%s'", ErrNotPending, chat.Status)
	}
	if actorUID == chat.InitiatedBy {
		if decision == models.ChatStatusAccepted {
			// The initiator accepting their own invite is a no-op, not an error.
			return chat, nil
		}
		return nil, ErrInitiatorDecision
	}

	if err := s.chatRepo.SetStatus(ctx, chatID, decision); err != nil {
		return nil, fmt.Errorf("failed to set chat '%s' to '%s': %w", chatID, decision, err)
	}
	chat.Status = decision
	return chat, nil
}

// CanSend reports whether actor may compose a message in the chat right now,
// per the lifecycle eligibility rule: groups and accepted chats are always
// open; a pending chat admits exactly one invitation message from the
// initiator before acceptance.
func CanSend(ctx context.Context, msgRepo db.MessageRepository, chat *models.Chat, actorUID string) (bool, error) {
	if chat.IsGroup || chat.Status == models.ChatStatusAccepted {
		return true, nil
	}
	if chat.Status != models.ChatStatusPending {
		return false, nil
	}
	if actorUID != chat.InitiatedBy {
		return false, nil
	}
	sent, err := msgRepo.HasMessageFrom(ctx, chat.ID, actorUID)
	if err != nil {
		return false, fmt.Errorf("failed to check invitation message: %w", err)
	}
	return !sent, nil
}
