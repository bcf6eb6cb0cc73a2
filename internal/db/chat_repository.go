package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gongobongo-backend-go/internal/models"
)

const chatsCollection = "chats"

// firestoreChatRepository implements the ChatRepository interface using Firestore.
type firestoreChatRepository struct {
	client *firestore.Client
}

// NewFirestoreChatRepository creates a new instance of firestoreChatRepository.
func NewFirestoreChatRepository(client *firestore.Client) ChatRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ChatRepository.")
	}
	return &firestoreChatRepository{client: client}
}

// Create adds a new chat document to Firestore with an auto-generated ID.
// CreatedAt and UpdatedAt are handled by serverTimestamp tags.
func (r *firestoreChatRepository) Create(ctx context.Context, chat *models.Chat) (string, error) {
	docRef := r.client.Collection(chatsCollection).NewDoc()
	chat.ID = docRef.ID

	_, err := docRef.Create(ctx, chat)
	if err != nil {
		return "", fmt.Errorf("failed to create chat: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a chat document from Firestore by its ID.
func (r *firestoreChatRepository) GetByID(ctx context.Context, chatID string) (*models.Chat, error) {
	if chatID == "" {
		return nil, errors.New("chatID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(chatsCollection).Doc(chatID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("chat with ID '%s' not found: %w", chatID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get chat with ID '%s': %w", chatID, err)
	}

	var chat models.Chat
	if err := docSnap.DataTo(&chat); err != nil {
		return nil, fmt.Errorf("failed to decode chat data for ID '%s': %w", chatID, err)
	}
	chat.ID = docSnap.Ref.ID

	return &chat, nil
}

// FindDirect returns the existing 1:1 chat between uidA and uidB, or ErrNotFound.
// Firestore cannot filter on two array-contains clauses at once, so the second
// participant is matched client-side, the same way the original lookup worked.
func (r *firestoreChatRepository) FindDirect(ctx context.Context, uidA, uidB string) (*models.Chat, error) {
	if uidA == "" || uidB == "" {
		return nil, errors.New("both participant UIDs are required for FindDirect")
	}

	query := r.client.Collection(chatsCollection).
		Where("isGroup", "==", false).
		Where("participants", "array-contains", uidA)

	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate chats for participant '%s': %w", uidA, err)
		}

		var chat models.Chat
		if err := doc.DataTo(&chat); err != nil {
			log.Printf("Error decoding chat data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		if len(chat.Participants) == 2 && chat.HasParticipant(uidB) {
			chat.ID = doc.Ref.ID
			return &chat, nil
		}
	}

	return nil, fmt.Errorf("direct chat between '%s' and '%s' not found: %w", uidA, uidB, ErrNotFound)
}

// ListByParticipant returns all chats the user participates in, most recently
// updated first.
func (r *firestoreChatRepository) ListByParticipant(ctx context.Context, uid string) ([]*models.Chat, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for ListByParticipant operation")
	}

	query := r.client.Collection(chatsCollection).
		Where("participants", "array-contains", uid).
		OrderBy("updatedAt", firestore.Desc)

	return r.collect(ctx, query, uid)
}

// ListPendingFor returns pending chats where uid participates but did not
// initiate, newest first. These are the user's incoming chat requests. The
// initiator exclusion runs client-side; an inequality filter would force the
// query to order on initiatedBy instead of updatedAt.
func (r *firestoreChatRepository) ListPendingFor(ctx context.Context, uid string) ([]*models.Chat, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for ListPendingFor operation")
	}

	query := r.client.Collection(chatsCollection).
		Where("participants", "array-contains", uid).
		Where("status", "==", models.ChatStatusPending).
		OrderBy("updatedAt", firestore.Desc)

	chats, err := r.collect(ctx, query, uid)
	if err != nil {
		return nil, err
	}

	incoming := chats[:0]
	for _, c := range chats {
		if c.InitiatedBy != uid {
			incoming = append(incoming, c)
		}
	}
	return incoming, nil
}

// SetStatus updates the lifecycle status of a chat and bumps updatedAt.
func (r *firestoreChatRepository) SetStatus(ctx context.Context, chatID, chatStatus string) error {
	if chatID == "" {
		return errors.New("chatID cannot be empty for SetStatus operation")
	}
	_, err := r.client.Collection(chatsCollection).Doc(chatID).Update(ctx, []firestore.Update{
		{Path: "status", Value: chatStatus},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("chat with ID '%s' not found: %w", chatID, ErrNotFound)
		}
		return fmt.Errorf("failed to update status of chat '%s': %w", chatID, err)
	}
	return nil
}

func (r *firestoreChatRepository) collect(ctx context.Context, query firestore.Query, uid string) ([]*models.Chat, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var chats []*models.Chat
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate chats for '%s': %w", uid, err)
		}

		var chat models.Chat
		if err := doc.DataTo(&chat); err != nil {
			log.Printf("Error decoding chat data (ID: %s) for '%s': %v. Skipping.", doc.Ref.ID, uid, err)
			continue
		}
		chat.ID = doc.Ref.ID
		chats = append(chats, &chat)
	}

	return chats, nil
}
