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

const messagesSubcollection = "messages"

// firestoreMessageRepository implements the MessageRepository interface using
// Firestore. Messages are stored in the "messages" subcollection of their chat.
type firestoreMessageRepository struct {
	client *firestore.Client
}

// NewFirestoreMessageRepository creates a new instance of firestoreMessageRepository.
func NewFirestoreMessageRepository(client *firestore.Client) MessageRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for MessageRepository.")
	}
	return &firestoreMessageRepository{client: client}
}

// Append writes the message document and the parent chat's summary fields as a
// single write batch. The batch commits atomically, so a reader never observes
// an updated lastMessage without the corresponding message document.
func (r *firestoreMessageRepository) Append(ctx context.Context, chatID string, msg *models.Message) (string, error) {
	if chatID == "" {
		return "", errors.New("chatID cannot be empty for Append operation")
	}
	if msg == nil {
		return "", errors.New("message cannot be nil for Append operation")
	}

	chatRef := r.client.Collection(chatsCollection).Doc(chatID)
	msgRef := chatRef.Collection(messagesSubcollection).NewDoc()
	msg.ID = msgRef.ID

	batch := r.client.Batch()
	batch.Create(msgRef, msg)
	batch.Update(chatRef, []firestore.Update{
		{Path: "lastMessage", Value: map[string]interface{}{
			"text":      msg.Text,
			"timestamp": firestore.ServerTimestamp,
			"senderId":  msg.SenderID,
		}},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})

	if _, err := batch.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to append message to chat '%s': %w", chatID, err)
	}
	return msgRef.ID, nil
}

// GetByID retrieves one message from a chat's subcollection.
func (r *firestoreMessageRepository) GetByID(ctx context.Context, chatID, messageID string) (*models.Message, error) {
	if chatID == "" || messageID == "" {
		return nil, errors.New("chatID and messageID are required for GetByID")
	}

	docSnap, err := r.client.Collection(chatsCollection).Doc(chatID).
		Collection(messagesSubcollection).Doc(messageID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("message '%s' in chat '%s' not found: %w", messageID, chatID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get message '%s' in chat '%s': %w", messageID, chatID, err)
	}

	var msg models.Message
	if err := docSnap.DataTo(&msg); err != nil {
		return nil, fmt.Errorf("failed to decode message '%s' in chat '%s': %w", messageID, chatID, err)
	}
	msg.ID = docSnap.Ref.ID

	return &msg, nil
}

// ListByChatID returns all messages of a chat ordered by timestamp ascending,
// the display order.
func (r *firestoreMessageRepository) ListByChatID(ctx context.Context, chatID string) ([]*models.Message, error) {
	if chatID == "" {
		return nil, errors.New("chatID cannot be empty for ListByChatID operation")
	}

	iter := r.client.Collection(chatsCollection).Doc(chatID).
		Collection(messagesSubcollection).
		OrderBy("timestamp", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var messages []*models.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate messages of chat '%s': %w", chatID, err)
		}

		var msg models.Message
		if err := doc.DataTo(&msg); err != nil {
			log.Printf("Error decoding message data (ID: %s) in chat '%s': %v. Skipping.", doc.Ref.ID, chatID, err)
			continue
		}
		msg.ID = doc.Ref.ID
		messages = append(messages, &msg)
	}

	return messages, nil
}

// HasMessageFrom reports whether senderID has written at least one message in
// the chat. Used by the lifecycle eligibility check for the single invitation
// message rule.
func (r *firestoreMessageRepository) HasMessageFrom(ctx context.Context, chatID, senderID string) (bool, error) {
	if chatID == "" || senderID == "" {
		return false, errors.New("chatID and senderID are required for HasMessageFrom")
	}

	iter := r.client.Collection(chatsCollection).Doc(chatID).
		Collection(messagesSubcollection).
		Where("senderId", "==", senderID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to probe messages from '%s' in chat '%s': %w", senderID, chatID, err)
	}
	return true, nil
}
