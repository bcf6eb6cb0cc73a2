package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gongobongo-backend-go/internal/models"
)

const usersCollection = "users"

// ErrNotFound is a common error for when a document is not found in Firestore.
var ErrNotFound = errors.New("document not found")

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// GetByID retrieves a user document from Firestore by its UID (Firebase Auth UID).
func (r *firestoreUserRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with UID '%s' not found: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with UID '%s': %w", uid, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for UID '%s': %w", uid, err)
	}
	user.UID = docSnap.Ref.ID

	return &user, nil
}

// Upsert writes the full user document, creating it on first login. Callers
// load-and-modify before writing, so a plain Set is correct here; MergeAll
// only accepts map data. UpdatedAt is zeroed so its serverTimestamp tag stamps
// every write; a non-zero CreatedAt is carried through unchanged.
func (r *firestoreUserRepository) Upsert(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		return errors.New("user UID cannot be empty for Upsert operation")
	}
	user.UpdatedAt = time.Time{}
	_, err := r.client.Collection(usersCollection).Doc(user.UID).Set(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to upsert user with UID '%s': %w", user.UID, err)
	}
	return nil
}

// ListExcept returns all user profiles except the given UID, for the contacts
// listing. The exclusion is applied client-side; Firestore's != filter would
// force a composite ordering constraint for no gain at this collection size.
func (r *firestoreUserRepository) ListExcept(ctx context.Context, uid string) ([]*models.User, error) {
	iter := r.client.Collection(usersCollection).Documents(ctx)
	defer iter.Stop()

	var users []*models.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}
		if doc.Ref.ID == uid {
			continue
		}

		var user models.User
		if err := doc.DataTo(&user); err != nil {
			log.Printf("Error decoding user data (UID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		user.UID = doc.Ref.ID
		users = append(users, &user)
	}

	return users, nil
}

// SetOnline updates the Firestore-side presence fields. lastSeen is assigned
// by the Firestore server clock.
func (r *firestoreUserRepository) SetOnline(ctx context.Context, uid string, online bool) error {
	if uid == "" {
		return errors.New("uid cannot be empty for SetOnline operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "isOnline", Value: online},
		{Path: "lastSeen", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user with UID '%s' not found: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to update presence for UID '%s': %w", uid, err)
	}
	return nil
}

// Delete removes a user profile document. Used only for explicit account deletion.
func (r *firestoreUserRepository) Delete(ctx context.Context, uid string) error {
	if uid == "" {
		return errors.New("uid cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(uid).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user with UID '%s': %w", uid, err)
	}
	return nil
}
