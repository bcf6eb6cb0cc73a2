package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gongobongo-backend-go/internal/models"
)

const settingsCollection = "settings"

// firestoreSettingsRepository implements the SettingsRepository interface
// using Firestore, one document per user keyed by UID.
type firestoreSettingsRepository struct {
	client *firestore.Client
}

// NewFirestoreSettingsRepository creates a new instance of firestoreSettingsRepository.
func NewFirestoreSettingsRepository(client *firestore.Client) SettingsRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SettingsRepository.")
	}
	return &firestoreSettingsRepository{client: client}
}

// Get retrieves the settings document for a user, or ErrNotFound when the
// user has never saved any.
func (r *firestoreSettingsRepository) Get(ctx context.Context, uid string) (*models.UserSettings, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for Get operation")
	}
	docSnap, err := r.client.Collection(settingsCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("settings for UID '%s' not found: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get settings for UID '%s': %w", uid, err)
	}

	var settings models.UserSettings
	if err := docSnap.DataTo(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings for UID '%s': %w", uid, err)
	}
	settings.UID = docSnap.Ref.ID

	return &settings, nil
}

// Set writes the settings document for a user, replacing any previous record.
func (r *firestoreSettingsRepository) Set(ctx context.Context, settings *models.UserSettings) error {
	if settings == nil || settings.UID == "" {
		return errors.New("settings with a UID are required for Set operation")
	}
	_, err := r.client.Collection(settingsCollection).Doc(settings.UID).Set(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to set settings for UID '%s': %w", settings.UID, err)
	}
	return nil
}
