package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	rtdb "firebase.google.com/go/v4/db"

	"gongobongo-backend-go/internal/models"
)

const statusPath = "status"

// rtdbPresenceRepository implements the PresenceRepository interface on the
// Realtime Database, one record per user under /status/{uid}. This is the
// authoritative presence channel; the Firestore mirror is fallback only.
type rtdbPresenceRepository struct {
	client *rtdb.Client
}

// NewRTDBPresenceRepository creates a new instance of rtdbPresenceRepository.
func NewRTDBPresenceRepository(client *rtdb.Client) PresenceRepository {
	if client == nil {
		log.Fatal("Realtime Database client is not initialized for PresenceRepository.")
	}
	return &rtdbPresenceRepository{client: client}
}

// SetStatus writes the presence record for a user.
func (r *rtdbPresenceRepository) SetStatus(ctx context.Context, uid string, presence *models.PresenceStatus) error {
	if uid == "" {
		return errors.New("uid cannot be empty for SetStatus operation")
	}
	if presence == nil {
		return errors.New("presence cannot be nil for SetStatus operation")
	}
	if err := r.client.NewRef(statusPath).Child(uid).Set(ctx, presence); err != nil {
		return fmt.Errorf("failed to set presence for UID '%s': %w", uid, err)
	}
	return nil
}

// GetStatus reads the presence record for a user, or ErrNotFound when no
// record exists at the path.
func (r *rtdbPresenceRepository) GetStatus(ctx context.Context, uid string) (*models.PresenceStatus, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetStatus operation")
	}
	var presence *models.PresenceStatus
	if err := r.client.NewRef(statusPath).Child(uid).Get(ctx, &presence); err != nil {
		return nil, fmt.Errorf("failed to get presence for UID '%s': %w", uid, err)
	}
	if presence == nil {
		return nil, fmt.Errorf("presence for UID '%s' not found: %w", uid, ErrNotFound)
	}
	return presence, nil
}

// ListOnlineBefore returns the UIDs of users marked online whose lastSeen is
// older than the cutoff. Reads the whole /status subtree; the record set is
// one small entry per user.
func (r *rtdbPresenceRepository) ListOnlineBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	var records map[string]models.PresenceStatus
	if err := r.client.NewRef(statusPath).Get(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to list presence records: %w", err)
	}

	cutoffMillis := cutoff.UnixMilli()
	var stale []string
	for uid, rec := range records {
		if rec.IsOnline && rec.LastSeen < cutoffMillis {
			stale = append(stale, uid)
		}
	}
	return stale, nil
}

// Remove deletes the presence record for a user. Used for account deletion.
func (r *rtdbPresenceRepository) Remove(ctx context.Context, uid string) error {
	if uid == "" {
		return errors.New("uid cannot be empty for Remove operation")
	}
	if err := r.client.NewRef(statusPath).Child(uid).Delete(ctx); err != nil {
		return fmt.Errorf("failed to remove presence for UID '%s': %w", uid, err)
	}
	return nil
}
