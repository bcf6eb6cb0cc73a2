package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gongobongo-backend-go/internal/db"
	"gongobongo-backend-go/internal/models"
)

// presenceService implements the PresenceService interface. The realtime
// channel is the authoritative record; the Firestore profile snapshot is
// refreshed on the same writes but readers must tolerate it lagging.
type presenceService struct {
	presenceRepo db.PresenceRepository
	userRepo     db.UserRepository
	offlineAfter time.Duration
	logger       *zap.Logger
}

// NewPresenceService creates a new PresenceService instance. offlineAfter is
// how long a heartbeat may be missing before the sweeper marks the user
// offline.
func NewPresenceService(presenceRepo db.PresenceRepository, userRepo db.UserRepository, offlineAfter time.Duration, logger *zap.Logger) PresenceService {
	return &presenceService{
		presenceRepo: presenceRepo,
		userRepo:     userRepo,
		offlineAfter: offlineAfter,
		logger:       logger,
	}
}

// Heartbeat records that the user is online right now, on both channels.
func (s *presenceService) Heartbeat(ctx context.Context, uid string) error {
	return s.setPresence(ctx, uid, true)
}

// Offline marks the user offline on both channels. Called on explicit logout;
// clients that vanish without one are caught by SweepStale.
func (s *presenceService) Offline(ctx context.Context, uid string) error {
	return s.setPresence(ctx, uid, false)
}

func (s *presenceService) setPresence(ctx context.Context, uid string, online bool) error {
	if uid == "" {
		return errors.New("uid is required")
	}

	displayName := ""
	if user, err := s.userRepo.GetByID(ctx, uid); err == nil {
		displayName = user.DisplayName
	}

	status := &models.PresenceStatus{
		IsOnline:    online,
		LastSeen:    time.Now().UnixMilli(),
		DisplayName: displayName,
	}
	if err := s.presenceRepo.SetStatus(ctx, uid, status); err != nil {
		return fmt.Errorf("failed to write realtime presence for '%s': %w", uid, err)
	}

	// The mirror write is best-effort; the realtime record already carries
	// the truth.
	if err := s.userRepo.SetOnline(ctx, uid, online); err != nil && !errors.Is(err, db.ErrNotFound) {
		s.logger.Warn("Failed to mirror presence to profile",
			zap.String("uid", uid),
			zap.Bool("online", online),
			zap.Error(err))
	}
	return nil
}

// SweepStale marks offline every user whose heartbeat has been silent longer
// than the configured window. Substitutes server-side for a client-registered
// disconnect hook. Returns the number of users swept.
func (s *presenceService) SweepStale(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.offlineAfter)
	stale, err := s.presenceRepo.ListOnlineBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale presence records: %w", err)
	}

	swept := 0
	for _, uid := range stale {
		if err := s.Offline(ctx, uid); err != nil {
			s.logger.Warn("Failed to sweep stale presence record",
				zap.String("uid", uid),
				zap.Error(err))
			continue
		}
		swept++
	}
	if swept > 0 {
		s.logger.Info("Swept stale presence records", zap.Int("count", swept))
	}
	return swept, nil
}
