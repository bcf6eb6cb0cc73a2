package core

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"gongobongo-backend-go/internal/models"
)

func TestHeartbeatAndOffline(t *testing.T) {
	presenceRepo := newFakePresenceRepo()
	userRepo := newFakeUserRepo(&models.User{UID: "alice", DisplayName: "Alice"})
	svc := NewPresenceService(presenceRepo, userRepo, 150*time.Second, zap.NewNop())

	if err := svc.Heartbeat(context.Background(), "alice"); err != nil {
		t.Fatalf("Heartbeat returned error: %v", err)
	}
	status := presenceRepo.statuses["alice"]
	if status == nil || !status.IsOnline {
		t.Fatalf("realtime status = %+v, want online record", status)
	}
	if status.DisplayName != "Alice" {
		t.Errorf("displayName = %q, want Alice", status.DisplayName)
	}
	if status.LastSeen == 0 {
		t.Error("lastSeen not set")
	}
	if !userRepo.online["alice"] {
		t.Error("profile mirror not marked online")
	}

	if err := svc.Offline(context.Background(), "alice"); err != nil {
		t.Fatalf("Offline returned error: %v", err)
	}
	if presenceRepo.statuses["alice"].IsOnline {
		t.Error("realtime status still online after Offline")
	}
	if userRepo.online["alice"] {
		t.Error("profile mirror still online after Offline")
	}
}

func TestHeartbeatToleratesMissingProfile(t *testing.T) {
	presenceRepo := newFakePresenceRepo()
	svc := NewPresenceService(presenceRepo, newFakeUserRepo(), 150*time.Second, zap.NewNop())

	// No profile document yet; the realtime record must still be written.
	if err := svc.Heartbeat(context.Background(), "newcomer"); err != nil {
		t.Fatalf("Heartbeat returned error: %v", err)
	}
	if presenceRepo.statuses["newcomer"] == nil {
		t.Error("realtime record missing for user without a profile")
	}
}

func TestSweepStale(t *testing.T) {
	presenceRepo := newFakePresenceRepo()
	userRepo := newFakeUserRepo(
		&models.User{UID: "stale"},
		&models.User{UID: "fresh"},
		&models.User{UID: "gone"},
	)
	svc := NewPresenceService(presenceRepo, userRepo, 150*time.Second, zap.NewNop())

	now := time.Now()
	presenceRepo.statuses["stale"] = &models.PresenceStatus{IsOnline: true, LastSeen: now.Add(-10 * time.Minute).UnixMilli()}
	presenceRepo.statuses["fresh"] = &models.PresenceStatus{IsOnline: true, LastSeen: now.UnixMilli()}
	presenceRepo.statuses["gone"] = &models.PresenceStatus{IsOnline: false, LastSeen: now.Add(-10 * time.Minute).UnixMilli()}

	swept, err := svc.SweepStale(context.Background())
	if err != nil {
		t.Fatalf("SweepStale returned error: %v", err)
	}
	if swept != 1 {
		t.Errorf("swept = %d, want 1", swept)
	}
	if presenceRepo.statuses["stale"].IsOnline {
		t.Error("stale user still online after sweep")
	}
	if !presenceRepo.statuses["fresh"].IsOnline {
		t.Error("fresh user was swept")
	}
}
