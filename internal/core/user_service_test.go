package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"gongobongo-backend-go/internal/models"
)

func strPtr(s string) *string { return &s }

func TestGetOrCreate(t *testing.T) {
	t.Run("first login creates the profile and marks online", func(t *testing.T) {
		userRepo := newFakeUserRepo()
		presenceRepo := newFakePresenceRepo()
		svc := NewUserService(userRepo, presenceRepo, newFakeAccounts(), zap.NewNop())

		user, created, err := svc.GetOrCreate(context.Background(), "alice", "alice@example.com", "Alice", "https://img/a.png")
		if err != nil {
			t.Fatalf("GetOrCreate returned error: %v", err)
		}
		if !created {
			t.Error("created = false, want true on first login")
		}
		if user.Email != "alice@example.com" || user.DisplayName != "Alice" {
			t.Errorf("profile = %+v, want claims copied in", user)
		}
		if status := presenceRepo.statuses["alice"]; status == nil || !status.IsOnline {
			t.Errorf("realtime presence = %+v, want online", status)
		}
	})

	t.Run("repeat login keeps the stored profile", func(t *testing.T) {
		userRepo := newFakeUserRepo(&models.User{UID: "alice", Email: "alice@example.com", DisplayName: "Custom Name"})
		svc := NewUserService(userRepo, newFakePresenceRepo(), newFakeAccounts(), zap.NewNop())

		user, created, err := svc.GetOrCreate(context.Background(), "alice", "alice@example.com", "Token Name", "")
		if err != nil {
			t.Fatalf("GetOrCreate returned error: %v", err)
		}
		if created {
			t.Error("created = true, want false for existing profile")
		}
		if user.DisplayName != "Custom Name" {
			t.Errorf("displayName = %q, want the stored name kept over token claims", user.DisplayName)
		}
		if user.LastLogin.IsZero() {
			t.Error("lastLogin not refreshed")
		}
	})
}

func TestGetByIDPresenceResolution(t *testing.T) {
	userRepo := newFakeUserRepo(&models.User{UID: "alice", IsOnline: false})
	presenceRepo := newFakePresenceRepo()
	lastSeen := time.Now().Add(-time.Minute).UnixMilli()
	presenceRepo.statuses["alice"] = &models.PresenceStatus{IsOnline: true, LastSeen: lastSeen}
	svc := NewUserService(userRepo, presenceRepo, newFakeAccounts(), zap.NewNop())

	user, err := svc.GetByID(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if !user.IsOnline {
		t.Error("isOnline = false, want realtime record to win over the snapshot")
	}
	if user.LastSeen.UnixMilli() != lastSeen {
		t.Errorf("lastSeen = %v, want the realtime value", user.LastSeen)
	}

	t.Run("falls back to snapshot without a realtime record", func(t *testing.T) {
		snapRepo := newFakeUserRepo(&models.User{UID: "bob", IsOnline: true})
		svc := NewUserService(snapRepo, newFakePresenceRepo(), newFakeAccounts(), zap.NewNop())
		user, err := svc.GetByID(context.Background(), "bob")
		if err != nil {
			t.Fatalf("GetByID returned error: %v", err)
		}
		if !user.IsOnline {
			t.Error("isOnline = false, want the snapshot value kept")
		}
	})

	t.Run("missing user", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(), newFakePresenceRepo(), newFakeAccounts(), zap.NewNop())
		if _, err := svc.GetByID(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("err = %v, want ErrUserNotFound", err)
		}
	})
}

func TestListContacts(t *testing.T) {
	userRepo := newFakeUserRepo(
		&models.User{UID: "alice"},
		&models.User{UID: "bob"},
		&models.User{UID: "carol"},
	)
	svc := NewUserService(userRepo, newFakePresenceRepo(), newFakeAccounts(), zap.NewNop())

	contacts, err := svc.ListContacts(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListContacts returned error: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("contacts = %d, want 2 (caller excluded)", len(contacts))
	}
	for _, c := range contacts {
		if c.UID == "alice" {
			t.Error("caller present in their own contact list")
		}
	}
}

func TestUpdateProfile(t *testing.T) {
	userRepo := newFakeUserRepo(&models.User{UID: "alice", DisplayName: "Alice", PhotoURL: "old"})
	accounts := newFakeAccounts()
	svc := NewUserService(userRepo, newFakePresenceRepo(), accounts, zap.NewNop())

	user, err := svc.UpdateProfile(context.Background(), "alice", models.UpdateProfileRequest{
		DisplayName: strPtr("Alicia"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if user.DisplayName != "Alicia" {
		t.Errorf("displayName = %q, want Alicia", user.DisplayName)
	}
	if user.PhotoURL != "old" {
		t.Errorf("photoURL = %q, want untouched field kept", user.PhotoURL)
	}
	if got := accounts.updated["alice"]; got[0] != "Alicia" {
		t.Errorf("auth account update = %v, want displayName propagated", got)
	}

	t.Run("auth propagation failure does not fail the update", func(t *testing.T) {
		repo := newFakeUserRepo(&models.User{UID: "bob"})
		failing := newFakeAccounts()
		failing.err = errors.New("auth backend down")
		svc := NewUserService(repo, newFakePresenceRepo(), failing, zap.NewNop())

		if _, err := svc.UpdateProfile(context.Background(), "bob", models.UpdateProfileRequest{DisplayName: strPtr("Bobby")}); err != nil {
			t.Errorf("UpdateProfile returned error: %v", err)
		}
		if repo.users["bob"].DisplayName != "Bobby" {
			t.Error("profile document not updated")
		}
	})
}

func TestDeleteAccount(t *testing.T) {
	userRepo := newFakeUserRepo(&models.User{UID: "alice"})
	presenceRepo := newFakePresenceRepo()
	presenceRepo.statuses["alice"] = &models.PresenceStatus{IsOnline: true}
	accounts := newFakeAccounts()
	svc := NewUserService(userRepo, presenceRepo, accounts, zap.NewNop())

	if err := svc.Delete(context.Background(), "alice"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(accounts.deleted) != 1 || accounts.deleted[0] != "alice" {
		t.Errorf("auth deletions = %v, want [alice]", accounts.deleted)
	}
	if _, ok := userRepo.users["alice"]; ok {
		t.Error("profile document still present")
	}
	if _, ok := presenceRepo.statuses["alice"]; ok {
		t.Error("presence record still present")
	}
}
