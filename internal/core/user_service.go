package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"gongobongo-backend-go/internal/db"
	"gongobongo-backend-go/internal/models"
)

// ErrUserNotFound is returned when the requested user profile does not exist.
var ErrUserNotFound = errors.New("user not found")

// AuthAccountManager is the slice of the Firebase Auth admin surface the user
// service needs. Satisfied by firebaseAuthAccounts in production and by fakes
// in tests.
type AuthAccountManager interface {
	UpdateAccount(ctx context.Context, uid, displayName, photoURL string) error
	DeleteAccount(ctx context.Context, uid string) error
}

// firebaseAuthAccounts adapts *auth.Client to AuthAccountManager.
type firebaseAuthAccounts struct {
	client *auth.Client
}

// NewFirebaseAuthAccounts wraps the Firebase Auth admin client.
func NewFirebaseAuthAccounts(client *auth.Client) AuthAccountManager {
	return &firebaseAuthAccounts{client: client}
}

func (a *firebaseAuthAccounts) UpdateAccount(ctx context.Context, uid, displayName, photoURL string) error {
	params := &auth.UserToUpdate{}
	changed := false
	if displayName != "" {
		params = params.DisplayName(displayName)
		changed = true
	}
	if photoURL != "" {
		params = params.PhotoURL(photoURL)
		changed = true
	}
	if !changed {
		return nil
	}
	if _, err := a.client.UpdateUser(ctx, uid, params); err != nil {
		return fmt.Errorf("failed to update auth account '%s': %w", uid, err)
	}
	return nil
}

func (a *firebaseAuthAccounts) DeleteAccount(ctx context.Context, uid string) error {
	if err := a.client.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("failed to delete auth account '%s': %w", uid, err)
	}
	return nil
}

// userService implements the UserService interface.
type userService struct {
	userRepo     db.UserRepository
	presenceRepo db.PresenceRepository
	accounts     AuthAccountManager
	logger       *zap.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, presenceRepo db.PresenceRepository, accounts AuthAccountManager, logger *zap.Logger) UserService {
	return &userService{
		userRepo:     userRepo,
		presenceRepo: presenceRepo,
		accounts:     accounts,
		logger:       logger,
	}
}

// GetOrCreate resolves the profile for an authenticated caller, creating it
// from the token claims on first login. Every call refreshes lastLogin and
// marks the user online on both presence channels.
func (s *userService) GetOrCreate(ctx context.Context, uid, email, displayName, photoURL string) (*models.User, bool, error) {
	if uid == "" {
		return nil, false, errors.New("uid is required")
	}

	created := false
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			return nil, false, fmt.Errorf("failed to load profile for '%s': %w", uid, err)
		}
		created = true
		user = &models.User{
			UID:         uid,
			Email:       email,
			DisplayName: displayName,
			PhotoURL:    photoURL,
		}
	}

	user.LastLogin = time.Now().UTC()
	user.IsOnline = true
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to save profile for '%s': %w", uid, err)
	}

	s.markOnline(ctx, user)

	return user, created, nil
}

// GetByID returns a profile with presence resolved from the realtime channel.
// The Firestore snapshot fields are used as-is when the realtime record is
// missing or unreadable.
func (s *userService) GetByID(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrUserNotFound, uid)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", uid, err)
	}
	s.resolvePresence(ctx, user)
	return user, nil
}

// ListContacts returns every other profile, presence-resolved.
func (s *userService) ListContacts(ctx context.Context, uid string) ([]*models.User, error) {
	users, err := s.userRepo.ListExcept(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts for '%s': %w", uid, err)
	}
	for _, u := range users {
		s.resolvePresence(ctx, u)
	}
	return users, nil
}

// UpdateProfile applies the requested display name and photo changes to both
// the profile document and the Firebase Auth account.
func (s *userService) UpdateProfile(ctx context.Context, uid string, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: '%s'", ErrUserNotFound, uid)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", uid, err)
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save profile for '%s': %w", uid, err)
	}
	if err := s.accounts.UpdateAccount(ctx, uid, user.DisplayName, user.PhotoURL); err != nil {
		// The profile document is the source of truth for the client; the
		// auth record lagging behind is tolerable.
		s.logger.Warn("Failed to propagate profile update to auth account",
			zap.String("uid", uid),
			zap.Error(err))
	}
	return user, nil
}

// Delete removes the account entirely: the Auth user, the profile document and
// the presence record. Chat and message history is retained.
func (s *userService) Delete(ctx context.Context, uid string) error {
	if err := s.accounts.DeleteAccount(ctx, uid); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, uid); err != nil {
		return err
	}
	if err := s.presenceRepo.Remove(ctx, uid); err != nil {
		s.logger.Warn("Failed to remove presence record for deleted account",
			zap.String("uid", uid),
			zap.Error(err))
	}
	return nil
}

// markOnline writes the online presence record to the realtime channel.
// Best-effort; login never fails on a presence write.
func (s *userService) markOnline(ctx context.Context, user *models.User) {
	status := &models.PresenceStatus{
		IsOnline:    true,
		LastSeen:    time.Now().UnixMilli(),
		DisplayName: user.DisplayName,
	}
	if err := s.presenceRepo.SetStatus(ctx, user.UID, status); err != nil {
		s.logger.Warn("Failed to write realtime presence on login",
			zap.String("uid", user.UID),
			zap.Error(err))
	}
}

// resolvePresence overlays the realtime presence record onto the profile's
// snapshot fields when one exists.
func (s *userService) resolvePresence(ctx context.Context, user *models.User) {
	status, err := s.presenceRepo.GetStatus(ctx, user.UID)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			s.logger.Debug("Realtime presence unavailable, using profile snapshot",
				zap.String("uid", user.UID),
				zap.Error(err))
		}
		return
	}
	user.IsOnline = status.IsOnline
	if status.LastSeen > 0 {
		user.LastSeen = time.UnixMilli(status.LastSeen).UTC()
	}
}
