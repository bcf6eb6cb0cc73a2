package core

import (
	"context"
	"errors"
	"fmt"

	"gongobongo-backend-go/internal/db"
	"gongobongo-backend-go/internal/models"
)

// ErrInvalidTheme is returned for theme values outside the supported set.
var ErrInvalidTheme = errors.New("theme must be 'light' or 'dark'")

// settingsService implements the SettingsService interface.
type settingsService struct {
	settingsRepo db.SettingsRepository
}

// NewSettingsService creates a new SettingsService instance.
func NewSettingsService(settingsRepo db.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

// Get returns the user's settings, falling back to the defaults when nothing
// has been saved yet. The defaults are not persisted on read.
func (s *settingsService) Get(ctx context.Context, uid string) (*models.UserSettings, error) {
	settings, err := s.settingsRepo.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.DefaultSettings(uid), nil
		}
		return nil, fmt.Errorf("failed to get settings for '%s': %w", uid, err)
	}
	return settings, nil
}

// SetNotifications replaces the user's notification preferences, keeping the
// current theme.
func (s *settingsService) SetNotifications(ctx context.Context, uid string, prefs models.NotificationSettings) (*models.UserSettings, error) {
	settings, err := s.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	settings.Notifications = prefs
	if err := s.settingsRepo.Set(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings for '%s': %w", uid, err)
	}
	return settings, nil
}

// SetTheme replaces the user's theme preference, keeping the current
// notification flags.
func (s *settingsService) SetTheme(ctx context.Context, uid, theme string) (*models.UserSettings, error) {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return nil, fmt.Errorf("%w: got '%s'", ErrInvalidTheme, theme)
	}
	settings, err := s.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	settings.Theme = theme
	if err := s.settingsRepo.Set(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings for '%s': %w", uid, err)
	}
	return settings, nil
}
