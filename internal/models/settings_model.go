package models

// Theme preference values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// NotificationSettings holds a user's notification preferences. The web client
// kept these under a fixed local-storage key; the backend persists them per
// user in the settings collection so every device sees the same record.
type NotificationSettings struct {
	DesktopEnabled bool `json:"desktopEnabled" firestore:"desktopEnabled"`
	EmailEnabled   bool `json:"emailEnabled" firestore:"emailEnabled"`
	SoundEnabled   bool `json:"soundEnabled" firestore:"soundEnabled"`
}

// UserSettings is the per-user settings document, keyed by UID.
type UserSettings struct {
	UID           string               `json:"uid" firestore:"-"`
	Notifications NotificationSettings `json:"notifications" firestore:"notifications"`
	Theme         string               `json:"theme" firestore:"theme"`
}

// DefaultSettings returns the settings applied before a user has saved any.
func DefaultSettings(uid string) *UserSettings {
	return &UserSettings{
		UID: uid,
		Notifications: NotificationSettings{
			DesktopEnabled: true,
			EmailEnabled:   false,
			SoundEnabled:   true,
		},
		Theme: ThemeLight,
	}
}
