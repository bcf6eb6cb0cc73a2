package models

import "time"

// User represents a user profile in the system, including the Firestore-side
// presence snapshot. The Firebase Auth UID is the Firestore document ID.
type User struct {
	UID         string    `json:"uid" firestore:"uid"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	IsBot       bool      `json:"isBot,omitempty" firestore:"isBot,omitempty"`
	IsOnline    bool      `json:"isOnline" firestore:"isOnline"`
	LastSeen    time.Time `json:"lastSeen,omitempty" firestore:"lastSeen,omitempty"`
	LastLogin   time.Time `json:"lastLogin,omitempty" firestore:"lastLogin,omitempty"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// PresenceStatus is the Realtime Database record kept under /status/{uid}.
// It is the authoritative presence channel; the Firestore fields on User are a
// stale-tolerant fallback refreshed by the same writers.
type PresenceStatus struct {
	IsOnline    bool   `json:"isOnline"`
	LastSeen    int64  `json:"lastSeen"` // Unix milliseconds, matching the RTDB server clock convention
	DisplayName string `json:"displayName,omitempty"`
}
