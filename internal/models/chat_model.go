package models

import "time"

// Chat lifecycle states for 1:1 conversations. Group chats carry no status.
const (
	ChatStatusPending  = "pending"
	ChatStatusAccepted = "accepted"
	ChatStatusDeclined = "declined"
)

// LastMessage is the denormalized summary snippet stored on a Chat document.
type LastMessage struct {
	Text      string    `json:"text" firestore:"text"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
	SenderID  string    `json:"senderId" firestore:"senderId"`
}

// Chat represents a 1:1 or group conversation.
//
// For a non-bot 1:1 chat, Status starts as "pending" with InitiatedBy set to the
// creator; the non-initiating participant moves it to "accepted" or "declined",
// both terminal. A chat with the bot identity is created "accepted" directly and
// InitiatedBy is left empty.
type Chat struct {
	ID           string       `json:"id" firestore:"-"` // Document ID, auto-generated
	Participants []string     `json:"participants" firestore:"participants"`
	IsGroup      bool         `json:"isGroup" firestore:"isGroup"`
	GroupName    string       `json:"groupName,omitempty" firestore:"groupName,omitempty"`
	GroupAvatar  string       `json:"groupAvatar,omitempty" firestore:"groupAvatar,omitempty"`
	Status       string       `json:"status,omitempty" firestore:"status,omitempty"`
	InitiatedBy  string       `json:"initiatedBy,omitempty" firestore:"initiatedBy,omitempty"`
	LastMessage  *LastMessage `json:"lastMessage" firestore:"lastMessage"`
	CreatedAt    time.Time    `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt    time.Time    `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// HasParticipant reports whether uid is a member of the chat.
func (c *Chat) HasParticipant(uid string) bool {
	for _, p := range c.Participants {
		if p == uid {
			return true
		}
	}
	return false
}

// PartnerOf returns the other participant of a 1:1 chat, or "" for groups or
// when uid is not a member.
func (c *Chat) PartnerOf(uid string) string {
	if c.IsGroup {
		return ""
	}
	for _, p := range c.Participants {
		if p != uid {
			return p
		}
	}
	return ""
}
