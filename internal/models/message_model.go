package models

import "time"

// MessageStatusSent is the only delivery status the pipeline produces today;
// "delivered" and "read" are reserved values carried for display compatibility.
const MessageStatusSent = "sent"

// RepliedSnippetLimit is the maximum number of characters of the replied-to
// message stored on the replying message before an ellipsis marker is appended.
const RepliedSnippetLimit = 70

// Message is one unit of conversation content, stored in the messages
// subcollection of its Chat. Sender display metadata is snapshotted at send
// time; later profile edits do not rewrite history.
type Message struct {
	ID                string    `json:"id" firestore:"-"` // Document ID, auto-generated
	Text              string    `json:"text" firestore:"text"`
	SenderID          string    `json:"senderId" firestore:"senderId"`
	Timestamp         time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	Status            string    `json:"status" firestore:"status"`
	SenderDisplayName string    `json:"senderDisplayName,omitempty" firestore:"senderDisplayName,omitempty"`
	SenderPhotoURL    string    `json:"senderPhotoURL,omitempty" firestore:"senderPhotoURL,omitempty"`

	// Reply context. ReplyTo is advisory-only; it is not validated against the
	// conversation's message set at write time.
	ReplyTo              string `json:"replyTo,omitempty" firestore:"replyTo,omitempty"`
	RepliedMessageText   string `json:"repliedMessageText,omitempty" firestore:"repliedMessageText,omitempty"`
	RepliedMessageSender string `json:"repliedMessageSender,omitempty" firestore:"repliedMessageSender,omitempty"`
}
