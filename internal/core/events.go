package core

import "time"

// EventMessageSent is the event type published to the notifications queue
// after every successful message append.
const EventMessageSent = "message.sent"

// MessageSentEvent is the payload published for each delivered message. The
// notification worker fans it out to the recipients that opted in to email
// alerts.
type MessageSentEvent struct {
	Type              string    `json:"type"`
	ChatID            string    `json:"chatId"`
	MessageID         string    `json:"messageId"`
	SenderID          string    `json:"senderId"`
	SenderDisplayName string    `json:"senderDisplayName,omitempty"`
	Recipients        []string  `json:"recipients"`
	Preview           string    `json:"preview"`
	SentAt            time.Time `json:"sentAt"`
}
