package models

// Well-known identity for the automated chat participant. Conversations with
// this identity bypass the request/accept lifecycle entirely.
const (
	BotUID         = "gongo-bongo-gemini-bot"
	BotDisplayName = "Gemini Bot"
	BotPhotoURL    = "https://www.gstatic.com/lamda/images/sparkle_resting_v2.gif"
)

// IsBot reports whether uid is the automated participant.
func IsBot(uid string) bool {
	return uid == BotUID
}

// BotFallbackReply is appended verbatim when the generation call for a bot
// conversation fails.
const BotFallbackReply = "Sorry, I encountered an error. Please try again."
