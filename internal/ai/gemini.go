package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// maxSuggestions caps the number of reply candidates returned regardless of
// what the model produces.
const maxSuggestions = 3

const botPrompt = `You are Gemini Bot, a friendly and helpful chat companion integrated into the Gongo Bongo Chat Hub.
Your goal is to have a natural, concise, and engaging conversation.
Keep your responses relatively short, like a real chat message.
Avoid overly long paragraphs.

User's message: %q

Your response:`

const suggestPrompt = `You are a helpful AI assistant that suggests smart replies to messages. Your goal is to help the user quickly respond.

Given the following message:
%q

Suggest 3 short replies that the user can send. The replies should be concise, typically no more than 5 words each.
IMPORTANT: Respond in the same language as the original message.
Format your output ONLY as a JSON array of strings. For example: ["Sounds good!", "Okay", "I'll check"]
If the message is a simple greeting or acknowledgement, provide appropriate short responses.
If the message seems to conclude a conversation (e.g. "bye", "talk later"), suggest appropriate parting replies.`

const summarizePrompt = `Summarize the following text into a concise summary:

Text: %s`

// Client wraps the Gemini SDK with the three single-shot prompt flows the
// application uses. Each call is one templated prompt with no history, no
// streaming and no retries.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates a Gemini client using the Gemini API backend.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		return nil, errors.New("gemini model name is required")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}
	return &Client{genai: gc, model: model}, nil
}

// Summarize returns a concise summary of the given text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	out, err := c.generate(ctx, fmt.Sprintf(summarizePrompt, text), nil)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// BotReply returns the bot's response to a single user message. No
// conversation history is passed.
func (c *Client) BotReply(ctx context.Context, message string) (string, error) {
	out, err := c.generate(ctx, fmt.Sprintf(botPrompt, message), nil)
	if err != nil {
		return "", fmt.Errorf("bot reply: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// SuggestReplies returns up to 3 short reply candidates for the given message,
// in the same language as the input. The length guideline is prompt-enforced
// only; the count cap is mechanical.
func (c *Client) SuggestReplies(ctx context.Context, message string) ([]string, error) {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	out, err := c.generate(ctx, fmt.Sprintf(suggestPrompt, message), cfg)
	if err != nil {
		return nil, fmt.Errorf("suggest replies: %w", err)
	}
	return ParseSuggestions(out), nil
}

func (c *Client) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("model returned an empty response")
	}
	return text, nil
}

// ParseSuggestions extracts reply candidates from the model output. The
// prompt asks for a JSON string array; code fences and stray lines are
// tolerated because models do not always comply.
func ParseSuggestions(raw string) []string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed []string
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		// Fall back to treating each non-empty line as one candidate.
		for _, line := range strings.Split(cleaned, "\n") {
			line = strings.Trim(strings.TrimSpace(line), `-*"`)
			if line != "" {
				parsed = append(parsed, line)
			}
		}
	}

	var suggestions []string
	for _, s := range parsed {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		suggestions = append(suggestions, s)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}
