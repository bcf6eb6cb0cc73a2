package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrEmptyInput is returned when an assist flow receives no text to work on.
var ErrEmptyInput = errors.New("input text cannot be empty")

// assistService implements the AssistService interface on top of a
// TextGenerator.
type assistService struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewAssistService creates a new AssistService instance.
func NewAssistService(generator TextGenerator, logger *zap.Logger) AssistService {
	return &assistService{generator: generator, logger: logger}
}

// Summarize returns a concise summary of the given text.
func (s *assistService) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	summary, err := s.generator.Summarize(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to summarize text: %w", err)
	}
	return summary, nil
}

// SuggestReplies returns up to three reply candidates for the message. Any
// generation failure degrades to an empty list; the composer simply shows no
// chips.
func (s *assistService) SuggestReplies(ctx context.Context, message string) []string {
	if strings.TrimSpace(message) == "" {
		return nil
	}
	suggestions, err := s.generator.SuggestReplies(ctx, message)
	if err != nil {
		s.logger.Warn("Reply suggestion generation failed, returning none",
			zap.Error(err))
		return nil
	}
	return suggestions
}
