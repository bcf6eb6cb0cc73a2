package core

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestSummarize(t *testing.T) {
	t.Run("returns the generated summary", func(t *testing.T) {
		svc := NewAssistService(&fakeGenerator{summary: "short version"}, zap.NewNop())
		got, err := svc.Summarize(context.Background(), "a very long text")
		if err != nil {
			t.Fatalf("Summarize returned error: %v", err)
		}
		if got != "short version" {
			t.Errorf("summary = %q, want %q", got, "short version")
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		svc := NewAssistService(&fakeGenerator{}, zap.NewNop())
		if _, err := svc.Summarize(context.Background(), "   "); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("err = %v, want ErrEmptyInput", err)
		}
	})

	t.Run("propagates generation errors", func(t *testing.T) {
		svc := NewAssistService(&fakeGenerator{err: errors.New("quota exceeded")}, zap.NewNop())
		if _, err := svc.Summarize(context.Background(), "text"); err == nil {
			t.Error("Summarize swallowed the generation error")
		}
	})
}

func TestSuggestReplies(t *testing.T) {
	t.Run("returns the generated candidates", func(t *testing.T) {
		svc := NewAssistService(&fakeGenerator{suggestions: []string{"Sounds good!", "Okay"}}, zap.NewNop())
		got := svc.SuggestReplies(context.Background(), "lunch at noon?")
		if len(got) != 2 || got[0] != "Sounds good!" {
			t.Errorf("suggestions = %v, want the two candidates", got)
		}
	})

	t.Run("degrades to empty on generation error", func(t *testing.T) {
		svc := NewAssistService(&fakeGenerator{err: errors.New("model unavailable")}, zap.NewNop())
		if got := svc.SuggestReplies(context.Background(), "hello"); len(got) != 0 {
			t.Errorf("suggestions = %v, want empty on error", got)
		}
	})

	t.Run("empty input yields no suggestions", func(t *testing.T) {
		svc := NewAssistService(&fakeGenerator{suggestions: []string{"never"}}, zap.NewNop())
		if got := svc.SuggestReplies(context.Background(), " "); len(got) != 0 {
			t.Errorf("suggestions = %v, want empty for blank input", got)
		}
	})
}
