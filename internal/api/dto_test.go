package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gongobongo-backend-go/internal/core"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{core.ErrUserNotFound, http.StatusNotFound},
		{core.ErrChatNotFound, http.StatusNotFound},
		{core.ErrForbiddenAccess, http.StatusForbidden},
		{core.ErrChatNotWritable, http.StatusForbidden},
		{core.ErrInitiatorDecision, http.StatusForbidden},
		{core.ErrSelfChat, http.StatusBadRequest},
		{core.ErrEmptyMessage, http.StatusBadRequest},
		{core.ErrEmptyInput, http.StatusBadRequest},
		{core.ErrInvalidTheme, http.StatusBadRequest},
		{core.ErrGroupLifecycle, http.StatusBadRequest},
		{core.ErrNotPending, http.StatusConflict},
		{errors.New("database exploded"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", core.ErrChatNotFound), http.StatusNotFound},
	}
	for _, tt := range tests {
		if got := mapErrorToStatus(tt.err); got != tt.want {
			t.Errorf("mapErrorToStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
