package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/firestore"

	"gongobongo-backend-go/internal/models"
)

// newOfflineClient returns a Firestore client pointed at an unreachable
// emulator address. Writes never reach a server, but the client still builds
// and validates the request first, which is enough to catch encoding mistakes.
func newOfflineClient(t *testing.T) *firestore.Client {
	t.Helper()
	t.Setenv("FIRESTORE_EMULATOR_HOST", "localhost:1")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := firestore.NewClient(ctx, "offline-project")
	if err != nil {
		t.Fatalf("firestore.NewClient returned error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestUpsertBuildsValidWrite(t *testing.T) {
	client := newOfflineClient(t)
	repo := NewFirestoreUserRepository(client)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// A struct write must encode cleanly; only the transport may fail here.
	// MergeAll with struct data is rejected client-side before any RPC.
	err := repo.Upsert(ctx, &models.User{
		UID:         "alice",
		Email:       "alice@example.com",
		DisplayName: "Alice",
	})
	if err != nil && strings.Contains(err.Error(), "MergeAll") {
		t.Fatalf("Upsert was rejected while building the write: %v", err)
	}
}
