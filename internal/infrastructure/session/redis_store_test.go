package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/LoriCiv/ten99/internal/core/domain"
)

func setupTestRedis(t *testing.T) *RedisStore {
	t.Helper()
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + s.Addr())
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndLookupSession(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	sessionID, err := store.Create(ctx, "user-123", time.Hour)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sessionID == "" {
		t.Fatalf("expected a session id")
	}

	userID, err := store.Lookup(ctx, sessionID)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("expected user-123, got %s", userID)
	}
}

func TestCreateRequiresUserID(t *testing.T) {
	store := setupTestRedis(t)

	_, err := store.Create(context.Background(), "", time.Hour)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLookupUnknownSession(t *testing.T) {
	store := setupTestRedis(t)

	_, err := store.Lookup(context.Background(), "no-such-session")
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected authentication error, got %v", err)
	}
}

func TestRevokeSession(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	sessionID, err := store.Create(ctx, "user-123", time.Hour)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Revoke(ctx, sessionID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := store.Lookup(ctx, sessionID); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected revoked session to fail lookup, got %v", err)
	}
}

func TestSessionsGetDistinctIDs(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := store.Create(ctx, "user-1", time.Hour)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct session ids")
	}
}
