package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(time.Hour)

	userID := uuid.New()
	sessionID := store.Create(userID, "alice@example.com")

	binding, ok := store.Get(sessionID)
	require.True(t, ok)
	require.Equal(t, userID, binding.UserID)
	require.Equal(t, "alice@example.com", binding.Email)
}

func TestSessionStore_UnknownID(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(time.Hour)

	_, ok := store.Get(uuid.New())
	require.False(t, ok)
}

func TestSessionStore_Delete(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(time.Hour)

	sessionID := store.Create(uuid.New(), "alice@example.com")
	store.Delete(sessionID)

	_, ok := store.Get(sessionID)
	require.False(t, ok)
}

func TestSessionStore_LazyExpiry(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(time.Hour)

	current := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	sessionID := store.Create(uuid.New(), "alice@example.com")

	current = current.Add(30 * time.Minute)
	_, ok := store.Get(sessionID)
	require.True(t, ok)

	current = current.Add(31 * time.Minute)
	_, ok = store.Get(sessionID)
	require.False(t, ok)

	// the expired entry is gone even if the clock moves back
	current = current.Add(-time.Hour)
	_, ok = store.Get(sessionID)
	require.False(t, ok)
}

func TestSessionStore_IsolatedStores(t *testing.T) {
	t.Parallel()

	first := NewSessionStore(time.Hour)
	second := NewSessionStore(time.Hour)

	sessionID := first.Create(uuid.New(), "alice@example.com")

	_, ok := second.Get(sessionID)
	require.False(t, ok)
}
