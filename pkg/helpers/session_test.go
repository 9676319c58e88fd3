package helpers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbridge/bookbridge/internal/infrastructure/memory"
	"github.com/bookbridge/bookbridge/pkg/helpers"
)

func newManager(ttl time.Duration) *helpers.SessionManager {
	return helpers.NewSessionManager("test-secret", ttl, memory.NewSessionStore())
}

func TestSessionCreateResolve(t *testing.T) {
	ctx := context.Background()
	m := newManager(time.Hour)

	token, exp, err := m.Create(ctx, "user-1", "A")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	data, ok := m.Resolve(ctx, token)
	require.True(t, ok)
	assert.Equal(t, "user-1", data.UserID)
	assert.Equal(t, "A", data.Name)
}

func TestSessionResolveGarbage(t *testing.T) {
	ctx := context.Background()
	m := newManager(time.Hour)

	_, ok := m.Resolve(ctx, "garbage")
	assert.False(t, ok)
	_, ok = m.Resolve(ctx, "")
	assert.False(t, ok)
}

func TestSessionResolveWrongSecret(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()
	issuer := helpers.NewSessionManager("secret-a", time.Hour, store)
	verifier := helpers.NewSessionManager("secret-b", time.Hour, store)

	token, _, err := issuer.Create(ctx, "user-1", "A")
	require.NoError(t, err)

	_, ok := verifier.Resolve(ctx, token)
	assert.False(t, ok)
}

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	m := newManager(-time.Second)

	token, _, err := m.Create(ctx, "user-1", "A")
	require.NoError(t, err)

	_, ok := m.Resolve(ctx, token)
	assert.False(t, ok)
}

func TestSessionDestroy(t *testing.T) {
	ctx := context.Background()
	m := newManager(time.Hour)

	token, _, err := m.Create(ctx, "user-1", "A")
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, token))
	_, ok := m.Resolve(ctx, token)
	assert.False(t, ok)

	// Destroy is idempotent and tolerates junk.
	require.NoError(t, m.Destroy(ctx, token))
	require.NoError(t, m.Destroy(ctx, "garbage"))
}

func TestSessionsIndependent(t *testing.T) {
	ctx := context.Background()
	m := newManager(time.Hour)

	t1, _, err := m.Create(ctx, "user-1", "A")
	require.NoError(t, err)
	t2, _, err := m.Create(ctx, "user-2", "B")
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, t1))

	_, ok := m.Resolve(ctx, t1)
	assert.False(t, ok)
	data, ok := m.Resolve(ctx, t2)
	require.True(t, ok)
	assert.Equal(t, "user-2", data.UserID)
}
