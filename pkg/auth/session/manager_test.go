package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionStore struct {
	values map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{values: map[string]string{}}
}

func (f *fakeSessionStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeSessionStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeSessionStore) AccessSessionKey(accessID string) string {
	return "session:access:" + accessID
}

func newTestManager() (*Manager, *fakeSessionStore) {
	store := newFakeSessionStore()
	return &Manager{store: store, keyer: store, ttl: time.Hour}, store
}

func TestManagerGenerateAndHasSession(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	accessID := NewAccessID()
	token, err := manager.Generate(ctx, accessID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	active, err := manager.HasSession(ctx, accessID)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = manager.HasSession(ctx, NewAccessID())
	require.NoError(t, err)
	assert.False(t, active)
}

func TestManagerRotateInvalidatesOldSession(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	accessID := NewAccessID()
	token, err := manager.Generate(ctx, accessID)
	require.NoError(t, err)

	newAccessID, newToken, err := manager.Rotate(ctx, accessID, token)
	require.NoError(t, err)
	assert.NotEqual(t, accessID, newAccessID)
	assert.NotEqual(t, token, newToken)

	// Old session gone, new one live.
	active, err := manager.HasSession(ctx, accessID)
	require.NoError(t, err)
	assert.False(t, active)
	active, err = manager.HasSession(ctx, newAccessID)
	require.NoError(t, err)
	assert.True(t, active)

	// Replaying the old pair fails.
	_, _, err = manager.Rotate(ctx, accessID, token)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestManagerRotateRejectsMismatchedToken(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	accessID := NewAccessID()
	_, err := manager.Generate(ctx, accessID)
	require.NoError(t, err)

	_, _, err = manager.Rotate(ctx, accessID, "forged-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestManagerRevoke(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	accessID := NewAccessID()
	_, err := manager.Generate(ctx, accessID)
	require.NoError(t, err)

	require.NoError(t, manager.Revoke(ctx, accessID))

	active, err := manager.HasSession(ctx, accessID)
	require.NoError(t, err)
	assert.False(t, active)
}
