package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = "1"
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

type fakeKeyer struct{}

func (fakeKeyer) AccessSessionKey(accessID string) string { return "test:session:" + accessID }

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	m := &Manager{store: newFakeStore(), keyer: fakeKeyer{}, ttl: time.Hour}

	require.NoError(t, m.Create(ctx, "jti-1"))

	ok, err := m.HasSession(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, m.Revoke(ctx, "jti-1"))

	ok, err = m.HasSession(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHasSessionEmptyID(t *testing.T) {
	m := &Manager{store: newFakeStore(), keyer: fakeKeyer{}, ttl: time.Hour}
	ok, err := m.HasSession(context.Background(), " ")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCreateRequiresID(t *testing.T) {
	m := &Manager{store: newFakeStore(), keyer: fakeKeyer{}, ttl: time.Hour}
	err := m.Create(context.Background(), "")
	require.Error(t, err)
	require.False(t, errors.Is(err, redis.Nil))
}
