package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

func newCacheRepository(t *testing.T) (*CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	repo := NewCacheRepository(client, zap.NewNop())
	t.Cleanup(func() { _ = repo.Close() })
	return repo, server
}

func TestCacheRepositorySetGetRoundTrip(t *testing.T) {
	repo, _ := newCacheRepository(t)
	ctx := context.Background()

	stored := map[string]float64{"class_average": 70}
	require.NoError(t, repo.Set(ctx, "summary:class", stored, time.Minute))

	var loaded map[string]float64
	require.NoError(t, repo.Get(ctx, "summary:class", &loaded))
	assert.Equal(t, stored, loaded)
}

func TestCacheRepositoryGetMiss(t *testing.T) {
	repo, _ := newCacheRepository(t)

	var dest map[string]float64
	err := repo.Get(context.Background(), "summary:missing", &dest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	repo, server := newCacheRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "summary:class", 1, time.Minute))
	require.NoError(t, repo.Set(ctx, "summary:student:1", 2, time.Minute))
	require.NoError(t, repo.Set(ctx, "other:key", 3, time.Minute))

	require.NoError(t, repo.DeleteByPattern(ctx, "summary:*"))

	assert.False(t, server.Exists("summary:class"))
	assert.False(t, server.Exists("summary:student:1"))
	assert.True(t, server.Exists("other:key"))
}

func TestCacheRepositoryNilClientDegrades(t *testing.T) {
	repo := NewCacheRepository(nil, zap.NewNop())
	ctx := context.Background()

	var dest int
	assert.True(t, errors.Is(repo.Get(ctx, "k", &dest), appErrors.ErrCacheMiss))
	assert.NoError(t, repo.Set(ctx, "k", 1, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "k*"))
	assert.NoError(t, repo.Close())
}
