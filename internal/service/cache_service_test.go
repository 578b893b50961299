package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

type stubCacheRepo struct {
	getErr      error
	setErr      error
	deleteErr   error
	gotKeys     []string
	setKeys     []string
	setTTLs     []time.Duration
	deletedPats []string
}

func (s *stubCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	s.gotKeys = append(s.gotKeys, key)
	return s.getErr
}

func (s *stubCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.setKeys = append(s.setKeys, key)
	s.setTTLs = append(s.setTTLs, ttl)
	return s.setErr
}

func (s *stubCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	s.deletedPats = append(s.deletedPats, pattern)
	return s.deleteErr
}

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	repo := &stubCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), false)

	hit, err := svc.Get(context.Background(), "summary:class", nil)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, svc.Set(context.Background(), "summary:class", 1, 0))
	assert.NoError(t, svc.Invalidate(context.Background(), "summary:*"))
	assert.Empty(t, repo.gotKeys)
	assert.Empty(t, repo.setKeys)
	assert.Empty(t, repo.deletedPats)
}

func TestCacheServiceGetMissIsNotAnError(t *testing.T) {
	repo := &stubCacheRepo{getErr: appErrors.ErrCacheMiss}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	hit, err := svc.Get(context.Background(), "summary:class", nil)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceGetHit(t *testing.T) {
	repo := &stubCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	hit, err := svc.Get(context.Background(), "summary:class", nil)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"summary:class"}, repo.gotKeys)
}

func TestCacheServiceGetPropagatesBackendFailure(t *testing.T) {
	repo := &stubCacheRepo{getErr: errors.New("connection refused")}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	hit, err := svc.Get(context.Background(), "summary:class", nil)
	require.Error(t, err)
	assert.False(t, hit)
}

func TestCacheServiceSetAppliesDefaultTTL(t *testing.T) {
	repo := &stubCacheRepo{}
	svc := NewCacheService(repo, nil, 2*time.Minute, zap.NewNop(), true)

	require.NoError(t, svc.Set(context.Background(), "summary:class", 1, 0))
	require.Len(t, repo.setTTLs, 1)
	assert.Equal(t, 2*time.Minute, repo.setTTLs[0])
}

func TestCacheServiceInvalidateForwardsPattern(t *testing.T) {
	repo := &stubCacheRepo{}
	svc := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	require.NoError(t, svc.Invalidate(context.Background(), "summary:*"))
	assert.Equal(t, []string{"summary:*"}, repo.deletedPats)
}
