package cachesessionrepo

import (
	"context"
	"docserver/internal/models"
	cacherepo "docserver/internal/repositories/cache"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCache struct {
	mock.Mock
}

type mockResponse[T any] struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) cacherepo.CacheResponse[string] {
	args := m.Called(ctx, key)
	return args.Get(0).(cacherepo.CacheResponse[string])
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) cacherepo.CacheResponse[string] {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(cacherepo.CacheResponse[string])
}

func (m *mockCache) Del(ctx context.Context, keys ...string) cacherepo.CacheResponse[int64] {
	args := m.Called(ctx, keys)
	return args.Get(0).(cacherepo.CacheResponse[int64])
}

func (r *mockResponse[T]) Err() error {
	args := r.Called()
	return args.Error(0)
}

func (r *mockResponse[T]) Result() (T, error) {
	args := r.Called()
	return args.Get(0).(T), args.Error(1)
}

func TestSessionRepo_SaveAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := new(mockCache)
	setResp := new(mockResponse[string])
	getResp := new(mockResponse[string])
	repo := New(cache, time.Minute)

	cache.On("Set", ctx, "session:tok1", `{"id":1}`, time.Minute).Return(setResp)
	setResp.On("Err").Return(nil)

	cache.On("Get", ctx, "session:tok1").Return(getResp)
	getResp.On("Result").Return(`{"id":1}`, nil)

	assert.NoError(t, repo.SaveSession(ctx, "tok1", `{"id":1}`))

	userJSON, err := repo.GetUserByToken(ctx, "tok1")
	assert.NoError(t, err)
	assert.Equal(t, `{"id":1}`, userJSON)

	cache.AssertExpectations(t)
}

func TestSessionRepo_Get_Missing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := new(mockCache)
	getResp := new(mockResponse[string])
	repo := New(cache, time.Minute)

	cache.On("Get", ctx, "session:unknown").Return(getResp)
	getResp.On("Result").Return("", nil)

	_, err := repo.GetUserByToken(ctx, "unknown")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	cache.AssertExpectations(t)
}

func TestSessionRepo_Renew(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := new(mockCache)
	getResp := new(mockResponse[string])
	setResp := new(mockResponse[string])
	repo := New(cache, time.Minute)

	cache.On("Get", ctx, "session:tok1").Return(getResp)
	getResp.On("Result").Return(`{"id":1}`, nil)
	cache.On("Set", ctx, "session:tok1", `{"id":1}`, time.Minute).Return(setResp)
	setResp.On("Err").Return(nil)

	assert.NoError(t, repo.RenewSession(ctx, "tok1"))

	cache.AssertExpectations(t)
}

func TestSessionRepo_Renew_Missing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := new(mockCache)
	getResp := new(mockResponse[string])
	repo := New(cache, time.Minute)

	cache.On("Get", ctx, "session:gone").Return(getResp)
	getResp.On("Result").Return("", nil)

	assert.ErrorIs(t, repo.RenewSession(ctx, "gone"), models.ErrSessionNotFound)

	cache.AssertExpectations(t)
}

func TestSessionRepo_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := new(mockCache)
	delResp := new(mockResponse[int64])
	repo := New(cache, time.Minute)

	cache.On("Del", ctx, []string{"session:tok1"}).Return(delResp)
	delResp.On("Err").Return(nil)

	assert.NoError(t, repo.DeleteSession(ctx, "tok1"))

	cache.AssertExpectations(t)
}
