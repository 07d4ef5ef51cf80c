package accessservice

import (
	"context"
	"docserver/internal/models"
	cachedocsrepo "docserver/internal/repositories/cache/docs"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) DocumentByID(ctx context.Context, id int64) (*models.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Document), args.Error(1)
}

func (m *MockPermissionRepository) ReplacePermissions(ctx context.Context, docID int64, readIDs []int64, writeIDs []int64) error {
	args := m.Called(ctx, docID, readIDs, writeIDs)
	return args.Error(0)
}

type MockUserResolver struct {
	mock.Mock
}

func (m *MockUserResolver) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type MockCacheInvalidator struct {
	mock.Mock
}

func (m *MockCacheInvalidator) Del(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func newService() (*AccessService, *MockPermissionRepository, *MockUserResolver, *MockCacheInvalidator) {
	repo := new(MockPermissionRepository)
	users := new(MockUserResolver)
	cache := new(MockCacheInvalidator)
	return New(slog.Default(), repo, users, cache), repo, users, cache
}

func TestCanRead_ExplicitListOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, _, _ := newService()

	creator := int64(7)

	repo.On("DocumentByID", ctx, int64(1)).Return(&models.Document{
		ID:          1,
		CreatedBy:   &creator,
		ReadUserIDs: []int64{2, 3},
	}, nil)

	ok, err := service.CanRead(ctx, 1, 2)
	assert.NoError(t, err)
	assert.True(t, ok)

	// The creator is not implicitly granted access.
	ok, err = service.CanRead(ctx, 1, 7)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCanWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, _, _ := newService()

	repo.On("DocumentByID", ctx, int64(1)).Return(&models.Document{
		ID:           1,
		ReadUserIDs:  []int64{2},
		WriteUserIDs: []int64{3},
	}, nil)

	ok, err := service.CanWrite(ctx, 1, 3)
	assert.NoError(t, err)
	assert.True(t, ok)

	// Read permission does not imply write permission.
	ok, err = service.CanWrite(ctx, 1, 2)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestEffectiveReaders_DocumentNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, _, _ := newService()

	repo.On("DocumentByID", ctx, int64(404)).Return(nil, models.ErrDocumentNotFound)

	_, err := service.EffectiveReaders(ctx, 404)
	assert.ErrorIs(t, err, models.ErrDocumentNotFound)
}

func TestSetPermissions_DropsUnknownIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, users, cache := newService()

	repo.On("DocumentByID", ctx, int64(5)).Return(&models.Document{
		ID:           5,
		ReadUserIDs:  []int64{1, 2},
		WriteUserIDs: []int64{2},
	}, nil)
	users.On("ExistingIDs", ctx, []int64{1, 2, 999}).Return([]int64{1, 2}, nil)
	users.On("ExistingIDs", ctx, []int64{2, 999}).Return([]int64{2}, nil)
	repo.On("ReplacePermissions", ctx, int64(5), []int64{1, 2}, []int64{2}).Return(nil)
	cache.On("Del", ctx, []string{cachedocsrepo.Key(5)}).Return(nil)

	doc, err := service.SetPermissions(ctx, 5, []int64{1, 2, 999}, []int64{2, 999})

	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, doc.ReadUserIDs)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestSetPermissions_ClearsLists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, users, cache := newService()

	repo.On("DocumentByID", ctx, int64(5)).Return(&models.Document{ID: 5}, nil)
	users.On("ExistingIDs", ctx, []int64(nil)).Return([]int64(nil), nil)
	repo.On("ReplacePermissions", ctx, int64(5), []int64(nil), []int64(nil)).Return(nil)
	cache.On("Del", ctx, []string{cachedocsrepo.Key(5)}).Return(nil)

	_, err := service.SetPermissions(ctx, 5, nil, nil)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSetPermissions_DocumentNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, repo, _, _ := newService()

	repo.On("DocumentByID", ctx, int64(404)).Return(nil, models.ErrDocumentNotFound)

	_, err := service.SetPermissions(ctx, 404, []int64{1}, nil)

	assert.ErrorIs(t, err, models.ErrDocumentNotFound)
	repo.AssertNotCalled(t, "ReplacePermissions")
}
