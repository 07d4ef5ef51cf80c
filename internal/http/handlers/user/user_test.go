package user

import (
	"context"
	"docserver/internal/dto"
	"docserver/internal/models"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRegistrar struct {
	mock.Mock
}

func (m *mockRegistrar) Register(ctx context.Context, login string, password string) (*models.User, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockLister struct {
	mock.Mock
}

func (m *mockLister) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func TestAdd_Success(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"login":"alice","password":"password123"}`))
	ctx := req.Context()

	svc := new(mockRegistrar)
	svc.On("Register", ctx, "alice", "password123").Return(&models.User{ID: 1, Login: "alice"}, nil)

	Add(ctx, slog.Default(), w, req, svc)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var parsed struct {
		Data dto.UserResponse `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.Equal(t, int64(1), parsed.Data.ID)
	assert.Equal(t, "alice", parsed.Data.Login)
}

func TestAdd_Conflict(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"login":"alice","password":"password123"}`))
	ctx := req.Context()

	svc := new(mockRegistrar)
	svc.On("Register", ctx, "alice", "password123").Return(nil, models.ErrUserExists)

	Add(ctx, slog.Default(), w, req, svc)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAdd_ValidationError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{"login":"a","password":"short"}`))
	ctx := req.Context()

	svc := new(mockRegistrar)
	svc.On("Register", ctx, "a", "short").Return(nil,
		models.NewValidationError().Add("login", "too short").Add("password", "too short"))

	Add(ctx, slog.Default(), w, req, svc)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var parsed struct {
		Errors map[string][]string `json:"errors"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.Contains(t, parsed.Errors, "login")
	assert.Contains(t, parsed.Errors, "password")
}

func TestList_Success(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	ctx := req.Context()

	svc := new(mockLister)
	svc.On("ListUsers", ctx).Return([]*models.User{
		{ID: 1, Login: "alice"},
		{ID: 2, Login: "bob"},
	}, nil)

	List(ctx, slog.Default(), w, req, svc)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var parsed struct {
		Data []dto.UserResponse `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	assert.Len(t, parsed.Data, 2)
}
