package authservice

import (
	"context"
	"docserver/internal/models"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserAdder struct {
	mock.Mock
}

func (m *MockUserAdder) AddUser(ctx context.Context, user *models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockSessionStorer struct {
	mock.Mock
}

func (m *MockSessionStorer) SaveSession(ctx context.Context, token string, userJSON string) error {
	args := m.Called(ctx, token, userJSON)
	return args.Error(0)
}

func (m *MockSessionStorer) DeleteSession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionStorer) GetUserByToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStorer) RenewSession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func newService() (*AuthService, *MockUserAdder, *MockUserProvider, *MockSessionStorer) {
	adder := new(MockUserAdder)
	provider := new(MockUserProvider)
	sessions := new(MockSessionStorer)
	return New(slog.Default(), adder, provider, sessions), adder, provider, sessions
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, adder, _, _ := newService()

	adder.On("AddUser", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Login == "alice" && bcrypt.CompareHashAndPassword(u.PassHash, []byte("password123")) == nil
	})).Return(int64(1), nil)

	user, err := service.Register(ctx, "alice", "password123")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Login)
	adder.AssertExpectations(t)
}

func TestRegister_InvalidFormat(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, adder, _, _ := newService()

	_, err := service.Register(ctx, "a", "short")

	var ve *models.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "login")
	assert.Contains(t, ve.Fields, "password")
	adder.AssertNotCalled(t, "AddUser")
}

func TestRegister_DuplicateLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, adder, _, _ := newService()

	adder.On("AddUser", ctx, mock.Anything).Return(int64(0), &models.UniqueConstraintError{
		Constraint: "users_login_key",
		Err:        models.ErrUNIQUEConstraintFailed,
	})

	_, err := service.Register(ctx, "alice", "password123")

	assert.ErrorIs(t, err, models.ErrUserExists)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, provider, sessions := newService()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	provider.On("UserByLogin", ctx, "alice").Return(&models.User{ID: 1, Login: "alice", PassHash: hash}, nil)
	sessions.On("SaveSession", ctx, mock.Anything, mock.Anything).Return(nil)

	token, err := service.Login(ctx, "alice", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	sessions.AssertExpectations(t)
}

func TestLogin_UnknownLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, provider, sessions := newService()

	provider.On("UserByLogin", ctx, "ghost").Return(nil, models.ErrUserNotFound)

	_, err := service.Login(ctx, "ghost", "password123")

	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	sessions.AssertNotCalled(t, "SaveSession")
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, provider, sessions := newService()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	provider.On("UserByLogin", ctx, "alice").Return(&models.User{ID: 1, Login: "alice", PassHash: hash}, nil)

	_, err = service.Login(ctx, "alice", "wrong-password")

	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	sessions.AssertNotCalled(t, "SaveSession")
}

func TestUserByToken_RenewsSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, _, sessions := newService()

	sessions.On("GetUserByToken", ctx, "tok").Return(`{"id":3,"login":"bob"}`, nil)
	sessions.On("RenewSession", ctx, "tok").Return(nil)

	user, err := service.UserByToken(ctx, "tok")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "bob", user.Login)
	sessions.AssertCalled(t, "RenewSession", ctx, "tok")
}

func TestUserByToken_UnknownToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, _, sessions := newService()

	sessions.On("GetUserByToken", ctx, "stale").Return("", models.ErrSessionNotFound)

	_, err := service.UserByToken(ctx, "stale")

	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	sessions.AssertNotCalled(t, "RenewSession")
}

func TestLogout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, _, sessions := newService()

	sessions.On("DeleteSession", ctx, "tok").Return(nil)

	assert.NoError(t, service.Logout(ctx, "tok"))

	sessions.On("DeleteSession", ctx, "gone").Return(models.ErrSessionNotFound)

	assert.ErrorIs(t, service.Logout(ctx, "gone"), models.ErrSessionNotFound)
}

func TestLogout_StorageError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, _, sessions := newService()

	sessions.On("DeleteSession", ctx, "tok").Return(errors.New("redis down"))

	assert.ErrorIs(t, service.Logout(ctx, "tok"), models.ErrInternal)
}
