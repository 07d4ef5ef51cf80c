package authservice

import (
	"context"
	"docserver/internal/models"
	"docserver/internal/validator"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/crypto/bcrypt"
)

const pkg = "authService/"

type AuthService struct {
	log           *slog.Logger
	userAdder     UserAdder
	userProvider  UserProvider
	sessionStorer SessionStorer
}

func New(
	log *slog.Logger,
	userAdder UserAdder,
	userProvider UserProvider,
	sessionStorer SessionStorer,
) *AuthService {
	return &AuthService{
		log:           log,
		userAdder:     userAdder,
		userProvider:  userProvider,
		sessionStorer: sessionStorer,
	}
}

func (a *AuthService) Register(ctx context.Context, login string, password string) (*models.User, error) {
	op := pkg + "Register"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to register user")

	ve := models.NewValidationError()
	if !validator.IsValidLogin(login) {
		ve.Add("login", "login must be at least 3 characters of letters, digits, '_' or '.'")
	}
	if !validator.IsValidPassword(password) {
		ve.Add("password", "password must be at least 8 characters")
	}
	if !ve.Empty() {
		log.Warn("invalid login or password format")
		return nil, ve
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	user := models.User{
		Login:    login,
		PassHash: passHash,
	}

	id, err := a.userAdder.AddUser(ctx, &user)
	if err != nil {
		var uce *models.UniqueConstraintError
		if errors.As(err, &uce) {
			log.Warn("user already exists", slog.String("login", user.Login))
			return nil, models.ErrUserExists
		}

		log.Error("failed to add user", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	user.ID = id

	log.Debug("user registered successfully", slog.Int64("user_id", id))

	return &user, nil
}

func (a *AuthService) Login(ctx context.Context, login string, password string) (string, error) {
	op := pkg + "Login"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to login user")

	user, err := a.userProvider.UserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Info("user not found", slog.String("login", login))
			return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}

		log.Error("failed to get user", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", slog.String("login", login))
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}

	token := uuid.NewV4().String()

	userJSON, err := json.Marshal(user)
	if err != nil {
		log.Error("failed to marshal user", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if err := a.sessionStorer.SaveSession(ctx, token, string(userJSON)); err != nil {
		log.Error("failed to store session", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("user logged in successfully")

	return token, nil
}

// UserByToken resolves a bearer token and renews the session TTL as a side
// effect, so active sessions do not expire mid-use.
func (a *AuthService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	op := pkg + "UserByToken"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to get user by token")

	userJSON, err := a.sessionStorer.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Warn("session not found")
			return nil, models.ErrInvalidCredentials
		}
		log.Error("failed to get session", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	var user models.User

	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		log.Error("failed to unmarshal user from json", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	if err := a.sessionStorer.RenewSession(ctx, token); err != nil {
		log.Warn("failed to renew session", slog.String("error", err.Error()))
	}

	return &user, nil
}

func (a *AuthService) Logout(ctx context.Context, token string) error {
	op := pkg + "Logout"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to logout user")

	if err := a.sessionStorer.DeleteSession(ctx, token); err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			log.Warn("session not found")
			return models.ErrSessionNotFound
		}
		log.Error("failed to delete session", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("user logged out successfully")

	return nil
}
