package userservice

import (
	"context"
	"docserver/internal/models"
	"errors"
	"fmt"
	"log/slog"
)

const pkg = "userService/"

type UserService struct {
	log          *slog.Logger
	userProvider UserProvider
}

func New(log *slog.Logger, userProvider UserProvider) *UserService {
	return &UserService{
		log:          log,
		userProvider: userProvider,
	}
}

func (u *UserService) UserByID(ctx context.Context, id int64) (*models.User, error) {
	op := pkg + "UserByID"

	log := u.log.With(slog.String("op", op))

	log.Debug("attempting to get user by id")

	user, err := u.userProvider.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Warn("user not found", slog.Int64("user_id", id))
			return nil, models.ErrUserNotFound
		}
		log.Error("failed to get user by id", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	return user, nil
}

func (u *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	op := pkg + "ListUsers"

	log := u.log.With(slog.String("op", op))

	log.Debug("attempting to list users")

	users, err := u.userProvider.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("users listed successfully", slog.Int("count", len(users)))

	return users, nil
}

// ExistingIDs filters the given ids down to those that belong to real users.
func (u *UserService) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	op := pkg + "ExistingIDs"

	log := u.log.With(slog.String("op", op))

	existing, err := u.userProvider.ExistingIDs(ctx, ids)
	if err != nil {
		log.Error("failed to resolve user ids", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return existing, nil
}
