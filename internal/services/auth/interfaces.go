package authservice

import (
	"context"
	"docserver/internal/models"
)

type UserAdder interface {
	AddUser(ctx context.Context, user *models.User) (int64, error)
}

type UserProvider interface {
	UserByLogin(ctx context.Context, login string) (*models.User, error)
}

type SessionStorer interface {
	SaveSession(ctx context.Context, token string, userJSON string) error
	DeleteSession(ctx context.Context, token string) error
	GetUserByToken(ctx context.Context, token string) (string, error)
	RenewSession(ctx context.Context, token string) error
}
