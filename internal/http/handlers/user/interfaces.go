package user

import (
	"context"
	"docserver/internal/models"
)

const pkg = "userHandler/"

type UserRegistrar interface {
	Register(ctx context.Context, login string, password string) (*models.User, error)
}

type UserLister interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
}
