package userservice

import (
	"context"
	"docserver/internal/models"
)

type UserProvider interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByLogin(ctx context.Context, login string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
