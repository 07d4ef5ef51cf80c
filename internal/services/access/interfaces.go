package accessservice

import (
	"context"
	"docserver/internal/models"
)

type PermissionRepository interface {
	DocumentByID(ctx context.Context, id int64) (*models.Document, error)
	ReplacePermissions(ctx context.Context, docID int64, readIDs []int64, writeIDs []int64) error
}

type UserResolver interface {
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type CacheInvalidator interface {
	Del(ctx context.Context, keys ...string) error
}
