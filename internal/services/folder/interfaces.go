package folderservice

import (
	"context"
	"docserver/internal/models"
)

type FolderRepository interface {
	CreateFolder(ctx context.Context, folder *models.Folder) (int64, error)
	FolderByID(ctx context.Context, id int64) (*models.Folder, error)
	UpdateFolder(ctx context.Context, folder *models.Folder) error
	DeleteTree(ctx context.Context, id int64) (*models.DeletedSubtree, error)
	Roots(ctx context.Context) ([]*models.FolderNode, error)
	Node(ctx context.Context, id int64) (*models.FolderNode, error)
}

type FileDeleter interface {
	DeleteFile(key string) error
}

type DocumentCacheInvalidator interface {
	Del(ctx context.Context, keys ...string) error
}
