package folders

import (
	"context"
	"docserver/internal/models"
)

const pkg = "foldersHandler/"

type FolderService interface {
	CreateFolder(ctx context.Context, name string, parentID *int64, actor *models.User) (*models.Folder, error)
	UpdateFolder(ctx context.Context, folderID int64, name *string, parentID *int64, actor *models.User) (*models.Folder, error)
	DeleteFolder(ctx context.Context, folderID int64) error
	ListRoots(ctx context.Context) ([]*models.FolderNode, error)
	GetFolder(ctx context.Context, folderID int64) (*models.FolderNode, error)
}
