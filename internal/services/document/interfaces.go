package documentservice

import (
	"context"
	"docserver/internal/models"
	"io"
)

type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc *models.Document) (int64, error)
	DocumentByID(ctx context.Context, id int64) (*models.Document, error)
	ListDocuments(ctx context.Context) ([]*models.Document, error)
	UpdateDocument(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, id int64) ([]string, error)
	ReplacePermissions(ctx context.Context, docID int64, readIDs []int64, writeIDs []int64) error
}

type VersionRepository interface {
	InsertVersion(ctx context.Context, version *models.DocumentVersion) (int64, error)
	LatestByDocument(ctx context.Context, docID int64) (*models.DocumentVersion, error)
	ListByDocument(ctx context.Context, docID int64) ([]*models.DocumentVersion, error)
}

type FolderProvider interface {
	FolderByID(ctx context.Context, id int64) (*models.Folder, error)
}

type UserResolver interface {
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type FileStorage interface {
	SaveFile(key string, reader io.Reader) error
	LoadFile(key string) (io.ReadCloser, error)
	DeleteFile(key string) error
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}) error
	Del(ctx context.Context, keys ...string) error
}
