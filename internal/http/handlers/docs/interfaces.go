package docs

import (
	"context"
	"docserver/internal/models"
	"io"
)

const pkg = "docsHandler/"

type DocumentService interface {
	CreateDocument(ctx context.Context, req models.CreateDocument, actor *models.User) (*models.Document, error)
	UpdateDocument(ctx context.Context, docID int64, upd models.UpdateDocument, actor *models.User) (*models.Document, error)
	DeleteDocument(ctx context.Context, docID int64) error
	GetDocument(ctx context.Context, docID int64) (*models.Document, error)
	ListDocuments(ctx context.Context) ([]*models.Document, error)
	History(ctx context.Context, docID int64) ([]*models.DocumentVersion, error)
	CurrentFile(ctx context.Context, docID int64) (*models.DocumentVersion, io.ReadCloser, error)
}

type AccessService interface {
	SetPermissions(ctx context.Context, docID int64, readIDs, writeIDs []int64) (*models.Document, error)
}
