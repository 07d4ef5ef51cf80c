package server

import (
	"context"
	"docserver/internal/models"
	"io"
)

type AuthService interface {
	Register(ctx context.Context, login string, password string) (*models.User, error)
	Login(ctx context.Context, login string, password string) (string, error)
	UserByToken(ctx context.Context, token string) (*models.User, error)
	Logout(ctx context.Context, token string) error
}

type UserService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
}

type FolderService interface {
	CreateFolder(ctx context.Context, name string, parentID *int64, actor *models.User) (*models.Folder, error)
	UpdateFolder(ctx context.Context, folderID int64, name *string, parentID *int64, actor *models.User) (*models.Folder, error)
	DeleteFolder(ctx context.Context, folderID int64) error
	ListRoots(ctx context.Context) ([]*models.FolderNode, error)
	GetFolder(ctx context.Context, folderID int64) (*models.FolderNode, error)
}

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
