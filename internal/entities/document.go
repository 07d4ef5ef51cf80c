package entities

import (
	"database/sql"
	"time"
)

type Document struct {
	ID        int64         `db:"id"`
	Name      string        `db:"name"`
	FolderID  int64         `db:"folder_id"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
	CreatedBy sql.NullInt64 `db:"created_by"`
	UpdatedBy sql.NullInt64 `db:"updated_by"`
}

type DocumentVersion struct {
	ID         int64         `db:"id"`
	DocumentID int64         `db:"document_id"`
	FileKey    string        `db:"file_key"`
	FileName   string        `db:"file_name"`
	Label      string        `db:"version"`
	UploadedAt time.Time     `db:"uploaded_at"`
	UploadedBy sql.NullInt64 `db:"uploaded_by"`
}
