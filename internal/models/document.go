package models

import (
	"io"
	"time"
)

type Document struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	FolderID     int64            `json:"folder"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	CreatedBy    *int64           `json:"created_by"`
	UpdatedBy    *int64           `json:"updated_by"`
	ReadUserIDs  []int64          `json:"read_permissions"`
	WriteUserIDs []int64          `json:"write_permissions"`
	Latest       *DocumentVersion `json:"latest_version"`
}

type DocumentVersion struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"document"`
	FileKey    string    `json:"file_key"`
	FileName   string    `json:"file_name"`
	Label      string    `json:"version"`
	UploadedAt time.Time `json:"uploaded_at"`
	UploadedBy *int64    `json:"uploaded_by"`
}

// FilePayload is an uploaded file handed to the core: the original client
// file name plus the content stream. The core stores the content in blob
// storage and persists only the generated key.
type FilePayload struct {
	Name    string
	Content io.Reader
}

type CreateDocument struct {
	Name         string
	FolderID     *int64
	File         *FilePayload
	ReadUserIDs  []int64
	WriteUserIDs []int64
}

type UpdateDocument struct {
	Name     *string
	FolderID *int64
	File     *FilePayload
}
