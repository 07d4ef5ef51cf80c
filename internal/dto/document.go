package dto

import (
	"docserver/internal/models"
	"fmt"
	"time"
)

type DocumentResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Folder        int64     `json:"folder"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CreatedBy     *int64    `json:"created_by"`
	UpdatedBy     *int64    `json:"updated_by"`
	LatestVersion *string   `json:"latest_version"`
	LatestFileURL *string   `json:"latest_file_url"`
	ReadUserIDs   []int64   `json:"read_permissions"`
	WriteUserIDs  []int64   `json:"write_permissions"`
}

type VersionResponse struct {
	ID         int64     `json:"id"`
	Version    string    `json:"version"`
	FileName   string    `json:"file_name"`
	FileURL    string    `json:"file_url"`
	UploadedAt time.Time `json:"uploaded_at"`
	UploadedBy *int64    `json:"uploaded_by"`
}

func NewDocumentResponse(d *models.Document) DocumentResponse {
	resp := DocumentResponse{
		ID:           d.ID,
		Name:         d.Name,
		Folder:       d.FolderID,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		CreatedBy:    d.CreatedBy,
		UpdatedBy:    d.UpdatedBy,
		ReadUserIDs:  emptyIfNil(d.ReadUserIDs),
		WriteUserIDs: emptyIfNil(d.WriteUserIDs),
	}

	if d.Latest != nil {
		label := d.Latest.Label
		url := FileURL(d.ID)
		resp.LatestVersion = &label
		resp.LatestFileURL = &url
	}

	return resp
}

func NewVersionResponse(v *models.DocumentVersion) VersionResponse {
	return VersionResponse{
		ID:         v.ID,
		Version:    v.Label,
		FileName:   v.FileName,
		FileURL:    FileURL(v.DocumentID),
		UploadedAt: v.UploadedAt,
		UploadedBy: v.UploadedBy,
	}
}

// FileURL derives the download path for a document's current content.
// Deriving a fetchable URL is an API-surface concern, the core stores
// only the blob key.
func FileURL(documentID int64) string {
	return fmt.Sprintf("/api/documents/%d/file", documentID)
}

func emptyIfNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
