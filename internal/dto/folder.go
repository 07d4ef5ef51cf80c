package dto

import (
	"docserver/internal/models"
	"time"
)

type FolderRequest struct {
	Name   *string `json:"name"`
	Parent *int64  `json:"parent"`
}

type FolderResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Parent     *int64    `json:"parent"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	CreatedBy  *int64    `json:"created_by"`
	UpdatedBy  *int64    `json:"updated_by"`
	Subfolders []int64   `json:"subfolders"`
	Documents  []int64   `json:"documents"`
}

func NewFolderResponse(f *models.Folder) FolderResponse {
	return FolderResponse{
		ID:         f.ID,
		Name:       f.Name,
		Parent:     f.ParentID,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
		CreatedBy:  f.CreatedBy,
		UpdatedBy:  f.UpdatedBy,
		Subfolders: []int64{},
		Documents:  []int64{},
	}
}

func NewFolderNodeResponse(n *models.FolderNode) FolderResponse {
	resp := NewFolderResponse(&n.Folder)
	if len(n.SubfolderIDs) > 0 {
		resp.Subfolders = n.SubfolderIDs
	}
	if len(n.DocumentIDs) > 0 {
		resp.Documents = n.DocumentIDs
	}
	return resp
}
