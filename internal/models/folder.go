package models

import "time"

type Folder struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ParentID  *int64    `json:"parent"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *int64    `json:"created_by"`
	UpdatedBy *int64    `json:"updated_by"`
}

// FolderNode is a folder together with one level of children,
// used by root listing and single-folder reads.
type FolderNode struct {
	Folder
	SubfolderIDs []int64 `json:"subfolders"`
	DocumentIDs  []int64 `json:"documents"`
}

// DeletedSubtree reports what a cascading folder delete removed, so the
// caller can clean up blobs and cached entries after the transaction.
type DeletedSubtree struct {
	FolderIDs   []int64
	DocumentIDs []int64
	FileKeys    []string
}
