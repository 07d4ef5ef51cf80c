package entities

import (
	"database/sql"
	"time"
)

type Folder struct {
	ID        int64         `db:"id"`
	Name      string        `db:"name"`
	ParentID  sql.NullInt64 `db:"parent_id"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
	CreatedBy sql.NullInt64 `db:"created_by"`
	UpdatedBy sql.NullInt64 `db:"updated_by"`
}
