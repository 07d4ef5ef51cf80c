package versionrepo

import (
	"context"
	"database/sql"
	"docserver/internal/entities"
	"docserver/internal/models"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const pkg = "versionRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

// InsertVersion appends to a document's version chain. Versions are never
// updated or reordered after this point.
func (r *repository) InsertVersion(ctx context.Context, version *models.DocumentVersion) (int64, error) {
	op := pkg + "InsertVersion"

	var id int64

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO document_versions (document_id, file_key, file_name, version, uploaded_at, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		version.DocumentID, version.FileKey, version.FileName, version.Label,
		version.UploadedAt, entities.NullID(version.UploadedBy)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *repository) LatestByDocument(ctx context.Context, docID int64) (*models.DocumentVersion, error) {
	op := pkg + "LatestByDocument"

	rawVersion := entities.DocumentVersion{}

	err := r.db.GetContext(ctx, &rawVersion,
		`SELECT
			v.id AS id,
			v.document_id AS document_id,
			v.file_key AS file_key,
			v.file_name AS file_name,
			v.version AS version,
			v.uploaded_at AS uploaded_at,
			v.uploaded_by AS uploaded_by
		FROM document_versions v
		WHERE v.document_id = $1
		ORDER BY v.uploaded_at DESC, v.id DESC
		LIMIT 1`, docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrVersionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return versionFromRow(rawVersion), nil
}

func (r *repository) ListByDocument(ctx context.Context, docID int64) ([]*models.DocumentVersion, error) {
	op := pkg + "ListByDocument"

	rawVersions := make([]entities.DocumentVersion, 0)

	err := r.db.SelectContext(ctx, &rawVersions,
		`SELECT
			v.id AS id,
			v.document_id AS document_id,
			v.file_key AS file_key,
			v.file_name AS file_name,
			v.version AS version,
			v.uploaded_at AS uploaded_at,
			v.uploaded_by AS uploaded_by
		FROM document_versions v
		WHERE v.document_id = $1
		ORDER BY v.uploaded_at DESC, v.id DESC`, docID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	versions := make([]*models.DocumentVersion, 0, len(rawVersions))

	for _, rawVersion := range rawVersions {
		versions = append(versions, versionFromRow(rawVersion))
	}

	return versions, nil
}

func versionFromRow(rawVersion entities.DocumentVersion) *models.DocumentVersion {
	return &models.DocumentVersion{
		ID:         rawVersion.ID,
		DocumentID: rawVersion.DocumentID,
		FileKey:    rawVersion.FileKey,
		FileName:   rawVersion.FileName,
		Label:      rawVersion.Label,
		UploadedAt: rawVersion.UploadedAt,
		UploadedBy: entities.IDOrNil(rawVersion.UploadedBy),
	}
}
