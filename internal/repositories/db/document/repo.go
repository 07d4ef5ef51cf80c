package documentrepo

import (
	"context"
	"database/sql"
	"docserver/internal/entities"
	"docserver/internal/models"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const pkg = "documentRepo/"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) CreateDocument(ctx context.Context, doc *models.Document) (int64, error) {
	op := pkg + "CreateDocument"

	var id int64

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO documents (name, folder_id, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		doc.Name, doc.FolderID, doc.CreatedAt, doc.UpdatedAt,
		entities.NullID(doc.CreatedBy), entities.NullID(doc.UpdatedBy)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *repository) DocumentByID(ctx context.Context, id int64) (*models.Document, error) {
	op := pkg + "DocumentByID"

	rawDoc := entities.Document{}

	err := r.db.GetContext(ctx, &rawDoc,
		`SELECT
			d.id AS id,
			d.name AS name,
			d.folder_id AS folder_id,
			d.created_at AS created_at,
			d.updated_at AS updated_at,
			d.created_by AS created_by,
			d.updated_by AS updated_by
		FROM documents d
		WHERE d.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	doc, err := r.hydrate(ctx, rawDoc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc, nil
}

func (r *repository) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	op := pkg + "ListDocuments"

	rawDocs := make([]entities.Document, 0)

	err := r.db.SelectContext(ctx, &rawDocs,
		`SELECT
			d.id AS id,
			d.name AS name,
			d.folder_id AS folder_id,
			d.created_at AS created_at,
			d.updated_at AS updated_at,
			d.created_by AS created_by,
			d.updated_by AS updated_by
		FROM documents d
		ORDER BY d.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	docs := make([]*models.Document, 0, len(rawDocs))

	for _, rawDoc := range rawDocs {
		doc, err := r.hydrate(ctx, rawDoc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

func (r *repository) UpdateDocument(ctx context.Context, doc *models.Document) error {
	op := pkg + "UpdateDocument"

	res, err := r.db.ExecContext(ctx,
		`UPDATE documents
		SET name = $1, folder_id = $2, updated_at = $3, updated_by = $4
		WHERE id = $5`,
		doc.Name, doc.FolderID, doc.UpdatedAt, entities.NullID(doc.UpdatedBy), doc.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
	}

	return nil
}

// Delete removes the document with its versions and permission rows in one
// transaction and reports the blob keys of the removed versions.
func (r *repository) Delete(ctx context.Context, id int64) ([]string, error) {
	op := pkg + "Delete"

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	fileKeys := make([]string, 0)

	err = tx.SelectContext(ctx, &fileKeys,
		`SELECT v.file_key FROM document_versions v WHERE v.document_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, table := range []string{"document_read_permissions", "document_write_permissions", "document_versions"} {
		_, err = tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, table), id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrDocumentNotFound)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return fileKeys, nil
}

// ReplacePermissions swaps both permission sets wholesale inside one
// transaction. Empty id slices clear the corresponding set.
func (r *repository) ReplacePermissions(ctx context.Context, docID int64, readIDs []int64, writeIDs []int64) error {
	op := pkg + "ReplacePermissions"

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	sets := []struct {
		table string
		ids   []int64
	}{
		{"document_read_permissions", readIDs},
		{"document_write_permissions", writeIDs},
	}

	for _, set := range sets {
		_, err = tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, set.table), docID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		for _, userID := range set.ids {
			_, err = tx.ExecContext(ctx,
				fmt.Sprintf(`INSERT INTO %s (document_id, user_id) VALUES ($1, $2)`, set.table),
				docID, userID)
			if err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *repository) Readers(ctx context.Context, docID int64) ([]int64, error) {
	return r.permissionSet(ctx, "document_read_permissions", docID)
}

func (r *repository) Writers(ctx context.Context, docID int64) ([]int64, error) {
	return r.permissionSet(ctx, "document_write_permissions", docID)
}

func (r *repository) permissionSet(ctx context.Context, table string, docID int64) ([]int64, error) {
	op := pkg + "permissionSet"

	ids := make([]int64, 0)

	err := r.db.SelectContext(ctx, &ids,
		fmt.Sprintf(`SELECT p.user_id FROM %s p WHERE p.document_id = $1 ORDER BY p.user_id ASC`, table),
		docID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ids, nil
}

func (r *repository) hydrate(ctx context.Context, rawDoc entities.Document) (*models.Document, error) {
	readIDs, err := r.Readers(ctx, rawDoc.ID)
	if err != nil {
		return nil, err
	}

	writeIDs, err := r.Writers(ctx, rawDoc.ID)
	if err != nil {
		return nil, err
	}

	latest, err := r.latestVersion(ctx, rawDoc.ID)
	if err != nil {
		return nil, err
	}

	return &models.Document{
		ID:           rawDoc.ID,
		Name:         rawDoc.Name,
		FolderID:     rawDoc.FolderID,
		CreatedAt:    rawDoc.CreatedAt,
		UpdatedAt:    rawDoc.UpdatedAt,
		CreatedBy:    entities.IDOrNil(rawDoc.CreatedBy),
		UpdatedBy:    entities.IDOrNil(rawDoc.UpdatedBy),
		ReadUserIDs:  readIDs,
		WriteUserIDs: writeIDs,
		Latest:       latest,
	}, nil
}

func (r *repository) latestVersion(ctx context.Context, docID int64) (*models.DocumentVersion, error) {
	op := pkg + "latestVersion"

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
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.DocumentVersion{
		ID:         rawVersion.ID,
		DocumentID: rawVersion.DocumentID,
		FileKey:    rawVersion.FileKey,
		FileName:   rawVersion.FileName,
		Label:      rawVersion.Label,
		UploadedAt: rawVersion.UploadedAt,
		UploadedBy: entities.IDOrNil(rawVersion.UploadedBy),
	}, nil
}
