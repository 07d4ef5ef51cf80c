package folderrepo

import (
	"context"
	"database/sql"
	"docserver/internal/entities"
	"docserver/internal/models"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pkg = "folderRepo/"

// subtreeCTE selects the ids of a folder and all its descendants.
const subtreeCTE = `WITH RECURSIVE subtree AS (
			SELECT f.id FROM folders f WHERE f.id = $1
			UNION ALL
			SELECT f.id FROM folders f INNER JOIN subtree s ON f.parent_id = s.id
		)`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *repository {
	return &repository{db: db}
}

func (r *repository) CreateFolder(ctx context.Context, folder *models.Folder) (int64, error) {
	op := pkg + "CreateFolder"

	var id int64

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO folders (name, parent_id, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		folder.Name, entities.NullID(folder.ParentID), folder.CreatedAt, folder.UpdatedAt,
		entities.NullID(folder.CreatedBy), entities.NullID(folder.UpdatedBy)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *repository) FolderByID(ctx context.Context, id int64) (*models.Folder, error) {
	op := pkg + "FolderByID"

	rawFolder := entities.Folder{}

	err := r.db.GetContext(ctx, &rawFolder,
		`SELECT
			f.id AS id,
			f.name AS name,
			f.parent_id AS parent_id,
			f.created_at AS created_at,
			f.updated_at AS updated_at,
			f.created_by AS created_by,
			f.updated_by AS updated_by
		FROM folders f
		WHERE f.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrFolderNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return folderFromRow(rawFolder), nil
}

func (r *repository) UpdateFolder(ctx context.Context, folder *models.Folder) error {
	op := pkg + "UpdateFolder"

	res, err := r.db.ExecContext(ctx,
		`UPDATE folders
		SET name = $1, parent_id = $2, updated_at = $3, updated_by = $4
		WHERE id = $5`,
		folder.Name, entities.NullID(folder.ParentID), folder.UpdatedAt,
		entities.NullID(folder.UpdatedBy), folder.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrFolderNotFound)
	}

	return nil
}

// DeleteTree removes a folder with all descendant folders, their documents,
// versions and permission rows in one transaction. It reports what was
// removed so the caller can clean up blob storage and cached entries.
func (r *repository) DeleteTree(ctx context.Context, id int64) (*models.DeletedSubtree, error) {
	op := pkg + "DeleteTree"

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	folderIDs := make([]int64, 0)

	err = tx.SelectContext(ctx, &folderIDs, subtreeCTE+` SELECT id FROM subtree`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(folderIDs) == 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrFolderNotFound)
	}

	docIDs := make([]int64, 0)

	err = tx.SelectContext(ctx, &docIDs,
		`SELECT d.id FROM documents d WHERE d.folder_id = ANY($1)`,
		pq.Array(folderIDs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fileKeys := make([]string, 0)

	if len(docIDs) > 0 {
		err = tx.SelectContext(ctx, &fileKeys,
			`SELECT v.file_key FROM document_versions v WHERE v.document_id = ANY($1)`,
			pq.Array(docIDs))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		for _, table := range []string{"document_read_permissions", "document_write_permissions", "document_versions"} {
			_, err = tx.ExecContext(ctx,
				fmt.Sprintf(`DELETE FROM %s WHERE document_id = ANY($1)`, table),
				pq.Array(docIDs))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}

		_, err = tx.ExecContext(ctx,
			`DELETE FROM documents WHERE id = ANY($1)`, pq.Array(docIDs))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM folders WHERE id = ANY($1)`, pq.Array(folderIDs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.DeletedSubtree{
		FolderIDs:   folderIDs,
		DocumentIDs: docIDs,
		FileKeys:    fileKeys,
	}, nil
}

func (r *repository) Roots(ctx context.Context) ([]*models.FolderNode, error) {
	op := pkg + "Roots"

	rawFolders := make([]entities.Folder, 0)

	err := r.db.SelectContext(ctx, &rawFolders,
		`SELECT
			f.id AS id,
			f.name AS name,
			f.parent_id AS parent_id,
			f.created_at AS created_at,
			f.updated_at AS updated_at,
			f.created_by AS created_by,
			f.updated_by AS updated_by
		FROM folders f
		WHERE f.parent_id IS NULL
		ORDER BY f.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	nodes := make([]*models.FolderNode, 0, len(rawFolders))

	for _, rawFolder := range rawFolders {
		node, err := r.node(ctx, rawFolder)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		nodes = append(nodes, node)
	}

	return nodes, nil
}

func (r *repository) Node(ctx context.Context, id int64) (*models.FolderNode, error) {
	op := pkg + "Node"

	rawFolder := entities.Folder{}

	err := r.db.GetContext(ctx, &rawFolder,
		`SELECT
			f.id AS id,
			f.name AS name,
			f.parent_id AS parent_id,
			f.created_at AS created_at,
			f.updated_at AS updated_at,
			f.created_by AS created_by,
			f.updated_by AS updated_by
		FROM folders f
		WHERE f.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrFolderNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	node, err := r.node(ctx, rawFolder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return node, nil
}

func (r *repository) node(ctx context.Context, rawFolder entities.Folder) (*models.FolderNode, error) {
	op := pkg + "node"

	subfolderIDs := make([]int64, 0)

	err := r.db.SelectContext(ctx, &subfolderIDs,
		`SELECT f.id FROM folders f WHERE f.parent_id = $1 ORDER BY f.id ASC`,
		rawFolder.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	docIDs := make([]int64, 0)

	err = r.db.SelectContext(ctx, &docIDs,
		`SELECT d.id FROM documents d WHERE d.folder_id = $1 ORDER BY d.id ASC`,
		rawFolder.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.FolderNode{
		Folder:       *folderFromRow(rawFolder),
		SubfolderIDs: subfolderIDs,
		DocumentIDs:  docIDs,
	}, nil
}

func folderFromRow(rawFolder entities.Folder) *models.Folder {
	return &models.Folder{
		ID:        rawFolder.ID,
		Name:      rawFolder.Name,
		ParentID:  entities.IDOrNil(rawFolder.ParentID),
		CreatedAt: rawFolder.CreatedAt,
		UpdatedAt: rawFolder.UpdatedAt,
		CreatedBy: entities.IDOrNil(rawFolder.CreatedBy),
		UpdatedBy: entities.IDOrNil(rawFolder.UpdatedBy),
	}
}
