package documentrepo

import (
	"context"
	"database/sql"
	"docserver/internal/models"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func setup(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, *repository) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	repo := NewRepository(sqlxDB)
	return sqlxDB, mock, repo
}

func TestCreateDocument_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	now := time.Now()
	actor := int64(5)
	doc := &models.Document{
		Name:      "Q1",
		FolderID:  1,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: &actor,
		UpdatedBy: &actor,
	}

	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO documents (name, folder_id, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`)).
		WithArgs(doc.Name, doc.FolderID, now, now,
			sql.NullInt64{Int64: 5, Valid: true}, sql.NullInt64{Int64: 5, Valid: true}).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))

	id, err := repo.CreateDocument(context.Background(), doc)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentByID_Success(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT.+FROM documents d\\s+WHERE d.id").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "folder_id", "created_at", "updated_at", "created_by", "updated_by",
		}).AddRow(int64(10), "Q1", int64(1), now, now, int64(5), int64(5)))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT p.user_id FROM document_read_permissions p WHERE p.document_id = $1 ORDER BY p.user_id ASC`)).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(1)).AddRow(int64(2)))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT p.user_id FROM document_write_permissions p WHERE p.document_id = $1 ORDER BY p.user_id ASC`)).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(2)))

	mock.ExpectQuery("SELECT.+FROM document_versions v").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "document_id", "file_key", "file_name", "version", "uploaded_at", "uploaded_by",
		}).AddRow(int64(100), int64(10), "key-1", "q1.pdf", "1.1", now, int64(5)))

	doc, err := repo.DocumentByID(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, "Q1", doc.Name)
	assert.Equal(t, []int64{1, 2}, doc.ReadUserIDs)
	assert.Equal(t, []int64{2}, doc.WriteUserIDs)
	assert.NotNil(t, doc.Latest)
	assert.Equal(t, "1.1", doc.Latest.Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentByID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectQuery("SELECT.+FROM documents").
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	doc, err := repo.DocumentByID(context.Background(), 404)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, models.ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentByID_NoVersions(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery("SELECT.+FROM documents d\\s+WHERE d.id").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "folder_id", "created_at", "updated_at", "created_by", "updated_by",
		}).AddRow(int64(10), "Q1", int64(1), now, now, nil, nil))

	mock.ExpectQuery("SELECT p.user_id FROM document_read_permissions").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	mock.ExpectQuery("SELECT p.user_id FROM document_write_permissions").
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	mock.ExpectQuery("SELECT.+FROM document_versions v").
		WithArgs(int64(10)).
		WillReturnError(sql.ErrNoRows)

	doc, err := repo.DocumentByID(context.Background(), 10)
	assert.NoError(t, err)
	assert.Nil(t, doc.Latest)
	assert.Nil(t, doc.CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_CascadesVersionsAndPermissions(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT v.file_key FROM document_versions v WHERE v.document_id = $1`)).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"file_key"}).AddRow("key-1").AddRow("key-2"))

	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM document_read_permissions WHERE document_id = $1`)).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM document_write_permissions WHERE document_id = $1`)).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM document_versions WHERE document_id = $1`)).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM documents WHERE id = $1`)).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	fileKeys, err := repo.Delete(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, []string{"key-1", "key-2"}, fileKeys)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectBegin()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT v.file_key FROM document_versions v WHERE v.document_id = $1`)).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"file_key"}))

	for _, table := range []string{"document_read_permissions", "document_write_permissions", "document_versions"} {
		mock.ExpectExec(`DELETE FROM ` + table).
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM documents WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectRollback()

	fileKeys, err := repo.Delete(context.Background(), 404)
	assert.Nil(t, fileKeys)
	assert.ErrorIs(t, err, models.ErrDocumentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplacePermissions_SwapsBothSets(t *testing.T) {
	t.Parallel()

	db, mock, repo := setup(t)
	defer db.Close()

	mock.ExpectBegin()

	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM document_read_permissions WHERE document_id = $1`)).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO document_read_permissions (document_id, user_id) VALUES ($1, $2)`)).
		WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO document_read_permissions (document_id, user_id) VALUES ($1, $2)`)).
		WithArgs(int64(10), int64(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM document_write_permissions WHERE document_id = $1`)).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectCommit()

	err := repo.ReplacePermissions(context.Background(), 10, []int64{1, 2}, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
