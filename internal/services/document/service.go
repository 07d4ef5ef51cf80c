package documentservice

import (
	"context"
	"docserver/internal/models"
	cachedocsrepo "docserver/internal/repositories/cache/docs"
	"docserver/internal/utils/versionlabel"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"
)

const pkg = "documentService/"

type DocumentService struct {
	log         *slog.Logger
	docRepo     DocumentRepository
	versionRepo VersionRepository
	folders     FolderProvider
	users       UserResolver
	fileStorage FileStorage
	cache       Cache

	// Per-document locks serialize the read-latest-label, bump, insert
	// sequence so concurrent uploads cannot mint duplicate labels.
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New(
	log *slog.Logger,
	docRepo DocumentRepository,
	versionRepo VersionRepository,
	folders FolderProvider,
	users UserResolver,
	fileStorage FileStorage,
	cache Cache,
) *DocumentService {
	return &DocumentService{
		log:         log,
		docRepo:     docRepo,
		versionRepo: versionRepo,
		folders:     folders,
		users:       users,
		fileStorage: fileStorage,
		cache:       cache,
		locks:       make(map[int64]*sync.Mutex),
	}
}

func (ds *DocumentService) CreateDocument(ctx context.Context, req models.CreateDocument, actor *models.User) (*models.Document, error) {
	op := pkg + "CreateDocument"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to create document", slog.String("name", req.Name))

	ve := models.NewValidationError()
	if req.Name == "" {
		ve.Add("name", "this field is required")
	}
	if req.FolderID == nil {
		ve.Add("folder", "this field is required")
	}
	if req.File == nil {
		ve.Add("file", "no file uploaded, use multipart/form-data with key 'file'")
	}
	if !ve.Empty() {
		return nil, ve
	}

	if _, err := ds.folders.FolderByID(ctx, *req.FolderID); err != nil {
		if errors.Is(err, models.ErrFolderNotFound) {
			log.Warn("folder not found", slog.Int64("folder_id", *req.FolderID))
			return nil, models.NewValidationError().Add("folder", "folder not found")
		}
		log.Error("failed to get folder", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	readIDs, writeIDs, err := ds.resolvePermissionIDs(ctx, log, req.ReadUserIDs, req.WriteUserIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	fileKey := uuid.NewV4().String()

	if err := ds.fileStorage.SaveFile(fileKey, req.File.Content); err != nil {
		log.Error("failed to save file", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	now := time.Now()

	doc := &models.Document{
		Name:      req.Name,
		FolderID:  *req.FolderID,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actorID(actor),
		UpdatedBy: actorID(actor),
	}

	docID, err := ds.docRepo.CreateDocument(ctx, doc)
	if err != nil {
		log.Error("failed to create document", slog.String("error", err.Error()))
		_ = ds.fileStorage.DeleteFile(fileKey)
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	doc.ID = docID

	if len(readIDs) > 0 || len(writeIDs) > 0 {
		if err := ds.docRepo.ReplacePermissions(ctx, docID, readIDs, writeIDs); err != nil {
			log.Error("failed to set permissions", slog.String("error", err.Error()))
			ds.rollbackCreate(ctx, log, docID, fileKey)
			return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
		}
	}

	version := &models.DocumentVersion{
		DocumentID: docID,
		FileKey:    fileKey,
		FileName:   req.File.Name,
		Label:      versionlabel.Initial,
		UploadedAt: now,
		UploadedBy: actorID(actor),
	}

	versionID, err := ds.versionRepo.InsertVersion(ctx, version)
	if err != nil {
		log.Error("failed to create initial version", slog.String("error", err.Error()))
		ds.rollbackCreate(ctx, log, docID, fileKey)
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	version.ID = versionID
	doc.ReadUserIDs = readIDs
	doc.WriteUserIDs = writeIDs
	doc.Latest = version

	log.Debug("document created successfully",
		slog.Int64("doc_id", docID),
		slog.String("version", version.Label))

	return doc, nil
}

func (ds *DocumentService) UpdateDocument(ctx context.Context, docID int64, upd models.UpdateDocument, actor *models.User) (*models.Document, error) {
	op := pkg + "UpdateDocument"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to update document", slog.Int64("doc_id", docID))

	unlock := ds.lock(docID)
	defer unlock()

	doc, err := ds.docRepo.DocumentByID(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("document not found", slog.Int64("doc_id", docID))
			return nil, models.ErrDocumentNotFound
		}
		log.Error("failed to get document", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, models.NewValidationError().Add("name", "this field may not be blank")
		}
		doc.Name = *upd.Name
	}

	if upd.FolderID != nil {
		if _, err := ds.folders.FolderByID(ctx, *upd.FolderID); err != nil {
			if errors.Is(err, models.ErrFolderNotFound) {
				log.Warn("folder not found", slog.Int64("folder_id", *upd.FolderID))
				return nil, models.NewValidationError().Add("folder", "folder not found")
			}
			log.Error("failed to get folder", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
		}
		doc.FolderID = *upd.FolderID
	}

	if upd.File != nil {
		version, err := ds.appendVersion(ctx, log, doc, upd.File, actor)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
		}
		doc.Latest = version
	}

	doc.UpdatedAt = time.Now()
	doc.UpdatedBy = actorID(actor)

	if err := ds.docRepo.UpdateDocument(ctx, doc); err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			return nil, models.ErrDocumentNotFound
		}
		log.Error("failed to update document", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if err := ds.cache.Del(ctx, cachedocsrepo.Key(docID)); err != nil {
		log.Warn("failed to invalidate document cache", slog.String("error", err.Error()))
	}

	log.Debug("document updated successfully", slog.Int64("doc_id", docID))

	return doc, nil
}

// appendVersion stores the new content blob and appends a version labeled
// one minor step past the current latest. A missing or unparsable latest
// label falls back to the default base, yielding "1.1".
func (ds *DocumentService) appendVersion(ctx context.Context, log *slog.Logger, doc *models.Document, file *models.FilePayload, actor *models.User) (*models.DocumentVersion, error) {
	label := versionlabel.Next("")

	latest, err := ds.versionRepo.LatestByDocument(ctx, doc.ID)
	if err != nil && !errors.Is(err, models.ErrVersionNotFound) {
		log.Error("failed to get latest version", slog.String("error", err.Error()))
		return nil, err
	}
	if latest != nil {
		label = versionlabel.Next(latest.Label)
	}

	fileKey := uuid.NewV4().String()

	if err := ds.fileStorage.SaveFile(fileKey, file.Content); err != nil {
		log.Error("failed to save file", slog.String("error", err.Error()))
		return nil, err
	}

	version := &models.DocumentVersion{
		DocumentID: doc.ID,
		FileKey:    fileKey,
		FileName:   file.Name,
		Label:      label,
		UploadedAt: time.Now(),
		UploadedBy: actorID(actor),
	}

	versionID, err := ds.versionRepo.InsertVersion(ctx, version)
	if err != nil {
		log.Error("failed to insert version", slog.String("error", err.Error()))
		_ = ds.fileStorage.DeleteFile(fileKey)
		return nil, err
	}

	version.ID = versionID

	log.Debug("version appended", slog.Int64("doc_id", doc.ID), slog.String("version", label))

	return version, nil
}

func (ds *DocumentService) DeleteDocument(ctx context.Context, docID int64) error {
	op := pkg + "DeleteDocument"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to delete document", slog.Int64("doc_id", docID))

	fileKeys, err := ds.docRepo.Delete(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("document not found", slog.Int64("doc_id", docID))
			return models.ErrDocumentNotFound
		}
		log.Error("failed to delete document", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	for _, key := range fileKeys {
		if err := ds.fileStorage.DeleteFile(key); err != nil {
			log.Warn("failed to delete version content", slog.String("file_key", key), slog.String("error", err.Error()))
		}
	}

	if err := ds.cache.Del(ctx, cachedocsrepo.Key(docID)); err != nil {
		log.Warn("failed to invalidate document cache", slog.String("error", err.Error()))
	}

	log.Debug("document deleted successfully", slog.Int64("doc_id", docID))

	return nil
}

func (ds *DocumentService) GetDocument(ctx context.Context, docID int64) (*models.Document, error) {
	op := pkg + "GetDocument"

	log := ds.log.With(slog.String("op", op))

	cacheKey := cachedocsrepo.Key(docID)

	docJSON, err := ds.cache.Get(ctx, cacheKey)
	if err == nil && docJSON != "" {
		doc := &models.Document{}
		if err := json.Unmarshal([]byte(docJSON), doc); err == nil {
			return doc, nil
		}
		log.Warn("failed to decode cached document", slog.Int64("doc_id", docID))
	}

	doc, err := ds.docRepo.DocumentByID(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("document not found", slog.Int64("doc_id", docID))
			return nil, models.ErrDocumentNotFound
		}
		log.Error("failed to get document", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if encoded, err := json.Marshal(doc); err == nil {
		if err := ds.cache.Set(ctx, cacheKey, string(encoded)); err != nil {
			log.Warn("failed to cache document", slog.String("error", err.Error()))
		}
	}

	return doc, nil
}

func (ds *DocumentService) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	op := pkg + "ListDocuments"

	log := ds.log.With(slog.String("op", op))

	docs, err := ds.docRepo.ListDocuments(ctx)
	if err != nil {
		log.Error("failed to list documents", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("documents listed successfully", slog.Int("count", len(docs)))

	return docs, nil
}

// History returns the full version chain, most recent first.
func (ds *DocumentService) History(ctx context.Context, docID int64) ([]*models.DocumentVersion, error) {
	op := pkg + "History"

	log := ds.log.With(slog.String("op", op))

	if _, err := ds.docRepo.DocumentByID(ctx, docID); err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("document not found", slog.Int64("doc_id", docID))
			return nil, models.ErrDocumentNotFound
		}
		log.Error("failed to get document", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	versions, err := ds.versionRepo.ListByDocument(ctx, docID)
	if err != nil {
		log.Error("failed to list versions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return versions, nil
}

// CurrentFile streams the content of the document's most recent version.
func (ds *DocumentService) CurrentFile(ctx context.Context, docID int64) (*models.DocumentVersion, io.ReadCloser, error) {
	op := pkg + "CurrentFile"

	log := ds.log.With(slog.String("op", op))

	latest, err := ds.versionRepo.LatestByDocument(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrVersionNotFound) {
			log.Warn("document has no versions", slog.Int64("doc_id", docID))
			return nil, nil, models.ErrDocumentNotFound
		}
		log.Error("failed to get latest version", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	file, err := ds.fileStorage.LoadFile(latest.FileKey)
	if err != nil {
		log.Error("failed to load file from storage", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return latest, file, nil
}

func (ds *DocumentService) resolvePermissionIDs(ctx context.Context, log *slog.Logger, readIDs, writeIDs []int64) ([]int64, []int64, error) {
	resolvedRead, err := ds.users.ExistingIDs(ctx, readIDs)
	if err != nil {
		log.Error("failed to resolve read permission ids", slog.String("error", err.Error()))
		return nil, nil, err
	}

	resolvedWrite, err := ds.users.ExistingIDs(ctx, writeIDs)
	if err != nil {
		log.Error("failed to resolve write permission ids", slog.String("error", err.Error()))
		return nil, nil, err
	}

	if len(resolvedRead) < len(readIDs) || len(resolvedWrite) < len(writeIDs) {
		log.Warn("dropped unknown permission ids",
			slog.Int("read_given", len(readIDs)), slog.Int("read_resolved", len(resolvedRead)),
			slog.Int("write_given", len(writeIDs)), slog.Int("write_resolved", len(resolvedWrite)))
	}

	return resolvedRead, resolvedWrite, nil
}

func (ds *DocumentService) rollbackCreate(ctx context.Context, log *slog.Logger, docID int64, fileKey string) {
	if _, err := ds.docRepo.Delete(ctx, docID); err != nil {
		log.Error("failed to roll back document create", slog.String("error", err.Error()))
	}
	_ = ds.fileStorage.DeleteFile(fileKey)
}

func (ds *DocumentService) lock(docID int64) func() {
	ds.mu.Lock()
	l, ok := ds.locks[docID]
	if !ok {
		l = &sync.Mutex{}
		ds.locks[docID] = l
	}
	ds.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func actorID(actor *models.User) *int64 {
	if actor == nil {
		return nil
	}
	id := actor.ID
	return &id
}
