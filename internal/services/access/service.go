package accessservice

import (
	"context"
	"docserver/internal/models"
	cachedocsrepo "docserver/internal/repositories/cache/docs"
	"errors"
	"fmt"
	"log/slog"
)

const pkg = "accessService/"

// AccessService resolves per-document permission lists. Only the explicit
// read and write sets grant access; the document's creator gets no implicit
// rights.
type AccessService struct {
	log     *slog.Logger
	docRepo PermissionRepository
	users   UserResolver
	cache   CacheInvalidator
}

func New(log *slog.Logger, docRepo PermissionRepository, users UserResolver, cache CacheInvalidator) *AccessService {
	return &AccessService{
		log:     log,
		docRepo: docRepo,
		users:   users,
		cache:   cache,
	}
}

func (as *AccessService) EffectiveReaders(ctx context.Context, docID int64) ([]int64, error) {
	op := pkg + "EffectiveReaders"

	doc, err := as.document(ctx, op, docID)
	if err != nil {
		return nil, err
	}

	return doc.ReadUserIDs, nil
}

func (as *AccessService) EffectiveWriters(ctx context.Context, docID int64) ([]int64, error) {
	op := pkg + "EffectiveWriters"

	doc, err := as.document(ctx, op, docID)
	if err != nil {
		return nil, err
	}

	return doc.WriteUserIDs, nil
}

func (as *AccessService) CanRead(ctx context.Context, docID int64, userID int64) (bool, error) {
	readers, err := as.EffectiveReaders(ctx, docID)
	if err != nil {
		return false, err
	}

	return contains(readers, userID), nil
}

func (as *AccessService) CanWrite(ctx context.Context, docID int64, userID int64) (bool, error) {
	writers, err := as.EffectiveWriters(ctx, docID)
	if err != nil {
		return false, err
	}

	return contains(writers, userID), nil
}

// SetPermissions replaces both permission lists wholesale. Ids that match no
// existing user are dropped without error.
func (as *AccessService) SetPermissions(ctx context.Context, docID int64, readIDs, writeIDs []int64) (*models.Document, error) {
	op := pkg + "SetPermissions"

	log := as.log.With(slog.String("op", op))

	log.Debug("attempting to set permissions", slog.Int64("doc_id", docID))

	if _, err := as.document(ctx, op, docID); err != nil {
		return nil, err
	}

	resolvedRead, err := as.users.ExistingIDs(ctx, readIDs)
	if err != nil {
		log.Error("failed to resolve read ids", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	resolvedWrite, err := as.users.ExistingIDs(ctx, writeIDs)
	if err != nil {
		log.Error("failed to resolve write ids", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if err := as.docRepo.ReplacePermissions(ctx, docID, resolvedRead, resolvedWrite); err != nil {
		log.Error("failed to replace permissions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if err := as.cache.Del(ctx, cachedocsrepo.Key(docID)); err != nil {
		log.Warn("failed to invalidate document cache", slog.String("error", err.Error()))
	}

	doc, err := as.document(ctx, op, docID)
	if err != nil {
		return nil, err
	}

	log.Debug("permissions replaced",
		slog.Int("readers", len(doc.ReadUserIDs)),
		slog.Int("writers", len(doc.WriteUserIDs)))

	return doc, nil
}

func (as *AccessService) document(ctx context.Context, op string, docID int64) (*models.Document, error) {
	doc, err := as.docRepo.DocumentByID(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			as.log.Warn("document not found", slog.String("op", op), slog.Int64("doc_id", docID))
			return nil, models.ErrDocumentNotFound
		}
		as.log.Error("failed to get document", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return doc, nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
