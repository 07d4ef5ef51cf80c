package folderservice

import (
	"context"
	"docserver/internal/models"
	cachedocsrepo "docserver/internal/repositories/cache/docs"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const pkg = "folderService/"

type FolderService struct {
	log        *slog.Logger
	folderRepo FolderRepository
	files      FileDeleter
	cache      DocumentCacheInvalidator
}

func New(
	log *slog.Logger,
	folderRepo FolderRepository,
	files FileDeleter,
	cache DocumentCacheInvalidator,
) *FolderService {
	return &FolderService{
		log:        log,
		folderRepo: folderRepo,
		files:      files,
		cache:      cache,
	}
}

func (fs *FolderService) CreateFolder(ctx context.Context, name string, parentID *int64, actor *models.User) (*models.Folder, error) {
	op := pkg + "CreateFolder"

	log := fs.log.With(slog.String("op", op))

	log.Debug("attempting to create folder", slog.String("name", name))

	if name == "" {
		return nil, models.NewValidationError().Add("name", "this field is required")
	}

	if parentID != nil {
		if _, err := fs.folderRepo.FolderByID(ctx, *parentID); err != nil {
			if errors.Is(err, models.ErrFolderNotFound) {
				log.Warn("parent folder not found", slog.Int64("parent_id", *parentID))
				return nil, models.ErrFolderNotFound
			}
			log.Error("failed to get parent folder", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
		}
	}

	now := time.Now()

	folder := &models.Folder{
		Name:      name,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actorID(actor),
		UpdatedBy: actorID(actor),
	}

	id, err := fs.folderRepo.CreateFolder(ctx, folder)
	if err != nil {
		log.Error("failed to create folder", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	folder.ID = id

	log.Debug("folder created successfully", slog.Int64("folder_id", id))

	return folder, nil
}

func (fs *FolderService) UpdateFolder(ctx context.Context, folderID int64, name *string, parentID *int64, actor *models.User) (*models.Folder, error) {
	op := pkg + "UpdateFolder"

	log := fs.log.With(slog.String("op", op))

	log.Debug("attempting to update folder", slog.Int64("folder_id", folderID))

	folder, err := fs.folderRepo.FolderByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, models.ErrFolderNotFound) {
			log.Warn("folder not found", slog.Int64("folder_id", folderID))
			return nil, models.ErrFolderNotFound
		}
		log.Error("failed to get folder", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	if name != nil {
		if *name == "" {
			return nil, models.NewValidationError().Add("name", "this field may not be blank")
		}
		folder.Name = *name
	}

	if parentID != nil {
		if *parentID == folderID {
			return nil, models.NewValidationError().Add("parent", "folder cannot be its own parent")
		}
		if _, err := fs.folderRepo.FolderByID(ctx, *parentID); err != nil {
			if errors.Is(err, models.ErrFolderNotFound) {
				log.Warn("new parent folder not found", slog.Int64("parent_id", *parentID))
				return nil, models.ErrFolderNotFound
			}
			log.Error("failed to get new parent folder", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
		}
		folder.ParentID = parentID
	}

	folder.UpdatedAt = time.Now()
	folder.UpdatedBy = actorID(actor)

	if err := fs.folderRepo.UpdateFolder(ctx, folder); err != nil {
		if errors.Is(err, models.ErrFolderNotFound) {
			return nil, models.ErrFolderNotFound
		}
		log.Error("failed to update folder", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	log.Debug("folder updated successfully", slog.Int64("folder_id", folderID))

	return folder, nil
}

// DeleteFolder removes the folder and everything under it. The database
// subtree goes atomically; blob and cache cleanup happen after commit and
// are best effort.
func (fs *FolderService) DeleteFolder(ctx context.Context, folderID int64) error {
	op := pkg + "DeleteFolder"

	log := fs.log.With(slog.String("op", op))

	log.Debug("attempting to delete folder", slog.Int64("folder_id", folderID))

	deleted, err := fs.folderRepo.DeleteTree(ctx, folderID)
	if err != nil {
		if errors.Is(err, models.ErrFolderNotFound) {
			log.Warn("folder not found", slog.Int64("folder_id", folderID))
			return models.ErrFolderNotFound
		}
		log.Error("failed to delete folder subtree", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	for _, key := range deleted.FileKeys {
		if err := fs.files.DeleteFile(key); err != nil {
			log.Warn("failed to delete version content", slog.String("file_key", key), slog.String("error", err.Error()))
		}
	}

	if len(deleted.DocumentIDs) > 0 {
		keys := make([]string, 0, len(deleted.DocumentIDs))
		for _, docID := range deleted.DocumentIDs {
			keys = append(keys, cachedocsrepo.Key(docID))
		}
		if err := fs.cache.Del(ctx, keys...); err != nil {
			log.Warn("failed to invalidate document cache", slog.String("error", err.Error()))
		}
	}

	log.Debug("folder deleted successfully",
		slog.Int64("folder_id", folderID),
		slog.Int("folders_removed", len(deleted.FolderIDs)),
		slog.Int("documents_removed", len(deleted.DocumentIDs)))

	return nil
}

func (fs *FolderService) ListRoots(ctx context.Context) ([]*models.FolderNode, error) {
	op := pkg + "ListRoots"

	log := fs.log.With(slog.String("op", op))

	nodes, err := fs.folderRepo.Roots(ctx)
	if err != nil {
		log.Error("failed to list root folders", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return nodes, nil
}

func (fs *FolderService) GetFolder(ctx context.Context, folderID int64) (*models.FolderNode, error) {
	op := pkg + "GetFolder"

	log := fs.log.With(slog.String("op", op))

	node, err := fs.folderRepo.Node(ctx, folderID)
	if err != nil {
		if errors.Is(err, models.ErrFolderNotFound) {
			log.Warn("folder not found", slog.Int64("folder_id", folderID))
			return nil, models.ErrFolderNotFound
		}
		log.Error("failed to get folder", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, models.ErrInternal)
	}

	return node, nil
}

// actorID resolves attribution: a missing actor stores no creator/updater
// instead of failing, so system-initiated operations stay unattributed.
func actorID(actor *models.User) *int64 {
	if actor == nil {
		return nil
	}
	id := actor.ID
	return &id
}
