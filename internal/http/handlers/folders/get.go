package folders

import (
	"context"
	"docserver/internal/dto"
	"docserver/internal/models"
	utils "docserver/internal/utils/http_errors"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
)

// List returns every root folder with one level of children.
func List(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, fs FolderService) {
	op := pkg + "List"

	log = log.With(slog.String("op", op))

	roots, err := fs.ListRoots(ctx)
	if err != nil {
		log.Error("failed to list folders", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := make([]dto.FolderResponse, 0, len(roots))
	for _, node := range roots {
		response = append(response, dto.NewFolderNodeResponse(node))
	}

	if err := utils.WriteJSONData(w, http.StatusOK, "folders listed", response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

func GetByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rawID string, fs FolderService) {
	op := pkg + "GetByID"

	log = log.With(slog.String("op", op))

	folderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		utils.WriteJSONError(w, http.StatusNotFound, models.ErrFolderNotFound.Error())
		return
	}

	node, err := fs.GetFolder(ctx, folderID)
	if err != nil {
		if errors.Is(err, models.ErrFolderNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, models.ErrFolderNotFound.Error())
			return
		}
		log.Error("failed to get folder", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	if err := utils.WriteJSONData(w, http.StatusOK, "folder found", dto.NewFolderNodeResponse(node)); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
