package folders

import (
	"context"
	"docserver/internal/models"
	utils "docserver/internal/utils/http_errors"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
)

// Delete removes the folder with its whole subtree: nested folders,
// their documents, versions and stored content.
func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rawID string, fs FolderService) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op))

	folderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		utils.WriteJSONError(w, http.StatusNotFound, models.ErrFolderNotFound.Error())
		return
	}

	if err := fs.DeleteFolder(ctx, folderID); err != nil {
		if errors.Is(err, models.ErrFolderNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, models.ErrFolderNotFound.Error())
			return
		}
		log.Error("failed to delete folder", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	if err := utils.WriteJSONData(w, http.StatusOK, "folder deleted", nil); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
