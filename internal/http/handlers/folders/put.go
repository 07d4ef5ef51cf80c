package folders

import (
	"context"
	"docserver/internal/dto"
	"docserver/internal/models"
	utils "docserver/internal/utils/http_errors"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
)

// Update applies the provided fields only; absent fields keep their value.
func Update(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rawID string, fs FolderService) {
	op := pkg + "Update"

	log = log.With(slog.String("op", op))

	folderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		utils.WriteJSONError(w, http.StatusNotFound, models.ErrFolderNotFound.Error())
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read body", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}
	defer r.Body.Close()

	var folderRequest dto.FolderRequest

	if err := json.Unmarshal(body, &folderRequest); err != nil {
		log.Warn("failed to unmarshal body", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	requester, _ := r.Context().Value(models.UserContextKey).(*models.User)

	folder, err := fs.UpdateFolder(ctx, folderID, folderRequest.Name, folderRequest.Parent, requester)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			log.Warn("invalid folder params")
			utils.WriteJSONErrorFields(w, http.StatusBadRequest, "validation failed", ve.Fields)
			return
		}
		if errors.Is(err, models.ErrFolderNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, models.ErrFolderNotFound.Error())
			return
		}
		log.Error("failed to update folder", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	if err := utils.WriteJSONData(w, http.StatusOK, "folder updated", dto.NewFolderResponse(folder)); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
