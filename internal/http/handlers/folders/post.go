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
)

func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, fs FolderService) {
	op := pkg + "Add"

	log = log.With(slog.String("op", op))

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

	name := ""
	if folderRequest.Name != nil {
		name = *folderRequest.Name
	}

	requester, _ := r.Context().Value(models.UserContextKey).(*models.User)

	folder, err := fs.CreateFolder(ctx, name, folderRequest.Parent, requester)
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
		log.Error("failed to create folder", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	if err := utils.WriteJSONData(w, http.StatusCreated, "folder created", dto.NewFolderResponse(folder)); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
