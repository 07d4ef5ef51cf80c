package docs

import (
	"context"
	"docserver/internal/dto"
	"docserver/internal/models"
	utils "docserver/internal/utils/http_errors"
	"docserver/internal/utils/permparse"
	"errors"
	"log/slog"
	"net/http"
)

func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, ds DocumentService) {
	op := pkg + "Add"

	log = log.With(slog.String("op", op))

	if err := parseForm(r); err != nil {
		log.Warn("failed to parse form", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	folderID, err := formInt64(r, "folder")
	if err != nil {
		utils.WriteJSONErrorFields(w, http.StatusBadRequest, "validation failed",
			map[string][]string{"folder": {"a valid integer is required"}})
		return
	}

	file, closeFile, err := formFile(r)
	if err != nil {
		log.Warn("failed to read file part", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, "failed to read file")
		return
	}
	defer closeFile()

	name := ""
	if raw := formString(r, "name"); raw != nil {
		name = *raw
	}

	req := models.CreateDocument{
		Name:         name,
		FolderID:     folderID,
		File:         file,
		ReadUserIDs:  permparse.IDSet(r.Form, "read_permissions"),
		WriteUserIDs: permparse.IDSet(r.Form, "write_permissions"),
	}

	requester, _ := r.Context().Value(models.UserContextKey).(*models.User)

	doc, err := ds.CreateDocument(ctx, req, requester)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			log.Warn("invalid document params")
			utils.WriteJSONErrorFields(w, http.StatusBadRequest, "validation failed", ve.Fields)
			return
		}
		log.Error("failed to create document", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	if err := utils.WriteJSONData(w, http.StatusCreated, "document created", dto.NewDocumentResponse(doc)); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
