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

// Update applies the provided metadata fields and, when a file part is
// present, appends a new version with a bumped label.
func Update(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rawID string, ds DocumentService) {
	op := pkg + "Update"

	log = log.With(slog.String("op", op))

	docID, err := parseDocID(rawID)
	if err != nil {
		utils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
		return
	}

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

	upd := models.UpdateDocument{
		Name:     formString(r, "name"),
		FolderID: folderID,
		File:     file,
	}

	requester, _ := r.Context().Value(models.UserContextKey).(*models.User)

	doc, err := ds.UpdateDocument(ctx, docID, upd, requester)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			log.Warn("invalid document params")
			utils.WriteJSONErrorFields(w, http.StatusBadRequest, "validation failed", ve.Fields)
			return
		}
		if errors.Is(err, models.ErrDocumentNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
			return
		}
		log.Error("failed to update document", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	if err := utils.WriteJSONData(w, http.StatusOK, "document updated", dto.NewDocumentResponse(doc)); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

// Permissions replaces both permission lists wholesale.
func Permissions(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rawID string, as AccessService) {
	op := pkg + "Permissions"

	log = log.With(slog.String("op", op))

	docID, err := parseDocID(rawID)
	if err != nil {
		utils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
		return
	}

	if err := parseForm(r); err != nil {
		log.Warn("failed to parse form", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	readIDs := permparse.IDSet(r.Form, "read_permissions")
	writeIDs := permparse.IDSet(r.Form, "write_permissions")

	doc, err := as.SetPermissions(ctx, docID, readIDs, writeIDs)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
			return
		}
		log.Error("failed to set permissions", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	if err := utils.WriteJSONData(w, http.StatusOK, "permissions updated", dto.NewDocumentResponse(doc)); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
