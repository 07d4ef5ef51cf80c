package docs

import (
	"context"
	"docserver/internal/models"
	utils "docserver/internal/utils/http_errors"
	"errors"
	"log/slog"
	"net/http"
)

// Delete removes the document with its whole version chain and stored content.
func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rawID string, ds DocumentService) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op))

	docID, err := parseDocID(rawID)
	if err != nil {
		utils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
		return
	}

	if err := ds.DeleteDocument(ctx, docID); err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
			return
		}
		log.Error("failed to delete document", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	if err := utils.WriteJSONData(w, http.StatusOK, "document deleted", nil); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
