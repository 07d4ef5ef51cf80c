package docs

import (
	"context"
	"docserver/internal/models"
	utils "docserver/internal/utils/http_errors"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// File streams the content of the document's current version.
func File(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rawID string, ds DocumentService) {
	op := pkg + "File"

	log = log.With(slog.String("op", op))

	docID, err := parseDocID(rawID)
	if err != nil {
		utils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
		return
	}

	version, file, err := ds.CurrentFile(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
			return
		}
		log.Error("failed to load document content", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}
	defer file.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", version.FileName))
	w.Header().Set("Content-Type", "application/octet-stream")

	if _, err := io.Copy(w, file); err != nil {
		log.Error("failed to write file response", slog.String("error", err.Error()))
	}
}
