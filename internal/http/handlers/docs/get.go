package docs

import (
	"context"
	"docserver/internal/dto"
	"docserver/internal/models"
	utils "docserver/internal/utils/http_errors"
	"errors"
	"log/slog"
	"net/http"
)

func List(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, ds DocumentService) {
	op := pkg + "List"

	log = log.With(slog.String("op", op))

	docs, err := ds.ListDocuments(ctx)
	if err != nil {
		log.Error("failed to list documents", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		response = append(response, dto.NewDocumentResponse(doc))
	}

	if err := utils.WriteJSONData(w, http.StatusOK, "documents listed", response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

func GetByID(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rawID string, ds DocumentService) {
	op := pkg + "GetByID"

	log = log.With(slog.String("op", op))

	docID, err := parseDocID(rawID)
	if err != nil {
		utils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
		return
	}

	doc, err := ds.GetDocument(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
			return
		}
		log.Error("failed to get document", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	if err := utils.WriteJSONData(w, http.StatusOK, "document found", dto.NewDocumentResponse(doc)); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}

// History lists the version chain, newest first.
func History(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, rawID string, ds DocumentService) {
	op := pkg + "History"

	log = log.With(slog.String("op", op))

	docID, err := parseDocID(rawID)
	if err != nil {
		utils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
		return
	}

	versions, err := ds.History(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			utils.WriteJSONError(w, http.StatusNotFound, models.ErrDocumentNotFound.Error())
			return
		}
		log.Error("failed to list versions", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := make([]dto.VersionResponse, 0, len(versions))
	for _, v := range versions {
		response = append(response, dto.NewVersionResponse(v))
	}

	if err := utils.WriteJSONData(w, http.StatusOK, "versions listed", response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
