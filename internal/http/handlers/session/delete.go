package session

import (
	"context"
	"docserver/internal/models"
	utils "docserver/internal/utils/http_errors"
	"errors"
	"log/slog"
	"net/http"
)

// Delete drops the session. Logging out with an unknown token still
// succeeds from the client's point of view.
func Delete(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, token string, sd SessionDeleter) {
	op := pkg + "Delete"

	log = log.With(slog.String("op", op))

	err := sd.Logout(ctx, token)
	if err != nil && !errors.Is(err, models.ErrSessionNotFound) {
		log.Error("failed to delete session", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	if err := utils.WriteJSONData(w, http.StatusOK, "logged out", nil); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
