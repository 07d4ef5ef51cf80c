package user

import (
	"context"
	"docserver/internal/dto"
	"docserver/internal/models"
	utils "docserver/internal/utils/http_errors"
	"log/slog"
	"net/http"
)

// List returns id and login for every user, for building permission lists.
func List(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, ul UserLister) {
	op := pkg + "List"

	log = log.With(slog.String("op", op))

	users, err := ul.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, dto.UserResponse{ID: u.ID, Login: u.Login})
	}

	if err := utils.WriteJSONData(w, http.StatusOK, "users listed", response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
