package user

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

func Add(ctx context.Context, log *slog.Logger, w http.ResponseWriter, r *http.Request, ur UserRegistrar) {
	op := pkg + "Add"

	log = log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read body", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}
	defer r.Body.Close()

	var userRequest dto.UserRequest

	if err := json.Unmarshal(body, &userRequest); err != nil {
		log.Warn("failed to unmarshal body", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	registered, err := ur.Register(ctx, userRequest.Login, userRequest.Password)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			log.Warn("invalid registration params")
			utils.WriteJSONErrorFields(w, http.StatusBadRequest, "validation failed", ve.Fields)
			return
		}
		if errors.Is(err, models.ErrUserExists) {
			log.Warn("failed to register user", slog.String("error", models.ErrUserExists.Error()))
			utils.WriteJSONError(w, http.StatusConflict, models.ErrUserExists.Error())
			return
		}
		log.Error("failed to register user", slog.String("error", err.Error()))
		utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
		return
	}

	response := dto.UserResponse{ID: registered.ID, Login: registered.Login}

	if err := utils.WriteJSONData(w, http.StatusCreated, "user registered", response); err != nil {
		log.Error("failed to write response", slog.String("error", err.Error()))
	}
}
