package middleware

import (
	"context"
	"docserver/internal/models"
	utils "docserver/internal/utils/http_errors"
	"log/slog"
	"net/http"
	"strings"
)

// Auth resolves the Authorization bearer token to a user and stores it in
// the request context under models.UserContextKey.
func Auth(log *slog.Logger, storer SessionStorer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			op := pkg + "Auth"

			log := log.With(slog.String("op", op))

			token := bearerToken(r)
			if token == "" {
				utils.WriteJSONError(w, http.StatusUnauthorized, "authorization required")
				return
			}

			requester, err := storer.UserByToken(r.Context(), token)
			if err != nil {
				log.Warn("failed to get user by token", slog.String("error", err.Error()))
				utils.WriteJSONError(w, http.StatusUnauthorized, "token is invalid")
				return
			}

			ctx := context.WithValue(r.Context(), models.UserContextKey, requester)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}

	return strings.TrimSpace(token)
}
