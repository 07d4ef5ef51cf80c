package server

import (
	"context"
	"docserver/internal/config"
	"docserver/internal/http/handlers/docs"
	"docserver/internal/http/handlers/folders"
	"docserver/internal/http/handlers/session"
	"docserver/internal/http/handlers/user"
	"docserver/internal/http/middleware"
	"docserver/internal/models"
	utils "docserver/internal/utils/http_errors"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

func StartServer(
	ctx context.Context,
	cfg *config.HTTPServer,
	log *slog.Logger,
	authService AuthService,
	userService UserService,
	folderService FolderService,
	documentService DocumentService,
	accessService AccessService,
) error {
	r := mux.NewRouter()

	r.Use(middleware.Logger(log))

	setupRoutes(r, log, authService, userService, folderService, documentService, accessService)

	srv := &http.Server{
		Addr:         cfg.Address,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
		Handler:      r,
	}

	errChan := make(chan error, 1)

	go func() {
		log.Info("server started", slog.String("address", cfg.Address))
		if err := srv.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("server closed gracefully")
			} else {
				log.Error("could not start server:", "error", err)
				errChan <- err
			}
		}
	}()
	select {
	case <-ctx.Done():
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("error shutting down server", "error", err)
			return err
		}
		log.Info("server exited gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func setupRoutes(
	r *mux.Router,
	log *slog.Logger,
	auth AuthService,
	us UserService,
	fs FolderService,
	ds DocumentService,
	as AccessService,
) {
	// POST user
	r.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user.Add(ctx, log, w, r, auth)
	}).Methods(http.MethodPost)

	// POST session
	r.HandleFunc("/api/auth", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session.Add(ctx, log, w, r, auth)
	}).Methods(http.MethodPost)

	// DELETE session
	r.HandleFunc("/api/auth/{token}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		token := vars["token"]
		session.Delete(ctx, log, w, r, token, auth)
	}).Methods(http.MethodDelete)

	protected := r.NewRoute().Subrouter()

	protected.Use(middleware.Auth(log, auth))

	// GET users
	protected.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user.List(ctx, log, w, r, us)
	}).Methods(http.MethodGet)

	// GET folders
	protected.HandleFunc("/api/folders", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		folders.List(ctx, log, w, r, fs)
	}).Methods(http.MethodGet)

	// POST folder
	protected.HandleFunc("/api/folders", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		folders.Add(ctx, log, w, r, fs)
	}).Methods(http.MethodPost)

	// GET folder by id
	protected.HandleFunc("/api/folders/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		folders.GetByID(ctx, log, w, r, vars["id"], fs)
	}).Methods(http.MethodGet)

	// PUT folder by id
	protected.HandleFunc("/api/folders/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		folders.Update(ctx, log, w, r, vars["id"], fs)
	}).Methods(http.MethodPut)

	// DELETE folder by id
	protected.HandleFunc("/api/folders/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		folders.Delete(ctx, log, w, r, vars["id"], fs)
	}).Methods(http.MethodDelete)

	// GET documents
	protected.HandleFunc("/api/documents", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.List(ctx, log, w, r, ds)
	}).Methods(http.MethodGet)

	// POST document
	protected.HandleFunc("/api/documents", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.Add(ctx, log, w, r, ds)
	}).Methods(http.MethodPost)

	// GET document by id
	protected.HandleFunc("/api/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.GetByID(ctx, log, w, r, vars["id"], ds)
	}).Methods(http.MethodGet)

	// PUT document by id
	protected.HandleFunc("/api/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.Update(ctx, log, w, r, vars["id"], ds)
	}).Methods(http.MethodPut)

	// DELETE document by id
	protected.HandleFunc("/api/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.Delete(ctx, log, w, r, vars["id"], ds)
	}).Methods(http.MethodDelete)

	// GET document version history
	protected.HandleFunc("/api/documents/{id}/history", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.History(ctx, log, w, r, vars["id"], ds)
	}).Methods(http.MethodGet)

	// GET current version content
	protected.HandleFunc("/api/documents/{id}/file", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.File(ctx, log, w, r, vars["id"], ds)
	}).Methods(http.MethodGet)

	// PUT document permissions
	protected.HandleFunc("/api/documents/{id}/permissions", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.Permissions(ctx, log, w, r, vars["id"], as)
	}).Methods(http.MethodPut)

	// Not allowed
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONError(w, http.StatusMethodNotAllowed, models.ErrMethodNotAllowed.Error())
	})
}
