package app

import (
	"context"
	"docserver/internal/cache/redis"
	"docserver/internal/config"
	"docserver/internal/dbs/postgres"
	cachedocsrepo "docserver/internal/repositories/cache/docs"
	cachesessionrepo "docserver/internal/repositories/cache/session"
	documentrepo "docserver/internal/repositories/db/document"
	folderrepo "docserver/internal/repositories/db/folder"
	userrepo "docserver/internal/repositories/db/user"
	versionrepo "docserver/internal/repositories/db/version"
	filerepo "docserver/internal/repositories/storage/file"
	accessservice "docserver/internal/services/access"
	authservice "docserver/internal/services/auth"
	documentservice "docserver/internal/services/document"
	folderservice "docserver/internal/services/folder"
	userservice "docserver/internal/services/user"
	"fmt"
	"log/slog"
)

type App struct {
	AuthService     *authservice.AuthService
	UserService     *userservice.UserService
	FolderService   *folderservice.FolderService
	DocumentService *documentservice.DocumentService
	AccessService   *accessservice.AccessService
}

func NewApp(ctx context.Context, log *slog.Logger, dbCfg config.DB, cacheCfg config.Cache, fileStorageCfg config.FileStorage) (*App, error) {
	db, err := postgres.New(ctx, postgres.Config{
		Addr:     dbCfg.Addr,
		Port:     dbCfg.Port,
		User:     dbCfg.User,
		Password: dbCfg.Password,
		DB:       dbCfg.DB})
	if err != nil {
		log.Error("failed connect to db", "err", err)
		return nil, fmt.Errorf("failed connect to db: %w", err)
	}

	cache, err := redis.New(ctx, redis.Config{Addr: cacheCfg.Addr, Password: cacheCfg.Password, DB: cacheCfg.DB})
	if err != nil {
		log.Error("failed connect to cache", "err", err)
		return nil, fmt.Errorf("failed connect to cache: %w", err)
	}

	userRepo := userrepo.NewRepository(db)
	folderRepo := folderrepo.NewRepository(db)
	docRepo := documentrepo.NewRepository(db)
	versionRepo := versionrepo.NewRepository(db)

	sessionCacheRepo := cachesessionrepo.New(cache, cacheCfg.SessionTTL)
	documentCacheRepo := cachedocsrepo.New(cache, cacheCfg.DocumentsTTL)

	fileStorage := filerepo.NewRepository(fileStorageCfg.Path)

	authService := authservice.New(log, userRepo, userRepo, sessionCacheRepo)
	userService := userservice.New(log, userRepo)
	folderService := folderservice.New(log, folderRepo, fileStorage, documentCacheRepo)
	documentService := documentservice.New(log, docRepo, versionRepo, folderRepo, userRepo, fileStorage, documentCacheRepo)
	accessService := accessservice.New(log, docRepo, userRepo, documentCacheRepo)

	return &App{
		AuthService:     authService,
		UserService:     userService,
		FolderService:   folderService,
		DocumentService: documentService,
		AccessService:   accessService,
	}, nil
}
