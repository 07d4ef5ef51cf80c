package cachesessionrepo

import (
	"context"
	"docserver/internal/models"
	cacherepo "docserver/internal/repositories/cache"
	"time"
)

type repository struct {
	cache      cacherepo.Cache
	sessionTTL time.Duration
}

func New(cache cacherepo.Cache, sessionTTL time.Duration) *repository {
	return &repository{
		cache:      cache,
		sessionTTL: sessionTTL,
	}
}

func (r *repository) SaveSession(ctx context.Context, token string, userJSON string) error {
	return r.cache.Set(ctx, sessionKey(token), userJSON, r.sessionTTL).Err()
}

func (r *repository) DeleteSession(ctx context.Context, token string) error {
	return r.cache.Del(ctx, sessionKey(token)).Err()
}

func (r *repository) GetUserByToken(ctx context.Context, token string) (string, error) {
	userJSON, err := r.cache.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		return "", err
	}

	if userJSON == "" {
		return "", models.ErrSessionNotFound
	}

	return userJSON, nil
}

// RenewSession pushes the TTL forward on use so an active client never has
// to re-authenticate mid-session.
func (r *repository) RenewSession(ctx context.Context, token string) error {
	userJSON, err := r.GetUserByToken(ctx, token)
	if err != nil {
		return err
	}

	return r.cache.Set(ctx, sessionKey(token), userJSON, r.sessionTTL).Err()
}

func sessionKey(token string) string {
	return "session:" + token
}
