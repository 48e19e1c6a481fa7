// Package rediscache wraps a user repository with a Redis read-through cache.
//
// Only the two point lookups (by ID, by email) are cached; FindAll always
// hits the backing store. Cache failures are never surfaced to callers —
// a broken Redis degrades to the uncached path.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/userhub/internal/domain"
	"github.com/ignite/userhub/internal/pkg/logger"
	"github.com/ignite/userhub/internal/service/user"
)

// UserRepo decorates a user.Repository with Redis caching.
type UserRepo struct {
	next user.Repository
	rdb  *redis.Client
	ttl  time.Duration
}

// NewUserRepo wraps next with a cache using the given TTL per entry.
func NewUserRepo(next user.Repository, rdb *redis.Client, ttl time.Duration) *UserRepo {
	return &UserRepo{next: next, rdb: rdb, ttl: ttl}
}

func idKey(id string) string                 { return "user:id:" + id }
func emailKey(email domain.UserEmail) string { return "user:email:" + email.String() }

func (r *UserRepo) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	saved, err := r.next.Save(ctx, u)
	if err != nil {
		return nil, err
	}
	r.store(ctx, saved)
	return saved, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if u := r.lookup(ctx, idKey(id)); u != nil {
		return u, nil
	}
	u, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, u)
	return u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email domain.UserEmail) (*domain.User, error) {
	if u := r.lookup(ctx, emailKey(email)); u != nil {
		return u, nil
	}
	u, err := r.next.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	r.store(ctx, u)
	return u, nil
}

func (r *UserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	return r.next.FindAll(ctx)
}

func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	// Resolve the email before deleting so both cache keys can be dropped.
	var email domain.UserEmail
	if u, err := r.next.FindByID(ctx, id); err == nil {
		email = u.Email
	} else if !errors.Is(err, user.ErrNotFound) {
		return false, err
	}

	deleted, err := r.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	keys := []string{idKey(id)}
	if email != "" {
		keys = append(keys, emailKey(email))
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("cache invalidation failed", "user_id", id, "error", err)
	}
	return deleted, nil
}

func (r *UserRepo) lookup(ctx context.Context, key string) *domain.User {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("cache read failed", "key", key, "error", err)
		}
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		logger.Warn("cache entry corrupt, ignoring", "key", key, "error", err)
		return nil
	}
	return &u
}

func (r *UserRepo) store(ctx context.Context, u *domain.User) {
	data, err := json.Marshal(u)
	if err != nil {
		return
	}
	pipe := r.rdb.Pipeline()
	pipe.Set(ctx, idKey(u.ID), data, r.ttl)
	pipe.Set(ctx, emailKey(u.Email), data, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("cache write failed", "user_id", u.ID, "error", err)
	}
}
