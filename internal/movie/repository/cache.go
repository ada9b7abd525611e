package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cinenotes/cinenotes/backend/go-services/internal/movie"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/logger"
	"github.com/cinenotes/cinenotes/backend/go-services/pkg/metrics"
)

// CachedRepo is a read-through Redis cache in front of another Repository.
// Only single-movie reads are cached; List always goes to the inner store.
// Entries are stored as JSON under "<prefix><id>" and evicted on Update/Delete,
// which also bump a per-id version under "<prefix><id>:v". A Get that loaded
// from the store before such a write does not cache its result.
// Redis failures degrade to the inner store and are never surfaced to callers.
type CachedRepo struct {
	Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCachedRepo wraps inner. Prefix may be empty.
func NewCachedRepo(inner Repository, client *redis.Client, prefix string, ttl time.Duration) *CachedRepo {
	if prefix == "" {
		prefix = "movie:"
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedRepo{Repository: inner, client: client, prefix: prefix, ttl: ttl}
}

func (c *CachedRepo) key(id string) string {
	return c.prefix + id
}

func (c *CachedRepo) versionKey(id string) string {
	return c.prefix + id + ":v"
}

// version reads the write counter for id. ok is false when Redis failed.
func (c *CachedRepo) version(ctx context.Context, id string) (v string, ok bool) {
	v, err := c.client.Get(ctx, c.versionKey(id)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", false
	}
	return v, true
}

func (c *CachedRepo) Get(ctx context.Context, id string) (*movie.Movie, error) {
	b, err := c.client.Get(ctx, c.key(id)).Bytes()
	switch {
	case err == nil:
		var mv movie.Movie
		if jerr := json.Unmarshal(b, &mv); jerr == nil {
			metrics.MovieCacheLookups.WithLabelValues("hit").Inc()
			return &mv, nil
		}
		// unreadable entry: drop it and reload
		_ = c.client.Del(ctx, c.key(id)).Err()
		metrics.MovieCacheLookups.WithLabelValues("miss").Inc()
	case errors.Is(err, redis.Nil):
		metrics.MovieCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.MovieCacheLookups.WithLabelValues("error").Inc()
		logger.Warnf("movie cache get %s: %v", id, err)
	}

	// read the version before loading so a concurrent write is detected
	before, vok := c.version(ctx, id)

	mv, err := c.Repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if vok {
		c.fill(ctx, id, before, mv)
	}
	return mv, nil
}

// fill stores mv unless Update or Delete bumped the version since it was loaded.
func (c *CachedRepo) fill(ctx context.Context, id, before string, mv *movie.Movie) {
	b, err := json.Marshal(mv)
	if err != nil {
		return
	}
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, c.versionKey(id)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != before {
			return redis.TxFailedErr
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(id), b, c.ttl)
			return nil
		})
		return err
	}, c.versionKey(id))
	switch {
	case err == nil:
	case errors.Is(err, redis.TxFailedErr):
		logger.Debugf("movie cache fill %s skipped: concurrent write", id)
	default:
		logger.Warnf("movie cache set %s: %v", id, err)
	}
}

func (c *CachedRepo) Update(ctx context.Context, id string, p movie.Patch) (*movie.Movie, error) {
	mv, err := c.Repository.Update(ctx, id, p)
	c.evict(ctx, id)
	return mv, err
}

func (c *CachedRepo) Delete(ctx context.Context, id string) error {
	err := c.Repository.Delete(ctx, id)
	c.evict(ctx, id)
	return err
}

// evict bumps the version of id, failing in-flight fills, then drops the entry.
// The version outlives cached entries so a slow fill still sees the bump.
func (c *CachedRepo) evict(ctx context.Context, id string) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.versionKey(id))
		pipe.Expire(ctx, c.versionKey(id), c.versionTTL())
		pipe.Del(ctx, c.key(id))
		return nil
	})
	if err != nil {
		logger.Warnf("movie cache evict %s: %v", id, err)
	}
}

func (c *CachedRepo) versionTTL() time.Duration {
	if d := 10 * c.ttl; d > time.Hour {
		return d
	}
	return time.Hour
}
