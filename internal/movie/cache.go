// Copyright (c) 2026 Cinelog. All rights reserved.

package movie

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/cinelog/cinelog/internal/platform/constants"
)

// Cache is the Redis read cache in front of the movie catalogue.
//
// # Failure Policy
//
// The cache is an optimization, never a source of truth: every failure is
// logged and reported as a miss, so a degraded Redis only costs latency.
type Cache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewCache creates a movie catalogue [Cache] backed by the given client.
func NewCache(client *redis.Client, logger *slog.Logger) *Cache {
	return &Cache{client: client, logger: logger}
}

// GetList returns the cached catalogue listing, or ok=false on a miss.
func (cache *Cache) GetList(ctx context.Context) ([]*Summary, bool) {
	payload, err := cache.client.Get(ctx, constants.RedisPrefixMovieList).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cache.logger.Warn("movie_cache_get_failed", slog.String("key", constants.RedisPrefixMovieList), slog.Any("error", err))
		}
		return nil, false
	}

	var summaries []*Summary
	if err := json.Unmarshal(payload, &summaries); err != nil {
		cache.logger.Warn("movie_cache_decode_failed", slog.String("key", constants.RedisPrefixMovieList), slog.Any("error", err))
		return nil, false
	}

	return summaries, true
}

// SetList stores the catalogue listing with a short TTL.
func (cache *Cache) SetList(ctx context.Context, summaries []*Summary) {
	payload, err := json.Marshal(summaries)
	if err != nil {
		cache.logger.Warn("movie_cache_encode_failed", slog.String("key", constants.RedisPrefixMovieList), slog.Any("error", err))
		return
	}

	if err := cache.client.Set(ctx, constants.RedisPrefixMovieList, payload, constants.CacheTTLMovieList).Err(); err != nil {
		cache.logger.Warn("movie_cache_set_failed", slog.String("key", constants.RedisPrefixMovieList), slog.Any("error", err))
	}
}

// GetDetail returns the cached detail view for a movie, or ok=false on a miss.
func (cache *Cache) GetDetail(ctx context.Context, movieID string) (*Detail, bool) {
	key := constants.RedisPrefixMovieDetail + movieID

	payload, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cache.logger.Warn("movie_cache_get_failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}

	detail := &Detail{}
	if err := json.Unmarshal(payload, detail); err != nil {
		cache.logger.Warn("movie_cache_decode_failed", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}

	return detail, true
}

// SetDetail stores the detail view for a movie.
func (cache *Cache) SetDetail(ctx context.Context, detail *Detail) {
	key := constants.RedisPrefixMovieDetail + detail.ID

	payload, err := json.Marshal(detail)
	if err != nil {
		cache.logger.Warn("movie_cache_encode_failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	if err := cache.client.Set(ctx, key, payload, constants.CacheTTLMovieDetail).Err(); err != nil {
		cache.logger.Warn("movie_cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}
}

// Invalidate drops the listing key plus the detail keys of the given movies.
// Every movie or rating write calls this with the touched IDs.
func (cache *Cache) Invalidate(ctx context.Context, movieIDs ...string) {
	keys := make([]string, 0, len(movieIDs)+1)
	keys = append(keys, constants.RedisPrefixMovieList)
	for _, id := range movieIDs {
		keys = append(keys, constants.RedisPrefixMovieDetail+id)
	}

	if err := cache.client.Del(ctx, keys...).Err(); err != nil {
		cache.logger.Warn("movie_cache_invalidate_failed", slog.Any("error", err))
	}
}
