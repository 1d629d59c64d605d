package assets

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "asset:"

// CachedFetcher decorates a Fetcher with a short-TTL redis cache keyed by
// resource path. Cache failures degrade to a direct fetch; only fetch
// outcomes that succeeded are cached.
type CachedFetcher struct {
	next   Fetcher
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

type cachedResource struct {
	Body        []byte `json:"body"`
	ContentType string `json:"content_type"`
}

// NewCachedFetcher wraps next with a redis cache. A nil redis client returns
// next unchanged so callers can wire the cache unconditionally.
func NewCachedFetcher(next Fetcher, client *redis.Client, ttl time.Duration, logger *slog.Logger) Fetcher {
	if client == nil {
		return next
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedFetcher{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Fetch returns the cached resource when present, otherwise fetches and
// caches the result.
func (f *CachedFetcher) Fetch(ctx context.Context, path string) (Resource, error) {
	key := cacheKeyPrefix + path

	raw, err := f.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached cachedResource
		if err := json.Unmarshal(raw, &cached); err == nil {
			return Resource{Body: cached.Body, ContentType: cached.ContentType}, nil
		}
		f.logger.Warn("discarding malformed cache entry", "key", key)
	} else if err != redis.Nil {
		f.logger.Warn("asset cache read failed", "key", key, "error", err)
	}

	res, err := f.next.Fetch(ctx, path)
	if err != nil {
		return Resource{}, err
	}

	raw, marshalErr := json.Marshal(cachedResource{Body: res.Body, ContentType: res.ContentType})
	if marshalErr == nil {
		if err := f.client.Set(ctx, key, raw, f.ttl).Err(); err != nil {
			f.logger.Warn("asset cache write failed", "key", key, "error", err)
		}
	}

	return res, nil
}
