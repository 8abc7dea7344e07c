package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nktomer45/planboard/internal/config"
)

const (
	sourceKeyPrefix     = "planboard:source"
	sourceScanBatchSize = 100
)

// SourceCache stores upstream dimension and unit-count results as JSON.
// Get reports false on a miss.
type SourceCache interface {
	Get(ctx context.Context, dataset string, params []string, dest any) (bool, error)
	Set(ctx context.Context, dataset string, params []string, value any) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

type redisSourceCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSourceCache struct{}

// NewSourceCache connects to redis when caching is enabled and falls back to
// a cache that never hits otherwise.
func NewSourceCache(ctx context.Context, cfg config.CacheConfig) (SourceCache, error) {
	if !cfg.Enabled {
		return &noopSourceCache{}, nil
	}

	client, ttl, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &redisSourceCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// NewRedisSourceCache wraps an existing client.
func NewRedisSourceCache(client *redis.Client, ttl time.Duration) SourceCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &redisSourceCache{client: client, ttl: ttl}
}

func NewNoopSourceCache() SourceCache {
	return &noopSourceCache{}
}

func (c *redisSourceCache) Get(ctx context.Context, dataset string, params []string, dest any) (bool, error) {
	key := BuildSourceKey(dataset, params)

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode %s cache: %w", dataset, err)
	}

	return true, nil
}

func (c *redisSourceCache) Set(ctx context.Context, dataset string, params []string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s cache: %w", dataset, err)
	}

	if err := c.client.Set(ctx, BuildSourceKey(dataset, params), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSourceCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, sourceKeyPrefix, sourceScanBatchSize)
}

func (c *redisSourceCache) Close() error {
	return c.client.Close()
}

func (n *noopSourceCache) Get(ctx context.Context, dataset string, params []string, dest any) (bool, error) {
	return false, nil
}

func (n *noopSourceCache) Set(ctx context.Context, dataset string, params []string, value any) error {
	return nil
}

func (n *noopSourceCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func (n *noopSourceCache) Close() error {
	return nil
}

// BuildSourceKey derives a stable key from the dataset name and its
// parameters. Parameter order does not matter.
func BuildSourceKey(dataset string, params []string) string {
	dataset = strings.ToLower(strings.TrimSpace(dataset))
	return fmt.Sprintf("%s:%s:%s", sourceKeyPrefix, dataset, paramsHash(params))
}

func paramsHash(params []string) string {
	normalized := make([]string, 0, len(params))
	for _, p := range params {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		normalized = append(normalized, p)
	}

	if len(normalized) == 0 {
		return "default"
	}

	sort.Strings(normalized)
	sum := sha1.Sum([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(sum[:])
}
