package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
	"github.com/wadjakorntonsri/fanlink/pkg/ports"
)

const keyPrefix = "page:"

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// RedisCache keeps rendered public pages as JSON with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, siteID string) (*domain.PublicPage, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+siteID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var page domain.PublicPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, false, fmt.Errorf("decode cached page %s: %w", siteID, err)
	}
	return &page, true, nil
}

func (c *RedisCache) Set(ctx context.Context, siteID string, page *domain.PublicPage) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+siteID, raw, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, siteIDs ...string) error {
	keys := make([]string, 0, len(siteIDs))
	for _, id := range siteIDs {
		if id != "" {
			keys = append(keys, keyPrefix+id)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

var _ ports.PageCache = (*RedisCache)(nil)
