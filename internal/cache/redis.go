package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/flightinsights/internal/models"
)

const DefaultKeyPrefix = "flightinsights:"

type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisConfig.TTL of 0 keeps entries until the next Clear.
type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	TTL       time.Duration
	KeyPrefix string
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:      "localhost",
		Port:      "6379",
		Password:  "",
		DB:        0,
		TTL:       0,
		KeyPrefix: DefaultKeyPrefix,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache.NewRedisCache: ping %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	return newRedisCache(client, cfg), nil
}

func newRedisCache(client *redis.Client, cfg RedisConfig) *RedisCache {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisCache{client: client, prefix: prefix, ttl: cfg.TTL}
}

func (c *RedisCache) GetSearchIDs(ctx context.Context) ([]string, bool) {
	var ids []string
	if !c.get(ctx, c.idsKey(), &ids) {
		return nil, false
	}
	return ids, true
}

func (c *RedisCache) SetSearchIDs(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return c.set(ctx, c.idsKey(), ids)
}

func (c *RedisCache) GetRecords(ctx context.Context, searchID string) ([]models.SearchRecord, bool) {
	var records []models.SearchRecord
	if !c.get(ctx, c.recordsKey(searchID), &records) {
		return nil, false
	}
	return records, true
}

func (c *RedisCache) SetRecords(ctx context.Context, searchID string, records []models.SearchRecord) error {
	if records == nil {
		records = []models.SearchRecord{}
	}
	return c.set(ctx, c.recordsKey(searchID), records)
}

// Clear deletes every key under the cache prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache.RedisCache.Clear: scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache.RedisCache.Clear: del: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) get(ctx context.Context, key string, v any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (c *RedisCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisCache) idsKey() string {
	return c.prefix + "search_ids"
}

func (c *RedisCache) recordsKey(searchID string) string {
	hash := sha256.Sum256([]byte(searchID))
	return c.prefix + "records:" + hex.EncodeToString(hash[:])
}
