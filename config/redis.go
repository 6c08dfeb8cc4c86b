package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

var RedisClient *redis.Client

const catalogCacheTTL = 5 * time.Minute
const catalogCacheKeyPrefix = "catalog:listing:"

func InitRedis() {
	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not configured, catalog cache will be disabled")
		return
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Warning: failed to parse REDIS_URL: %v - catalog cache disabled", err)
		return
	}

	RedisClient = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: failed to connect to Redis: %v - catalog cache disabled", err)
		RedisClient = nil
		return
	}

	log.Println("Connected to Redis")
}

func catalogCacheKey(country, language string) string {
	return fmt.Sprintf("%s%s:%s", catalogCacheKeyPrefix, country, language)
}

// SetCatalogCache stores a serialized content listing for the given locale.
// Best-effort: a nil client or a Redis failure never blocks the caller.
func SetCatalogCache(country, language, payload string) error {
	if RedisClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return RedisClient.Set(ctx, catalogCacheKey(country, language), payload, catalogCacheTTL).Err()
}

// GetCatalogCache retrieves a cached content listing for the given locale.
// Returns "" on miss or when Redis is unavailable.
func GetCatalogCache(country, language string) string {
	if RedisClient == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	val, err := RedisClient.Get(ctx, catalogCacheKey(country, language)).Result()
	if err != nil {
		return ""
	}
	return val
}

// InvalidateCatalogCache drops the cached listing for the given locale.
// Called after every content write so stale listings are never served.
func InvalidateCatalogCache(country, language string) {
	if RedisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := RedisClient.Del(ctx, catalogCacheKey(country, language)).Err(); err != nil {
		log.Printf("Warning: failed to invalidate catalog cache for %s/%s: %v", country, language, err)
	}
}
