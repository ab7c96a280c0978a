package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bingo/config"
	"bingo/models"

	"github.com/redis/go-redis/v9"
)

// missionCacheKey holds the serialized active catalog
const missionCacheKey = "missions:catalog"

// missionCacheTTL bounds how stale the served catalog can be
const missionCacheTTL = 5 * time.Minute

var rdb *redis.Client

// InitRedis initializes the Redis client backing the mission catalog
// cache
func InitRedis(cfg *config.Config) error {
	rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// GetRedisClient returns the Redis client instance
func GetRedisClient() *redis.Client {
	return rdb
}

// CachedMissions returns the catalog from cache, or nil on a miss.
// Cache errors are treated as misses so Mongo stays the source of
// truth.
func CachedMissions(ctx context.Context) []models.Mission {
	if rdb == nil {
		return nil
	}

	data, err := rdb.Get(ctx, missionCacheKey).Bytes()
	if err != nil {
		return nil
	}

	var missions []models.Mission
	if err := json.Unmarshal(data, &missions); err != nil {
		return nil
	}
	return missions
}

// CacheMissions stores the catalog with a 5-minute expiry
func CacheMissions(ctx context.Context, missions []models.Mission) {
	if rdb == nil {
		return
	}

	data, err := json.Marshal(missions)
	if err != nil {
		return
	}
	rdb.Set(ctx, missionCacheKey, data, missionCacheTTL)
}
