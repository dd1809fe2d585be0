package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache caches rendered season briefs and API responses.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// HealthCheck pings Redis to verify connection.
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// BriefKey names the cache slot for one season's rendered brief.
func BriefKey(seasonYear, leagueID int) string {
	return fmt.Sprintf("pennant:brief:%d:%d", seasonYear, leagueID)
}

// SetBrief caches a rendered markdown brief.
func (rc *RedisCache) SetBrief(ctx context.Context, seasonYear, leagueID int, brief string, ttl time.Duration) error {
	return rc.client.Set(ctx, BriefKey(seasonYear, leagueID), brief, ttl).Err()
}

// GetBrief returns a cached brief; redis.Nil when absent.
func (rc *RedisCache) GetBrief(ctx context.Context, seasonYear, leagueID int) (string, error) {
	return rc.client.Get(ctx, BriefKey(seasonYear, leagueID)).Result()
}

// InvalidateBrief drops the cached brief after a season is recomputed.
func (rc *RedisCache) InvalidateBrief(ctx context.Context, seasonYear, leagueID int) error {
	return rc.client.Del(ctx, BriefKey(seasonYear, leagueID)).Err()
}
