package repository

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	leaderboardGenKey    = "leaderboard:gen"
	leaderboardKeyPrefix = "leaderboard:snapshot"
)

// LeaderboardCache 以 Redis 缓存排行榜快照。每次写入新结果时递增代数，
// 旧代数的快照自然失效并由 TTL 回收
type LeaderboardCache struct {
	Redis *redis.Client
}

func NewLeaderboardCache(rdb *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{Redis: rdb}
}

// Generation 返回当前代数。调用方在查库前读取一次，并用同一代数读写快照，
// 查库期间产生的新结果会让这份快照写入已经过期的代数
func (c *LeaderboardCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.Redis.Get(ctx, leaderboardGenKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (c *LeaderboardCache) key(gen int64, filterKey string) string {
	sum := sha1.Sum([]byte(filterKey))
	return fmt.Sprintf("%s:%d:%s", leaderboardKeyPrefix, gen, hex.EncodeToString(sum[:]))
}

// Get 读取快照到 dst，未命中时返回 false
func (c *LeaderboardCache) Get(ctx context.Context, gen int64, filterKey string, dst interface{}) (bool, error) {
	raw, err := c.Redis.Get(ctx, c.key(gen, filterKey)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, gen int64, filterKey string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, c.key(gen, filterKey), raw, ttl).Err()
}

// Invalidate 递增代数，使所有现存快照失效
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	return c.Redis.Incr(ctx, leaderboardGenKey).Err()
}
