package cache

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"fluxo/internal/pkg/consts"

	"github.com/redis/go-redis/v9"
)

// RedisCache 基于 Redis 的 ViewCache 实现。
// 值存字符串键，标签到键的反向索引存集合。
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: DefaultTTL}
}

func (s *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := s.rdb.Get(ctx, consts.ViewCacheKey+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WarnContext(ctx, "view cache get failed", "key", key, "err", err)
		}
		return nil, false
	}
	return val, true
}

func (s *RedisCache) Set(ctx context.Context, key string, val []byte, tags []string) error {
	fullKey := consts.ViewCacheKey + key

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, fullKey, val, s.ttl)
	for _, tag := range tags {
		tagKey := consts.ViewCacheTagKey + tag
		pipe.SAdd(ctx, tagKey, fullKey)
		// 标签索引比条目多活一个窗口，保证失效时条目还查得到
		pipe.Expire(ctx, tagKey, 2*s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisCache) Invalidate(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		tagKey := consts.ViewCacheTagKey + tag
		keys, err := s.rdb.SMembers(ctx, tagKey).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err = s.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if err = s.rdb.Del(ctx, tagKey).Err(); err != nil {
			return err
		}
	}
	return nil
}
