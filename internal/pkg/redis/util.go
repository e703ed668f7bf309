package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rdb 为空（本地/测试环境未启用 Redis）时，读操作一律按缓存未命中处理，写操作为空操作。

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	if Rdb == nil {
		return "", nil
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// GetInt64 获取整型的值，未命中返回错误由调用方回源
func GetInt64(ctx context.Context, key string) (int64, error) {
	value, err := GetValue(ctx, key)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 0, redis.Nil
	}
	return strconv.ParseInt(value, 10, 64)
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, keys ...string) error {
	if Rdb == nil || len(keys) == 0 {
		return nil
	}
	return Rdb.Del(ctx, keys...).Err()
}

// Exists 判断键是否存在
func Exists(ctx context.Context, key string) (bool, error) {
	if Rdb == nil {
		return false, nil
	}
	n, err := Rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SlidingWindowIncr 基于 ZSet 的滑动窗口计数：
// 清掉窗口外的成员后写入本次请求，返回窗口内的请求数（含本次）。
func SlidingWindowIncr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if Rdb == nil {
		return 1, nil
	}
	now := time.Now()
	windowStart := now.Add(-window).UnixNano()

	pipe := Rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return card.Val(), nil
}
