package limiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vidprocc/vidpro/ddd/domain/port"
	"github.com/vidprocc/vidpro/pkg/logger"
)

const redisLimiterTimeout = 3 * time.Second

// RedisSlotLimiter 跨实例共享的槽位限制，基于INCR/DECR。
// Redis不可用时保守拒绝，下一个周期会重试。
type RedisSlotLimiter struct {
	client   *redis.Client
	key      string
	capacity int64
}

// NewRedisSlotLimiter 创建Redis限制器
func NewRedisSlotLimiter(client *redis.Client, key string, capacity int) port.SlotLimiter {
	if capacity < 1 {
		capacity = 1
	}
	return &RedisSlotLimiter{client: client, key: key, capacity: int64(capacity)}
}

func (l *RedisSlotLimiter) Acquire() bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisLimiterTimeout)
	defer cancel()

	n, err := l.client.Incr(ctx, l.key).Result()
	if err != nil {
		logger.Warnf("redis limiter incr failed key=%s error=%v", l.key, err)
		return false
	}
	if n > l.capacity {
		l.decr()
		return false
	}
	return true
}

func (l *RedisSlotLimiter) Release() {
	l.decr()
}

func (l *RedisSlotLimiter) decr() {
	ctx, cancel := context.WithTimeout(context.Background(), redisLimiterTimeout)
	defer cancel()
	if err := l.client.Decr(ctx, l.key).Err(); err != nil {
		logger.Warnf("redis limiter decr failed key=%s error=%v", l.key, err)
	}
}
