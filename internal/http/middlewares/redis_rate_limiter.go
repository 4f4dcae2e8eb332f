package middlewares

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter shares counters across API replicas. It fails open: a Redis
// outage must not lock users out of signin.
type RedisLimiter struct {
	client  *redis.Client
	log     *slog.Logger
	prefix  string
	limit   int
	window  time.Duration
	timeout time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, log *slog.Logger) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if log == nil {
		log = slog.Default()
	}

	return &RedisLimiter{
		client:  client,
		log:     log,
		prefix:  "accounthub:ratelimit:",
		limit:   limit,
		window:  window,
		timeout: 250 * time.Millisecond,
	}
}

func (rl *RedisLimiter) Allow(key string) Decision {
	if rl.limit <= 0 {
		return Decision{Allowed: true}
	}

	ctx, cancel := context.WithTimeout(context.Background(), rl.timeout)
	defer cancel()

	redisKey := rl.prefix + key

	counter, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		rl.log.Error("redis rate limiter error", "op", "incr", "err", err)
		return Decision{Allowed: true}
	}

	if counter == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			rl.log.Error("redis rate limiter error", "op", "expire", "err", err)
		}
	}

	if int(counter) <= rl.limit {
		return Decision{Allowed: true}
	}

	ttl, err := rl.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl <= 0 {
		ttl = rl.window
	}

	return Decision{Allowed: false, RetryAfter: ttl}
}
