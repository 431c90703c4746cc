package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	jfredis "github.com/jobfinder/dashboard-go/internal/redis"
)

// slidingWindow keeps one sorted-set member per request, scored by its
// arrival in milliseconds. It returns {allowed, count, oldest}.
var slidingWindow = redis.NewScript(`
local key, now, window, limit, member = KEYS[1], tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3]), ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
    redis.call('ZADD', key, now, member)
    redis.call('PEXPIRE', key, window)
    count = count + 1
    allowed = 1
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local first = now
if #oldest == 2 then
    first = tonumber(oldest[2])
end
return {allowed, count, first}
`)

// RedisRateLimiter shares the request window across edge server replicas.
// Redis failures allow the request.
type RedisRateLimiter struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, now: time.Now}
}

func (rl *RedisRateLimiter) Check(ctx context.Context, key string, limit int) Quota {
	now := rl.now()
	fallback := Quota{Allowed: true, Remaining: limit - 1, ResetAt: now.Add(rateWindow)}

	res, err := slidingWindow.Run(ctx, rl.client,
		[]string{jfredis.RateLimitKey(key)},
		now.UnixMilli(), rateWindow.Milliseconds(), limit, uuid.NewString(),
	).Int64Slice()
	if err != nil || len(res) != 3 {
		log.Warn().Err(err).Str("key", key).Msg("redis rate limit check failed, allowing request")
		return fallback
	}

	return Quota{
		Allowed:   res[0] == 1,
		Remaining: max(limit-int(res[1]), 0),
		ResetAt:   time.UnixMilli(res[2]).Add(rateWindow),
	}
}
