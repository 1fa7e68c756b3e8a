package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// counterScript bumps the window counter and stamps the expiry on first hit.
// It returns the count; the limit comparison stays in Go.
const counterScript = `
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return hits
`

const redisCallTimeout = 200 * time.Millisecond

// RedisLimiter shares fixed windows across API instances so the login,
// register and apply budgets hold when the portal runs more than one replica.
// Errors and timeouts count as allowed.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{client: client, script: redis.NewScript(counterScript)}
}

func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil || key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl < 1 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisCallTimeout)
	defer cancel()
	hits, err := l.script.Run(ctx, l.client, []string{"ratelimit:" + key}, ttl).Int64()
	if err != nil {
		return true
	}
	return hits <= int64(limit)
}
