package signedmsg

import (
	"context"
	"time"

	platformredis "neoguard-console-backend/internal/platform/redis"
)

// RedisReplayGuard rejects reuse of a signed message within the replay
// window via SETNX with a TTL.
type RedisReplayGuard struct {
	client *platformredis.Client
}

func NewRedisReplayGuard(client *platformredis.Client) *RedisReplayGuard {
	return &RedisReplayGuard{client: client}
}

func (g *RedisReplayGuard) Mark(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, key, 1, ttl).Result()
}
