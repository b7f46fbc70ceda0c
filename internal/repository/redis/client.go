package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// keyPrefix namespaces every key this service writes
const keyPrefix = "c4bot:"

var RedisClient *redis.Client
var redisEnabled bool

// InitRedis connects to Redis. addr is host:port or a redis:// URL. A
// failed ping is not fatal: the service runs without a decision cache.
func InitRedis(addr, password string) error {
	opts := &redis.Options{Addr: addr, Password: password, DB: 0}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		if password != "" {
			parsed.Password = password
		}
		opts = parsed
	}
	RedisClient = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Str("component", "redis").Err(err).Str("addr", opts.Addr).
			Msg("could not connect; decisions will not be cached")
		redisEnabled = false
		return nil
	}

	redisEnabled = true
	log.Info().Str("component", "redis").Str("addr", opts.Addr).Msg("connected")
	return nil
}

// IsRedisEnabled returns whether Redis is available
func IsRedisEnabled() bool {
	return redisEnabled
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// DecisionCache keeps decided columns keyed by position. It satisfies
// decision.Cache.
type DecisionCache struct {
	client *redis.Client
}

func NewDecisionCache(client *redis.Client) *DecisionCache {
	return &DecisionCache{client: client}
}

// Set stores a value with expiration; zero expiration keeps it forever.
func (r *DecisionCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, keyPrefix+key, value, expiration).Err()
}

// Get returns redis.Nil when the key is missing.
func (r *DecisionCache) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, keyPrefix+key).Result()
}

// Del removes cached decisions, e.g. after the evaluator changed.
func (r *DecisionCache) Del(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	return r.client.Del(ctx, prefixed...).Err()
}
