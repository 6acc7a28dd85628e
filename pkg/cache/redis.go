package cache

import (
	"context"
	"time"

	"travel-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to redis for the catalog read cache. A missing
// REDIS_ADDR is not an error: callers receive nil and skip caching.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	if config.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}
