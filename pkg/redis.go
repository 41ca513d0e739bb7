package pkg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/formpilot/formbuilder-service/internal/config"
	"github.com/redis/go-redis/v9"
)

const redisDialTimeout = 5 * time.Second

// NewRedisClient connects to the Redis named by REDIS_URL. Callers that can
// run without a cache should treat any error here as a soft failure.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, errors.New("redis url is not configured")
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.ClientName = "formbuilder-service"

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}
