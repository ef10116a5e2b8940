package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Host     string
	Port     int
	Password string
}

func NewRedisClient(ctx context.Context, cfg *Config) (*redis.Client, error) {
	rc := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rc.Ping(pingCtx).Err(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rc, nil
}
