package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config - параметры подключения к Redis. Один клиент обслуживает кэш участников,
// cooldown оповещений и очередь SMS, поэтому размер пула задается извне.
type Config struct {
	Addr        string
	Password    string
	DB          int
	PoolSize    int
	DialTimeout time.Duration
}

const (
	defaultPoolSize    = 10
	defaultDialTimeout = 5 * time.Second
)

func (c Config) options() *redis.Options {
	poolSize := c.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	dialTimeout := c.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	return &redis.Options{
		Addr:        c.Addr,
		Password:    c.Password,
		DB:          c.DB,
		PoolSize:    poolSize,
		DialTimeout: dialTimeout,
	}
}

// NewRedisClient создает клиент Redis и проверяет соединение
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(cfg.options())

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	return rdb, nil
}
