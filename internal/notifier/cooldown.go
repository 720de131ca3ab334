package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCooldown пропускает не более одного оповещения на участника за период ttl
type RedisCooldown struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisCooldown(client *redis.Client, ttl time.Duration) *RedisCooldown {
	return &RedisCooldown{
		redisClient: client,
		ttl:         ttl,
	}
}

// Allow возвращает true, если для участника в текущем периоде оповещений еще не было
func (c *RedisCooldown) Allow(ctx context.Context, anchor uuid.UUID) (bool, error) {
	key := fmt.Sprintf("alert_cooldown:%s", anchor.String())
	ok, err := c.redisClient.SetNX(ctx, key, time.Now().UTC().Unix(), c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check alert cooldown: %w", err)
	}
	return ok, nil
}
