package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/crowd_alert_system/internal/models"
	"github.com/shenikar/crowd_alert_system/internal/service"
)

type ParticipantCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewParticipantCache(redisClient *redis.Client, ttl time.Duration) service.ParticipantCache {
	return &ParticipantCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func participantKey(id uuid.UUID) string {
	return fmt.Sprintf("participant:%s", id.String())
}

// GetParticipantFromCache пытается получить участника из Redis, промах кэша - (nil, nil)
func (c *ParticipantCache) GetParticipantFromCache(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	val, err := c.redisClient.Get(ctx, participantKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant from cache: %w", err)
	}

	participant := &models.Participant{}
	if err := json.Unmarshal(val, participant); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participant from cache: %w", err)
	}
	return participant, nil
}

// SetParticipantCache сохраняет участника в Redis
func (c *ParticipantCache) SetParticipantCache(ctx context.Context, participant *models.Participant) error {
	val, err := json.Marshal(participant)
	if err != nil {
		return fmt.Errorf("failed to marshal participant for cache: %w", err)
	}
	if err := c.redisClient.Set(ctx, participantKey(participant.ID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set participant in cache: %w", err)
	}
	return nil
}
