package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	smsQueueKey = "sms_alerts"
)

// SMSJob - задание на отправку одного SMS через шлюз
type SMSJob struct {
	ID        uuid.UUID `json:"id"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func newSMSJob(phone, message string) ([]byte, error) {
	job := SMSJob{
		ID:        uuid.New(),
		Phone:     phone,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sms job: %w", err)
	}
	return payload, nil
}

// RedisSMSPublisher ставит SMS в очередь Redis, доставку выполняет SMSWorker
type RedisSMSPublisher struct {
	redisClient *redis.Client
}

// NewRedisSMSPublisher создает новый RedisSMSPublisher
func NewRedisSMSPublisher(client *redis.Client) *RedisSMSPublisher {
	return &RedisSMSPublisher{
		redisClient: client,
	}
}

// SendAlert публикует задание в очередь Redis
func (p *RedisSMSPublisher) SendAlert(ctx context.Context, phone, message string) error {
	payload, err := newSMSJob(phone, message)
	if err != nil {
		return err
	}

	// LPUSH в левую часть списка, воркер забирает справа через BRPOP
	if err := p.redisClient.LPush(ctx, smsQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish sms job to Redis: %w", err)
	}
	return nil
}
