package notifier

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/crowd_alert_system/internal/config"
	"github.com/shenikar/crowd_alert_system/internal/metrics"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const smsWorkerQueueGroup = "sms-workers"

var errGatewayNotConfigured = errors.New("sms gateway url is not configured")

// SMSWorker доставляет задания SMS на HTTP-шлюз
type SMSWorker struct {
	logger     *logrus.Logger
	cfg        *config.Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSMSWorker создает новый SMSWorker
func NewSMSWorker(logger *logrus.Logger, cfg *config.Config) *SMSWorker {
	limit := rate.Inf
	if cfg.SMSRatePerSecond > 0 {
		limit = rate.Limit(cfg.SMSRatePerSecond)
	}
	return &SMSWorker{
		logger: logger,
		cfg:    cfg,
		httpClient: &http.Client{
			Timeout: cfg.SMSGatewayTimeout,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Start запускает горутину, читающую очередь Redis
func (w *SMSWorker) Start(ctx context.Context, redisClient *redis.Client) {
	w.logger.Info("Starting sms worker on Redis queue...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping sms worker.")
				return
			default:
				// 0 означает бесконечное ожидание
				result, err := redisClient.BRPop(ctx, 0, smsQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue
					}
					w.logger.WithError(err).Error("Failed to pop sms job from Redis")
					w.sleep(ctx, w.cfg.SMSGatewayTimeout)
					continue
				}

				// result[0] - ключ, result[1] - значение
				w.process(ctx, []byte(result[1]))
			}
		}
	}()
}

// Subscribe подписывает воркер на subject NATS в группе очереди
func (w *SMSWorker) Subscribe(ctx context.Context, conn *nats.Conn, subject string) (*nats.Subscription, error) {
	w.logger.WithField("subject", subject).Info("Starting sms worker on NATS subject...")
	sub, err := conn.QueueSubscribe(subject, smsWorkerQueueGroup, func(msg *nats.Msg) {
		w.process(ctx, msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe sms worker: %w", err)
	}
	return sub, nil
}

func (w *SMSWorker) process(ctx context.Context, payload []byte) {
	var job SMSJob
	if err := json.Unmarshal(payload, &job); err != nil {
		metrics.SMSDeliveriesTotal.WithLabelValues("invalid").Inc()
		w.logger.WithError(err).Error("Failed to unmarshal sms job")
		return
	}

	err := w.deliver(ctx, job, payload)
	switch {
	case err == nil:
		metrics.SMSDeliveriesTotal.WithLabelValues("delivered").Inc()
	case errors.Is(err, errGatewayNotConfigured):
		metrics.SMSDeliveriesTotal.WithLabelValues("skipped").Inc()
	default:
		metrics.SMSDeliveriesTotal.WithLabelValues("failed").Inc()
	}
}

// deliver отправляет задание на шлюз с экспоненциальной задержкой между попытками
func (w *SMSWorker) deliver(ctx context.Context, job SMSJob, rawPayload []byte) error {
	log := w.logger.WithFields(logrus.Fields{
		"job_id": job.ID,
		"phone":  job.Phone,
	})
	log.Debug("Processing sms job...")

	if w.cfg.SMSGatewayURL == "" {
		log.Warn("SMS gateway URL is not configured. Skipping sms delivery.")
		return errGatewayNotConfigured
	}

	maxRetries := w.cfg.SMSMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	baseDelay := w.cfg.SMSBaseDelay

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if err := w.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		lastErr = w.send(ctx, rawPayload)
		if lastErr == nil {
			log.Info("SMS delivered successfully.")
			return nil
		}

		if i == maxRetries-1 {
			break
		}
		log.WithError(lastErr).Warnf("SMS delivery failed. Retrying in %v. Retries left: %d", baseDelay, maxRetries-1-i)
		if !w.sleep(ctx, baseDelay) {
			return ctx.Err()
		}
		baseDelay *= 2 // Экспоненциальная задержка
	}

	log.WithError(lastErr).Errorf("Failed to deliver sms after %d attempts.", maxRetries)
	return fmt.Errorf("sms delivery failed after %d attempts: %w", maxRetries, lastErr)
}

func (w *SMSWorker) send(ctx context.Context, rawPayload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.SMSGatewayURL, bytes.NewReader(rawPayload))
	if err != nil {
		return fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если SMS_GATEWAY_SECRET задан
	if w.cfg.SMSGatewaySecret != "" {
		req.Header.Set("X-Signature", generateHMACSHA256(rawPayload, w.cfg.SMSGatewaySecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway responded with status %d", resp.StatusCode)
	}
	return nil
}

// sleep ждет d или отмены контекста, false - контекст отменен
func (w *SMSWorker) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
