package crowd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/crowd_alert_system/internal/metrics"
	"github.com/shenikar/crowd_alert_system/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=dispatcher.go -destination=mocks/dispatcher_mock.go -package=mocks

// Notifier - внешний канал доставки оповещений (SMS)
type Notifier interface {
	SendAlert(ctx context.Context, phone, message string) error
}

// AlertSuppressor решает, можно ли снова оповещать соседей якоря
type AlertSuppressor interface {
	Allow(ctx context.Context, anchor uuid.UUID) (bool, error)
}

// RecipientPolicy определяет, каким соседям отправляется оповещение
type RecipientPolicy string

const (
	// RecipientsAllNeighbors - все соседи в радиусе
	RecipientsAllNeighbors RecipientPolicy = "all_neighbors"
	// RecipientsUnprefixedOnly - только номера без "+" (поведение исходной системы)
	RecipientsUnprefixedOnly RecipientPolicy = "unprefixed_only"
)

// ParseRecipientPolicy разбирает значение из конфигурации
func ParseRecipientPolicy(value string) (RecipientPolicy, error) {
	switch RecipientPolicy(value) {
	case RecipientsAllNeighbors, RecipientsUnprefixedOnly:
		return RecipientPolicy(value), nil
	}
	return "", fmt.Errorf("unknown recipient policy %q", value)
}

// DispatcherConfig - параметры рассылки оповещений
type DispatcherConfig struct {
	DefaultCountryPrefix string
	Message              string
	Policy               RecipientPolicy
	Concurrency          int
	SendTimeout          time.Duration
}

// Dispatcher рассылает оповещение соседям якоря, если его позиция классифицирована как толпа
type Dispatcher struct {
	notifier   Notifier
	suppressor AlertSuppressor
	cfg        DispatcherConfig
	logger     *logrus.Logger
}

// NewDispatcher создает диспетчер. suppressor может быть nil: тогда каждое срабатывание рассылается.
func NewDispatcher(notifier Notifier, suppressor AlertSuppressor, cfg DispatcherConfig, logger *logrus.Logger) *Dispatcher {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Policy == "" {
		cfg.Policy = RecipientsAllNeighbors
	}
	return &Dispatcher{
		notifier:   notifier,
		suppressor: suppressor,
		cfg:        cfg,
		logger:     logger,
	}
}

// Message возвращает фиксированный текст оповещения
func (d *Dispatcher) Message() string {
	return d.cfg.Message
}

// Dispatch отправляет по одному оповещению каждому получателю.
// Возвращает nil, если позиция не в толпе. Ошибки доставки логируются и не прерывают рассылку.
func (d *Dispatcher) Dispatch(ctx context.Context, anchor models.Anchor, decision models.CrowdDecision) *models.AlertEvent {
	if !decision.IsCrowded {
		return nil
	}

	log := d.logger.WithFields(logrus.Fields{
		"component":      "dispatcher",
		"anchor":         anchor.ParticipantID,
		"neighbor_count": decision.NeighborCount,
	})

	event := &models.AlertEvent{
		ID:        uuid.New(),
		Anchor:    anchor.ParticipantID,
		Message:   d.cfg.Message,
		CreatedAt: time.Now(),
	}

	if d.suppressor != nil {
		allowed, err := d.suppressor.Allow(ctx, anchor.ParticipantID)
		if err != nil {
			log.WithError(err).Warn("Alert cooldown check failed, dispatching anyway")
		} else if !allowed {
			log.Info("Alert suppressed by cooldown")
			event.Suppressed = true
			metrics.AlertsTotal.WithLabelValues("suppressed").Inc()
			return event
		}
	}

	recipients, skipped := d.Recipients(decision.Neighbors)
	event.Recipients = recipients
	event.Skipped = skipped
	metrics.NotificationsTotal.WithLabelValues("skipped").Add(float64(skipped))

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(d.cfg.Concurrency)

	for _, phone := range recipients {
		g.Go(func() error {
			sendCtx := ctx
			if d.cfg.SendTimeout > 0 {
				var cancel context.CancelFunc
				sendCtx, cancel = context.WithTimeout(ctx, d.cfg.SendTimeout)
				defer cancel()
			}

			err := d.notifier.SendAlert(sendCtx, phone, d.cfg.Message)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.WithError(err).WithField("phone", phone).Error("Failed to send crowd alert")
				event.Failed++
				metrics.NotificationsTotal.WithLabelValues("failed").Inc()
				return nil
			}
			event.Sent++
			metrics.NotificationsTotal.WithLabelValues("sent").Inc()
			return nil
		})
	}
	_ = g.Wait()

	metrics.AlertsTotal.WithLabelValues("dispatched").Inc()
	log.WithFields(logrus.Fields{
		"alert_id": event.ID,
		"sent":     event.Sent,
		"failed":   event.Failed,
		"skipped":  event.Skipped,
	}).Info("Crowd alert dispatched")

	return event
}

// Recipients выбирает номера соседей согласно политике и нормализует их.
// Один номер получает не больше одного SMS: "9000000001" и "+919000000001"
// после нормализации совпадают, повтор считается пропущенным.
// Возвращает список номеров и количество пропущенных соседей.
func (d *Dispatcher) Recipients(neighbors []models.ActiveParticipant) ([]string, int) {
	recipients := make([]string, 0, len(neighbors))
	seen := make(map[string]struct{}, len(neighbors))
	skipped := 0
	for _, n := range neighbors {
		if n.Phone == "" {
			skipped++
			continue
		}
		if d.cfg.Policy == RecipientsUnprefixedOnly && HasInternationalPrefix(n.Phone) {
			skipped++
			continue
		}
		phone := NormalizePhone(n.Phone, d.cfg.DefaultCountryPrefix)
		if _, dup := seen[phone]; dup {
			skipped++
			continue
		}
		seen[phone] = struct{}{}
		recipients = append(recipients, phone)
	}
	return recipients, skipped
}
