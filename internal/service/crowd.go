package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/crowd_alert_system/internal/config"
	"github.com/shenikar/crowd_alert_system/internal/crowd"
	"github.com/shenikar/crowd_alert_system/internal/geo"
	"github.com/shenikar/crowd_alert_system/internal/metrics"
	"github.com/shenikar/crowd_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=crowd.go -destination=mocks/crowd_mock.go -package=mocks

// Store определяет контракт хранилища участников и журнала пингов
type Store interface {
	CreateParticipant(ctx context.Context, participant *models.Participant) error
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	FindParticipantByPhone(ctx context.Context, phone string) (*models.Participant, error)
	AppendPing(ctx context.Context, ping *models.LocationPing) error
	LatestPingsSince(ctx context.Context, cutoff time.Time) ([]models.ActiveParticipant, error)
}

// ParticipantCache - кэш участников (Redis)
type ParticipantCache interface {
	GetParticipantFromCache(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	SetParticipantCache(ctx context.Context, participant *models.Participant) error
}

// CrowdService определяет контракт бизнес-логики мониторинга толпы
type CrowdService interface {
	RegisterParticipant(ctx context.Context, name, phone string) (*models.Participant, bool, error)
	GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	SubmitLocation(ctx context.Context, participantID uuid.UUID, lat, lon float64) (*models.LocationResult, error)
	GetActiveSnapshot(ctx context.Context) (*models.CrowdSnapshot, error)
}

type crowdService struct {
	store      Store
	cache      ParticipantCache
	logger     *logrus.Logger
	cfg        *config.Config
	selector   *crowd.ActiveWindowSelector
	classifier crowd.Classifier
	aggregator *crowd.Aggregator
	dispatcher *crowd.Dispatcher
	now        func() time.Time
}

// NewCrowdService собирает ядро классификации из конфигурации.
// suppressor может быть nil, если подавление повторных оповещений выключено.
func NewCrowdService(store Store, cache ParticipantCache, notifier crowd.Notifier, suppressor crowd.AlertSuppressor, logger *logrus.Logger, cfg *config.Config) CrowdService {
	selector := crowd.NewActiveWindowSelector(store)
	classifier := crowd.NewLocalCountClassifier(crowd.ClassifierConfig{
		RadiusKm:  cfg.CrowdRadiusKm,
		Threshold: cfg.CrowdThreshold,
	})

	return &crowdService{
		store:      store,
		cache:      cache,
		logger:     logger,
		cfg:        cfg,
		selector:   selector,
		classifier: classifier,
		aggregator: crowd.NewAggregator(selector, classifier, crowd.AggregatorConfig{
			Window:    cfg.SnapshotActiveWindow,
			CountSelf: cfg.SnapshotCountSelf,
		}),
		dispatcher: crowd.NewDispatcher(notifier, suppressor, crowd.DispatcherConfig{
			DefaultCountryPrefix: cfg.DefaultCountryPrefix,
			Message:              cfg.AlertMessage,
			Policy:               crowd.RecipientPolicy(cfg.AlertRecipientPolicy),
			Concurrency:          cfg.NotifyConcurrency,
			SendTimeout:          cfg.NotifyTimeout,
		}, logger),
		now: time.Now,
	}
}

// RegisterParticipant регистрирует участника. Повторная регистрация с тем же телефоном
// возвращает существующего участника и created=false.
func (s *crowdService) RegisterParticipant(ctx context.Context, name, phone string) (*models.Participant, bool, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	log := s.logger.WithFields(logrus.Fields{
		"service": "crowd",
		"method":  "RegisterParticipant",
	})

	if name == "" {
		return nil, false, &ValidationError{Field: "name", Reason: "required"}
	}
	if phone == "" {
		return nil, false, &ValidationError{Field: "phone", Reason: "required"}
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	existing, err := s.store.FindParticipantByPhone(ctx, phone)
	if err == nil {
		log.WithField("participant_id", existing.ID).Info("Participant already registered")
		return existing, false, nil
	}
	if !errors.Is(err, ErrParticipantNotFound) {
		log.WithError(err).Error("Failed to look up participant by phone")
		return nil, false, fmt.Errorf("service: could not look up participant: %w: %w", ErrStoreUnavailable, err)
	}

	participant := &models.Participant{
		ID:           uuid.New(),
		Name:         name,
		Phone:        phone,
		RegisteredAt: s.now().UTC(),
	}
	if err := s.store.CreateParticipant(ctx, participant); err != nil {
		if errors.Is(err, ErrDuplicatePhone) {
			// параллельная регистрация успела раньше
			winner, findErr := s.store.FindParticipantByPhone(ctx, phone)
			if findErr != nil {
				log.WithError(findErr).Error("Failed to load concurrently registered participant")
				return nil, false, fmt.Errorf("service: could not look up participant: %w: %w", ErrStoreUnavailable, findErr)
			}
			log.WithField("participant_id", winner.ID).Info("Participant already registered")
			return winner, false, nil
		}
		log.WithError(err).Error("Failed to create participant in repository")
		return nil, false, fmt.Errorf("service: could not create participant: %w: %w", ErrStoreUnavailable, err)
	}

	if err := s.cache.SetParticipantCache(ctx, participant); err != nil {
		log.WithError(err).Warn("Failed to cache participant")
	}

	log.WithField("participant_id", participant.ID).Info("Participant registered successfully")
	return participant, true, nil
}

// GetParticipant получает участника по ID, сначала из кэша
func (s *crowdService) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":        "crowd",
		"method":         "GetParticipant",
		"participant_id": id,
	})

	cached, err := s.cache.GetParticipantFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read participant cache")
	}
	if cached != nil {
		log.Debug("Participant fetched from cache")
		return cached, nil
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	participant, err := s.store.GetParticipant(storeCtx, id)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			return nil, fmt.Errorf("service: could not get participant: %w", err)
		}
		log.WithError(err).Error("Failed to get participant in repository")
		return nil, fmt.Errorf("service: could not get participant: %w: %w", ErrStoreUnavailable, err)
	}

	if err := s.cache.SetParticipantCache(ctx, participant); err != nil {
		log.WithError(err).Warn("Failed to cache participant")
	}
	return participant, nil
}

// SubmitLocation сохраняет пинг, классифицирует позицию по окну оповещений
// и при толпе запускает рассылку
func (s *crowdService) SubmitLocation(ctx context.Context, participantID uuid.UUID, lat, lon float64) (*models.LocationResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":        "crowd",
		"method":         "SubmitLocation",
		"participant_id": participantID,
	})

	if !geo.ValidCoordinates(lat, lon) {
		log.Warn("Rejected out-of-range coordinates")
		return nil, &ValidationError{
			Field:  "coordinates",
			Reason: fmt.Sprintf("latitude %v / longitude %v out of range", lat, lon),
		}
	}
	if participantID == uuid.Nil {
		return nil, &ValidationError{Field: "participant_id", Reason: "required"}
	}

	participant, err := s.GetParticipant(ctx, participantID)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			log.Warn("Location submitted for unknown participant")
			return nil, &ValidationError{Field: "participant_id", Reason: "unknown participant", Err: ErrParticipantNotFound}
		}
		return nil, err
	}

	now := s.now().UTC()
	ping := &models.LocationPing{
		ParticipantID: participant.ID,
		Latitude:      lat,
		Longitude:     lon,
		ObservedAt:    now,
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.store.AppendPing(storeCtx, ping); err != nil {
		log.WithError(err).Error("Failed to append location ping")
		return nil, fmt.Errorf("service: could not append ping: %w: %w", ErrStoreUnavailable, err)
	}
	metrics.PingsTotal.Inc()

	active, err := s.selector.Select(storeCtx, now, s.cfg.AlertActiveWindow)
	if err != nil {
		log.WithError(err).Error("Failed to select active participants")
		return nil, fmt.Errorf("service: could not select active participants: %w: %w", ErrStoreUnavailable, err)
	}

	anchor := models.Anchor{
		ParticipantID: participant.ID,
		Latitude:      lat,
		Longitude:     lon,
	}
	decision := s.classifier.Classify(anchor, active, s.cfg.AlertCountSelf)

	result := &models.LocationResult{
		PingID:        ping.ID,
		Accepted:      true,
		IsCrowded:     decision.IsCrowded,
		NeighborCount: decision.NeighborCount,
	}

	if !decision.IsCrowded {
		metrics.ClassificationsTotal.WithLabelValues("clear").Inc()
		log.WithField("neighbor_count", decision.NeighborCount).Info("Location check completed")
		return result, nil
	}

	metrics.ClassificationsTotal.WithLabelValues("crowded").Inc()
	result.AlertMessage = s.dispatcher.Message()
	result.ExitLink = s.exitLink()

	// результат классификации возвращается независимо от исхода рассылки;
	// обрыв клиентского соединения не должен отменять уже принятое решение об оповещении
	s.dispatcher.Dispatch(context.WithoutCancel(ctx), anchor, decision)

	log.WithField("neighbor_count", decision.NeighborCount).Warn("Crowd detected at participant location")
	return result, nil
}

// GetActiveSnapshot классифицирует всех активных участников по окну мониторинга
func (s *crowdService) GetActiveSnapshot(ctx context.Context) (*models.CrowdSnapshot, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "crowd",
		"method":  "GetActiveSnapshot",
	})

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	snapshot, err := s.aggregator.Snapshot(storeCtx, s.now().UTC())
	if err != nil {
		log.WithError(err).Error("Failed to build crowd snapshot")
		return nil, fmt.Errorf("service: could not build snapshot: %w: %w", ErrStoreUnavailable, err)
	}

	metrics.ActiveParticipants.Set(float64(snapshot.TotalActive))
	metrics.CrowdedParticipants.Set(float64(snapshot.CrowdZones))

	log.WithFields(logrus.Fields{
		"total_active": snapshot.TotalActive,
		"crowd_zones":  snapshot.CrowdZones,
	}).Debug("Crowd snapshot built")
	return snapshot, nil
}

// exitLink строит ссылку на маршрут к выходу, если точка выхода задана
func (s *crowdService) exitLink() string {
	if !s.cfg.HasExit() {
		return ""
	}
	return fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%s,%s",
		strconv.FormatFloat(*s.cfg.ExitLatitude, 'f', -1, 64),
		strconv.FormatFloat(*s.cfg.ExitLongitude, 'f', -1, 64),
	)
}

func (s *crowdService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.StoreTimeout)
}
