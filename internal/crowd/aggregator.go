package crowd

import (
	"context"
	"time"

	"github.com/shenikar/crowd_alert_system/internal/models"
)

// AggregatorConfig - окно активности и правило учета себя для мониторинга
type AggregatorConfig struct {
	Window    time.Duration
	CountSelf bool
}

// Aggregator строит сводку по всем активным участникам, классифицируя каждого как якорь.
// Проход O(n²), рассчитан на десятки одновременно активных участников.
type Aggregator struct {
	selector   *ActiveWindowSelector
	classifier Classifier
	cfg        AggregatorConfig
}

func NewAggregator(selector *ActiveWindowSelector, classifier Classifier, cfg AggregatorConfig) *Aggregator {
	return &Aggregator{
		selector:   selector,
		classifier: classifier,
		cfg:        cfg,
	}
}

// Snapshot выбирает активных участников на момент now и классифицирует каждого из них
func (a *Aggregator) Snapshot(ctx context.Context, now time.Time) (*models.CrowdSnapshot, error) {
	active, err := a.selector.Select(ctx, now, a.cfg.Window)
	if err != nil {
		return nil, err
	}
	return a.Summarize(active, now), nil
}

// Summarize классифицирует уже выбранный снимок
func (a *Aggregator) Summarize(active models.ActiveSnapshot, now time.Time) *models.CrowdSnapshot {
	result := &models.CrowdSnapshot{
		Participants: make([]models.ParticipantStatus, 0, len(active)),
		TotalActive:  len(active),
		GeneratedAt:  now,
	}

	for _, p := range active {
		anchor := models.Anchor{
			ParticipantID: p.ParticipantID,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
		}
		decision := a.classifier.Classify(anchor, active, a.cfg.CountSelf)
		if decision.IsCrowded {
			result.CrowdZones++
		}
		result.Participants = append(result.Participants, models.ParticipantStatus{
			ID:            p.ParticipantID,
			Name:          p.Name,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
			IsCrowded:     decision.IsCrowded,
			NeighborCount: decision.NeighborCount,
		})
	}
	return result
}
