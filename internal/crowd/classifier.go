package crowd

import (
	"github.com/shenikar/crowd_alert_system/internal/geo"
	"github.com/shenikar/crowd_alert_system/internal/models"
)

// Classifier решает, находится ли позиция в толпе.
// Реализация может быть заменена (например, кластеризацией через union-find)
// без изменения агрегатора и диспетчера.
type Classifier interface {
	Classify(anchor models.Anchor, snapshot models.ActiveSnapshot, countSelf bool) models.CrowdDecision
}

// ClassifierConfig - параметры плотности толпы
type ClassifierConfig struct {
	RadiusKm  float64
	Threshold int
}

// LocalCountClassifier считает соседей в радиусе вокруг одной точки.
// Это локальный подсчет, а не транзитивный кластер: A может быть в толпе,
// а находящийся рядом B - нет, если у него другой набор соседей.
type LocalCountClassifier struct {
	cfg ClassifierConfig
}

func NewLocalCountClassifier(cfg ClassifierConfig) *LocalCountClassifier {
	return &LocalCountClassifier{cfg: cfg}
}

// Classify считает записи снимка на расстоянии <= RadiusKm от якоря.
// При countSelf=false запись самого якоря не учитывается.
func (c *LocalCountClassifier) Classify(anchor models.Anchor, snapshot models.ActiveSnapshot, countSelf bool) models.CrowdDecision {
	neighbors := make([]models.ActiveParticipant, 0)
	for _, entry := range snapshot {
		if !countSelf && entry.ParticipantID == anchor.ParticipantID {
			continue
		}
		if geo.DistanceKm(anchor.Latitude, anchor.Longitude, entry.Latitude, entry.Longitude) <= c.cfg.RadiusKm {
			neighbors = append(neighbors, entry)
		}
	}

	return models.CrowdDecision{
		NeighborCount: len(neighbors),
		IsCrowded:     len(neighbors) >= c.cfg.Threshold,
		Neighbors:     neighbors,
	}
}
