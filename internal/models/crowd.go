package models

import (
	"time"

	"github.com/google/uuid"
)

// Anchor - позиция, для которой вычисляется плотность толпы
type Anchor struct {
	ParticipantID uuid.UUID
	Latitude      float64
	Longitude     float64
}

// CrowdDecision - результат классификации одной позиции
type CrowdDecision struct {
	NeighborCount int
	IsCrowded     bool
	Neighbors     []ActiveParticipant
}

// AlertEvent создается только при срабатывании оповещения и нигде не хранится
type AlertEvent struct {
	ID         uuid.UUID `json:"id"`
	Anchor     uuid.UUID `json:"anchor"`
	Message    string    `json:"message"`
	Recipients []string  `json:"recipients"`
	Sent       int       `json:"sent"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
	Suppressed bool      `json:"suppressed"`
	CreatedAt  time.Time `json:"created_at"`
}

// LocationResult - ответ на отправку местоположения
type LocationResult struct {
	PingID        int64  `json:"ping_id"`
	Accepted      bool   `json:"accepted"`
	IsCrowded     bool   `json:"is_crowded"`
	NeighborCount int    `json:"neighbor_count"`
	AlertMessage  string `json:"alert_message,omitempty"`
	ExitLink      string `json:"exit_link,omitempty"`
}

// ParticipantStatus - состояние одного активного участника для мониторинга
type ParticipantStatus struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	IsCrowded     bool      `json:"is_crowded"`
	NeighborCount int       `json:"neighbor_count"`
}

// CrowdSnapshot - сводка по всем активным участникам.
// CrowdZones считает участников, помеченных как находящиеся в толпе, а не пространственные кластеры.
type CrowdSnapshot struct {
	Participants []ParticipantStatus `json:"participants"`
	TotalActive  int                 `json:"total_active"`
	CrowdZones   int                 `json:"crowd_zones"`
	GeneratedAt  time.Time           `json:"generated_at"`
}
