package models

import (
	"time"

	"github.com/google/uuid"
)

// LocationPing представляет одну запись о местоположении участника. Записи только добавляются.
type LocationPing struct {
	ID            int64     `json:"id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	ObservedAt    time.Time `json:"observed_at"`
}

// ActiveParticipant - последняя известная позиция участника
type ActiveParticipant struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	LastSeen      time.Time `json:"last_seen"`
}

// ActiveSnapshot содержит не более одной записи на участника: его самый свежий пинг внутри окна.
type ActiveSnapshot []ActiveParticipant
