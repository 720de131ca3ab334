package v1

import (
	"time"

	"github.com/google/uuid"
)

// RegisterParticipantRequest DTO для регистрации участника
// @Description DTO для регистрации участника
type RegisterParticipantRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Phone string `json:"phone" validate:"required,min=7,max=20"`
}

// ParticipantResponse DTO для ответа с информацией об участнике
// @Description DTO для ответа с информацией об участнике
type ParticipantResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	RegisteredAt time.Time `json:"registered_at"`
}

// SubmitLocationRequest DTO для отправки координат.
// Координаты - указатели, чтобы нулевая широта или долгота проходила проверку required.
// @Description DTO для отправки координат
type SubmitLocationRequest struct {
	ParticipantID string   `json:"participant_id" validate:"required,uuid"`
	Latitude      *float64 `json:"latitude" validate:"required,latitude"`
	Longitude     *float64 `json:"longitude" validate:"required,longitude"`
}

// LocationResponse DTO для ответа на отправку координат
// @Description DTO для ответа на отправку координат
type LocationResponse struct {
	PingID        int64  `json:"ping_id"`
	Accepted      bool   `json:"accepted"`
	CrowdAlert    bool   `json:"crowd_alert"`
	NeighborCount int    `json:"neighbor_count"`
	Message       string `json:"message,omitempty"`
	ExitLink      string `json:"exit_link,omitempty"`
}

// ParticipantStatusResponse DTO состояния активного участника
// @Description DTO состояния активного участника
type ParticipantStatusResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	IsCrowded     bool      `json:"is_crowded"`
	NeighborCount int       `json:"neighbor_count"`
}

// SnapshotResponse DTO для мониторинга толпы
// @Description DTO для мониторинга толпы
type SnapshotResponse struct {
	Participants []ParticipantStatusResponse `json:"participants"`
	TotalActive  int                         `json:"total_active"`
	CrowdZones   int                         `json:"crowd_zones"`
	GeneratedAt  time.Time                   `json:"generated_at"`
}
