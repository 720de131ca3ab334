package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant - зарегистрированный участник мероприятия
type Participant struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	RegisteredAt time.Time `json:"registered_at"`
}
