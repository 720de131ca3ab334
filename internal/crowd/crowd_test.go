package crowd

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/crowd_alert_system/internal/geo"
	"github.com/shenikar/crowd_alert_system/internal/models"
	"github.com/sirupsen/logrus"
)

var testNow = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

// quietLogger - логгер без вывода для тестов
func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return logger
}

func participantAt(name, phone string, lat, lon float64, lastSeen time.Time) models.ActiveParticipant {
	return models.ActiveParticipant{
		ParticipantID: uuid.New(),
		Name:          name,
		Phone:         phone,
		Latitude:      lat,
		Longitude:     lon,
		LastSeen:      lastSeen,
	}
}

// stadiumTrio - три участника в пределах ~15 м друг от друга
func stadiumTrio() models.ActiveSnapshot {
	return models.ActiveSnapshot{
		participantAt("Asha", "9000000001", 12.9716, 77.5946, testNow.Add(-10*time.Second)),
		participantAt("Ravi", "9000000002", 12.9717, 77.5946, testNow.Add(-20*time.Second)),
		participantAt("Meera", "+919000000003", 12.9716, 77.5947, testNow.Add(-30*time.Second)),
	}
}

func anchorOf(p models.ActiveParticipant) models.Anchor {
	return models.Anchor{ParticipantID: p.ParticipantID, Latitude: p.Latitude, Longitude: p.Longitude}
}

func distanceBetween(a, b models.ActiveParticipant) float64 {
	return geo.DistanceKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}
