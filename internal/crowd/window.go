package crowd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/crowd_alert_system/internal/models"
)

//go:generate mockgen -source=window.go -destination=mocks/window_mock.go -package=mocks

// PingReader - контракт хранилища для чтения последних позиций участников
type PingReader interface {
	// LatestPingsSince возвращает последнюю позицию каждого участника, если она не старше cutoff
	LatestPingsSince(ctx context.Context, cutoff time.Time) ([]models.ActiveParticipant, error)
}

// ActiveWindowSelector выбирает активных участников в скользящем окне.
// Результат не кэшируется: активность зависит только от времени запроса.
type ActiveWindowSelector struct {
	reader PingReader
}

func NewActiveWindowSelector(reader PingReader) *ActiveWindowSelector {
	return &ActiveWindowSelector{reader: reader}
}

// Select возвращает снимок участников, чей последний пинг попадает в [now-window, now]
func (s *ActiveWindowSelector) Select(ctx context.Context, now time.Time, window time.Duration) (models.ActiveSnapshot, error) {
	cutoff := now.Add(-window)

	rows, err := s.reader.LatestPingsSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest pings since %s: %w", cutoff.Format(time.RFC3339), err)
	}

	return latestWithin(rows, cutoff, now), nil
}

// latestWithin оставляет одну запись на участника с максимальным LastSeen
// и отбрасывает участников, чей последний пинг вне окна
func latestWithin(rows []models.ActiveParticipant, cutoff, now time.Time) models.ActiveSnapshot {
	latest := make(map[uuid.UUID]models.ActiveParticipant, len(rows))
	for _, row := range rows {
		if current, ok := latest[row.ParticipantID]; ok && !row.LastSeen.After(current.LastSeen) {
			continue
		}
		latest[row.ParticipantID] = row
	}

	snapshot := make(models.ActiveSnapshot, 0, len(latest))
	for _, row := range latest {
		if row.LastSeen.Before(cutoff) || row.LastSeen.After(now) {
			continue
		}
		snapshot = append(snapshot, row)
	}

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].ParticipantID.String() < snapshot[j].ParticipantID.String()
	})
	return snapshot
}
