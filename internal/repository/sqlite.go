package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/crowd_alert_system/internal/models"
	"github.com/shenikar/crowd_alert_system/internal/service"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteStore - хранилище для одиночного развертывания без Postgres.
// Время хранится в unix-наносекундах UTC, чтобы сравнение с cutoff было числовым.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) service.Store {
	return &SQLiteStore{db: db}
}

func (r *SQLiteStore) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO participants (id, name, phone, registered_at) VALUES (?, ?, ?, ?)`,
		participant.ID.String(),
		participant.Name,
		participant.Phone,
		participant.RegisteredAt.UTC().UnixNano(),
	)
	if err != nil {
		var liteErr *sqlite.Error
		if errors.As(err, &liteErr) && liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return fmt.Errorf("participant with phone %s: %w", participant.Phone, service.ErrDuplicatePhone)
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (r *SQLiteStore) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, registered_at FROM participants WHERE id = ?`,
		id.String(),
	)
	participant, err := scanSQLiteParticipant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("participant with id %s: %w", id, service.ErrParticipantNotFound)
		}
		return nil, fmt.Errorf("failed to get participant by id: %w", err)
	}
	return participant, nil
}

func (r *SQLiteStore) FindParticipantByPhone(ctx context.Context, phone string) (*models.Participant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, registered_at FROM participants WHERE phone = ? ORDER BY registered_at LIMIT 1`,
		phone,
	)
	participant, err := scanSQLiteParticipant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("participant with phone %s: %w", phone, service.ErrParticipantNotFound)
		}
		return nil, fmt.Errorf("failed to find participant by phone: %w", err)
	}
	return participant, nil
}

func (r *SQLiteStore) AppendPing(ctx context.Context, ping *models.LocationPing) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO location_pings (participant_id, latitude, longitude, observed_at) VALUES (?, ?, ?, ?)`,
		ping.ParticipantID.String(),
		ping.Latitude,
		ping.Longitude,
		ping.ObservedAt.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to append location ping: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read ping id: %w", err)
	}
	ping.ID = id
	return nil
}

// LatestPingsSince - последний пинг каждого участника не раньше cutoff.
// При равном времени побеждает пинг с большим id.
func (r *SQLiteStore) LatestPingsSince(ctx context.Context, cutoff time.Time) ([]models.ActiveParticipant, error) {
	query := `
		SELECT lp.participant_id, p.name, p.phone, lp.latitude, lp.longitude, lp.observed_at
		FROM location_pings lp
		JOIN participants p ON p.id = lp.participant_id
		WHERE lp.observed_at >= ?
			AND lp.id = (
				SELECT l2.id FROM location_pings l2
				WHERE l2.participant_id = lp.participant_id AND l2.observed_at >= ?
				ORDER BY l2.observed_at DESC, l2.id DESC
				LIMIT 1
			)
		ORDER BY lp.participant_id
	`
	cutoffNano := cutoff.UTC().UnixNano()
	rows, err := r.db.QueryContext(ctx, query, cutoffNano, cutoffNano)
	if err != nil {
		return nil, fmt.Errorf("failed to select latest pings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	active := make([]models.ActiveParticipant, 0)
	for rows.Next() {
		var (
			p          models.ActiveParticipant
			rawID      string
			observedAt int64
		)
		if err := rows.Scan(&rawID, &p.Name, &p.Phone, &p.Latitude, &p.Longitude, &observedAt); err != nil {
			return nil, fmt.Errorf("failed to scan latest ping row: %w", err)
		}
		if p.ParticipantID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("failed to parse participant id %q: %w", rawID, err)
		}
		p.LastSeen = time.Unix(0, observedAt).UTC()
		active = append(active, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error latest pings iteration: %w", err)
	}
	return active, nil
}

func scanSQLiteParticipant(row *sql.Row) (*models.Participant, error) {
	var (
		participant  models.Participant
		rawID        string
		registeredAt int64
	)
	if err := row.Scan(&rawID, &participant.Name, &participant.Phone, &registeredAt); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse participant id %q: %w", rawID, err)
	}
	participant.ID = id
	participant.RegisteredAt = time.Unix(0, registeredAt).UTC()
	return &participant, nil
}
