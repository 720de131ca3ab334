package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/crowd_alert_system/internal/models"
	"github.com/shenikar/crowd_alert_system/internal/service"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) service.Store {
	return &PostgresStore{db: db}
}

// CreateParticipant создает запись об участнике в бд
func (r *PostgresStore) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	query := `
		INSERT INTO participants (id, name, phone, registered_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.db.Exec(ctx, query,
		participant.ID,
		participant.Name,
		participant.Phone,
		participant.RegisteredAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("participant with phone %s: %w", participant.Phone, service.ErrDuplicatePhone)
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

// GetParticipant возвращает участника по его UUID
func (r *PostgresStore) GetParticipant(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	query := `
		SELECT id, name, phone, registered_at
		FROM participants
		WHERE id = $1;
	`
	participant, err := scanParticipant(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("participant with id %s: %w", id, service.ErrParticipantNotFound)
		}
		return nil, fmt.Errorf("failed to get participant by id: %w", err)
	}
	return participant, nil
}

// FindParticipantByPhone ищет участника по номеру телефона в том виде, в котором он был введен
func (r *PostgresStore) FindParticipantByPhone(ctx context.Context, phone string) (*models.Participant, error) {
	query := `
		SELECT id, name, phone, registered_at
		FROM participants
		WHERE phone = $1
		ORDER BY registered_at
		LIMIT 1;
	`
	participant, err := scanParticipant(r.db.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("participant with phone %s: %w", phone, service.ErrParticipantNotFound)
		}
		return nil, fmt.Errorf("failed to find participant by phone: %w", err)
	}
	return participant, nil
}

// AppendPing добавляет пинг в журнал, журнал только дополняется
func (r *PostgresStore) AppendPing(ctx context.Context, ping *models.LocationPing) error {
	query := `
		INSERT INTO location_pings (participant_id, latitude, longitude, observed_at)
		VALUES ($1, $2, $3, $4) RETURNING id;
	`
	err := r.db.QueryRow(ctx, query,
		ping.ParticipantID,
		ping.Latitude,
		ping.Longitude,
		ping.ObservedAt,
	).Scan(&ping.ID)
	if err != nil {
		return fmt.Errorf("failed to append location ping: %w", err)
	}
	return nil
}

// LatestPingsSince возвращает последний пинг каждого участника, наблюдавшийся не раньше cutoff
func (r *PostgresStore) LatestPingsSince(ctx context.Context, cutoff time.Time) ([]models.ActiveParticipant, error) {
	query := `
		SELECT DISTINCT ON (lp.participant_id)
			lp.participant_id,
			p.name,
			p.phone,
			lp.latitude,
			lp.longitude,
			lp.observed_at
		FROM location_pings lp
		JOIN participants p ON p.id = lp.participant_id
		WHERE lp.observed_at >= $1
		ORDER BY lp.participant_id, lp.observed_at DESC, lp.id DESC;
	`
	rows, err := r.db.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to select latest pings: %w", err)
	}
	defer rows.Close()

	active := make([]models.ActiveParticipant, 0)
	for rows.Next() {
		var p models.ActiveParticipant
		err := rows.Scan(
			&p.ParticipantID,
			&p.Name,
			&p.Phone,
			&p.Latitude,
			&p.Longitude,
			&p.LastSeen,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan latest ping row: %w", err)
		}
		active = append(active, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error latest pings iteration: %w", err)
	}
	return active, nil
}

func scanParticipant(row pgx.Row) (*models.Participant, error) {
	participant := &models.Participant{}
	err := row.Scan(
		&participant.ID,
		&participant.Name,
		&participant.Phone,
		&participant.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	return participant, nil
}
