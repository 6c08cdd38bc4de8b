package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists session activity events.
type Repository interface {
	Record(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, sessionID string, limit int) ([]Event, error)
}

// PostgresRepository stores activity events in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Record inserts one activity event.
func (r *PostgresRepository) Record(ctx context.Context, event Event) error {
	eventID, err := uuid.Parse(event.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO session_events (id, session_id, kind, detail, created_at)
        VALUES ($1, $2, $3, $4, $5)`, eventID, event.SessionID, event.Kind, event.Detail, event.CreatedAt.UTC())
	return err
}

// ListRecent returns the newest events for a session, newest first.
func (r *PostgresRepository) ListRecent(ctx context.Context, sessionID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `SELECT id, session_id, kind, detail, created_at
        FROM session_events WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			id        uuid.UUID
			event     Event
			createdAt time.Time
		)
		if err := rows.Scan(&id, &event.SessionID, &event.Kind, &event.Detail, &createdAt); err != nil {
			return nil, err
		}
		event.ID = id.String()
		event.CreatedAt = createdAt.UTC()
		events = append(events, event)
	}
	return events, rows.Err()
}
