package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harukigames/gamecore/internal/eventlog"
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository.
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &eventLogRepository{db: db}
}

func (r *eventLogRepository) LogEvent(ctx context.Context, eventType string, characterID *string, payload interface{}) error {
	payloadJSON, err := marshalJSONB(payload)
	if err != nil {
		return err
	}

	var characterUUID any
	if characterID != nil {
		u, err := parseCharacterUUID(*characterID)
		if err != nil {
			return err
		}
		characterUUID = u
	}

	query := `INSERT INTO events (event_type, character_id, payload) VALUES ($1, $2, $3)`

	if _, err := r.db.Exec(ctx, query, eventType, characterUUID, payloadJSON); err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}

func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM events WHERE created_at < $1`

	tag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup events: %w", err)
	}
	return tag.RowsAffected(), nil
}
