package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/harukigames/gamecore/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't
// ErrTxClosed.
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// parseCharacterUUID parses a character ID string with a consistent error
// message.
func parseCharacterUUID(characterID string) (uuid.UUID, error) {
	u, err := uuid.Parse(characterID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid character id: %w", err)
	}
	return u, nil
}

// marshalJSONB encodes a value for a JSONB column.
func marshalJSONB(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb: %w", err)
	}
	return data, nil
}

// unmarshalJSONB decodes a JSONB column into dst, treating empty as absent.
func unmarshalJSONB(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal jsonb: %w", err)
	}
	return nil
}
