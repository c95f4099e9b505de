package eventlog

import (
	"context"
	"time"
)

// Repository persists the operational event log.
type Repository interface {
	// LogEvent stores one event occurrence. characterID is nil for events
	// not tied to a character.
	LogEvent(ctx context.Context, eventType string, characterID *string, payload interface{}) error

	// CleanupOldEvents removes events recorded before the cutoff and
	// returns the number of rows deleted.
	CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error)
}
