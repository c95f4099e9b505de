package eventlog

import (
	"context"
	"time"

	"github.com/harukigames/gamecore/internal/event"
	"github.com/harukigames/gamecore/internal/logger"
)

// Service persists domain events for auditing and statistics screens.
type Service interface {
	// Subscribe registers the event logger on the bus for all game events.
	Subscribe(bus event.Bus)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all domain event types
func (s *service) Subscribe(bus event.Bus) {
	eventTypes := []event.Type{
		event.CharacterLeveledUp,
		event.ExperienceGranted,
		event.SkillNodeUnlocked,
		event.ItemEquipped,
		event.ItemUnequipped,
		event.ItemMoved,
		event.ItemUsed,
		event.JobSwitched,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
}

// handleEvent writes one event to the database
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	characterID := extractCharacterID(evt.Payload)

	if err := s.repo.LogEvent(ctx, string(evt.Type), characterID, evt.Payload); err != nil {
		log.Error("Failed to log event to database", "error", err, "type", evt.Type)
		return err
	}

	log.Debug("Event logged to database", "type", evt.Type)
	return nil
}

// extractCharacterID pulls the character ID out of the known typed payloads.
func extractCharacterID(payload interface{}) *string {
	var id string
	switch p := payload.(type) {
	case event.LevelUpPayloadV1:
		id = p.CharacterID
	case event.ExperienceGrantedPayloadV1:
		id = p.CharacterID
	case event.NodeUnlockedPayloadV1:
		id = p.CharacterID
	case event.ItemLocationPayloadV1:
		id = p.CharacterID
	case event.JobSwitchedPayloadV1:
		id = p.CharacterID
	default:
		return nil
	}
	return &id
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return s.repo.CleanupOldEvents(ctx, cutoff)
}
