package metrics

import (
	"context"
	"strconv"

	"github.com/harukigames/gamecore/internal/event"
	"github.com/harukigames/gamecore/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
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
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case event.ExperienceGrantedPayloadV1:
		ExperienceGranted.WithLabelValues(strconv.Itoa(payload.JobClassID)).Add(float64(payload.Amount))

	case event.LevelUpPayloadV1:
		LevelUps.WithLabelValues(strconv.Itoa(payload.JobClassID)).Inc()

	case event.NodeUnlockedPayloadV1:
		SkillNodesUnlocked.Inc()

	case event.ItemLocationPayloadV1:
		switch evt.Type {
		case event.ItemEquipped:
			ItemsEquipped.WithLabelValues(payload.Slot).Inc()
		case event.ItemUsed:
			ItemsUsed.Inc()
		case event.ItemMoved, event.ItemUnequipped:
			ItemsMoved.WithLabelValues(payload.From, payload.To).Inc()
		}

	case event.JobSwitchedPayloadV1:
		JobSwitches.Inc()

	default:
		log.Debug(LogMsgUnrecognizedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
