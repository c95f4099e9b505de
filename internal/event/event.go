package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"`
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Domain event types
const (
	CharacterLeveledUp Type = "character.leveled_up"
	ExperienceGranted  Type = "experience.granted"
	SkillNodeUnlocked  Type = "skill_node.unlocked"
	ItemEquipped       Type = "item.equipped"
	ItemUnequipped     Type = "item.unequipped"
	ItemMoved          Type = "item.moved"
	ItemUsed           Type = "item.used"
	JobSwitched        Type = "job.switched"
)

// Typed event payloads

// LevelUpPayloadV1 is the typed payload for character level-up events
type LevelUpPayloadV1 struct {
	CharacterID       string `json:"character_id"`
	JobClassID        int    `json:"job_class_id"`
	OldLevel          int    `json:"old_level"`
	NewLevel          int    `json:"new_level"`
	SkillPointsGained int    `json:"skill_points_gained"`
	Timestamp         int64  `json:"timestamp"`
}

// ExperienceGrantedPayloadV1 is the typed payload for experience grant events
type ExperienceGrantedPayloadV1 struct {
	CharacterID string `json:"character_id"`
	JobClassID  int    `json:"job_class_id"`
	Amount      int64  `json:"amount"`
	Reason      string `json:"reason"`
	Actor       string `json:"actor"`
	Timestamp   int64  `json:"timestamp"`
}

// NodeUnlockedPayloadV1 is the typed payload for skill node unlock events
type NodeUnlockedPayloadV1 struct {
	CharacterID     string `json:"character_id"`
	SkillNodeID     int    `json:"skill_node_id"`
	SkillLineID     int    `json:"skill_line_id"`
	PointsSpent     int    `json:"points_spent"`
	PointsRemaining int    `json:"points_remaining"`
	Timestamp       int64  `json:"timestamp"`
}

// ItemLocationPayloadV1 is the typed payload for equip/unequip/move/use events
type ItemLocationPayloadV1 struct {
	CharacterID     string `json:"character_id"`
	CharacterItemID string `json:"character_item_id"`
	ItemID          int    `json:"item_id"`
	From            string `json:"from"`
	To              string `json:"to"`
	Slot            string `json:"slot,omitempty"`
	WarehouseID     *int   `json:"warehouse_id,omitempty"`
	Timestamp       int64  `json:"timestamp"`
}

// JobSwitchedPayloadV1 is the typed payload for current-job switch events
type JobSwitchedPayloadV1 struct {
	CharacterID   string `json:"character_id"`
	OldJobClassID int    `json:"old_job_class_id"`
	NewJobClassID int    `json:"new_job_class_id"`
	Timestamp     int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewLevelUpEvent creates a new character level-up event
func NewLevelUpEvent(characterID string, jobClassID, oldLevel, newLevel, pointsGained int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CharacterLeveledUp,
		Payload: LevelUpPayloadV1{
			CharacterID:       characterID,
			JobClassID:        jobClassID,
			OldLevel:          oldLevel,
			NewLevel:          newLevel,
			SkillPointsGained: pointsGained,
			Timestamp:         time.Now().Unix(),
		},
	}
}

// NewExperienceGrantedEvent creates a new experience grant event
func NewExperienceGrantedEvent(characterID string, jobClassID int, amount int64, reason, actor string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ExperienceGranted,
		Payload: ExperienceGrantedPayloadV1{
			CharacterID: characterID,
			JobClassID:  jobClassID,
			Amount:      amount,
			Reason:      reason,
			Actor:       actor,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewNodeUnlockedEvent creates a new skill node unlock event
func NewNodeUnlockedEvent(characterID string, nodeID, lineID, spent, remaining int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SkillNodeUnlocked,
		Payload: NodeUnlockedPayloadV1{
			CharacterID:     characterID,
			SkillNodeID:     nodeID,
			SkillLineID:     lineID,
			PointsSpent:     spent,
			PointsRemaining: remaining,
			Timestamp:       time.Now().Unix(),
		},
	}
}

// NewItemLocationEvent creates an equip/unequip/move/use event
func NewItemLocationEvent(eventType Type, characterID, characterItemID string, itemID int, from, to, slot string, warehouseID *int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: ItemLocationPayloadV1{
			CharacterID:     characterID,
			CharacterItemID: characterItemID,
			ItemID:          itemID,
			From:            from,
			To:              to,
			Slot:            slot,
			WarehouseID:     warehouseID,
			Timestamp:       time.Now().Unix(),
		},
	}
}

// NewJobSwitchedEvent creates a current-job switch event
func NewJobSwitchedEvent(characterID string, oldJobClassID, newJobClassID int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    JobSwitched,
		Payload: JobSwitchedPayloadV1{
			CharacterID:   characterID,
			OldJobClassID: oldJobClassID,
			NewJobClassID: newJobClassID,
			Timestamp:     time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while handling event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
