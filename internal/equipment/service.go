package equipment

import (
	"context"
	"fmt"

	"github.com/harukigames/gamecore/internal/concurrency"
	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/event"
	"github.com/harukigames/gamecore/internal/logger"
	"github.com/harukigames/gamecore/internal/repository"
)

// EquipResult reports the new slot occupant and the item displaced back to
// inventory, if the slot was taken.
type EquipResult struct {
	Equipped  *domain.CharacterItem `json:"equipped"`
	Displaced *domain.CharacterItem `json:"displaced,omitempty"`
}

// Service resolves equipment slots: which slot an item may occupy and the
// atomic swap that puts it there.
type Service interface {
	// Equip moves an inventory item into the slot, displacing any current
	// occupant back to inventory in the same transaction.
	Equip(ctx context.Context, characterItemID string, slot domain.EquipmentSlot) (*EquipResult, error)

	// Unequip moves an equipped item back to inventory.
	Unequip(ctx context.Context, characterItemID string) (*domain.CharacterItem, error)

	// GetEquipment returns everything the character currently has equipped.
	GetEquipment(ctx context.Context, characterID string) ([]domain.OwnedItem, error)
}

type service struct {
	inventoryRepo repository.Inventory
	itemRepo      repository.Item
	characterRepo repository.Character
	jobClassRepo  repository.JobClass
	txBeginner    repository.TxBeginner
	locks         *concurrency.LockManager
	publisher     event.Bus
}

// NewService creates a new equipment service.
func NewService(
	inventoryRepo repository.Inventory,
	itemRepo repository.Item,
	characterRepo repository.Character,
	jobClassRepo repository.JobClass,
	txBeginner repository.TxBeginner,
	locks *concurrency.LockManager,
	publisher event.Bus,
) Service {
	return &service{
		inventoryRepo: inventoryRepo,
		itemRepo:      itemRepo,
		characterRepo: characterRepo,
		jobClassRepo:  jobClassRepo,
		txBeginner:    txBeginner,
		locks:         locks,
		publisher:     publisher,
	}
}

// checkRequirements validates level and job restrictions against the
// character's current job class.
func (s *service) checkRequirements(ctx context.Context, characterID string, item *domain.Item) error {
	current, err := s.characterRepo.GetCurrentJobClass(ctx, characterID)
	if err != nil {
		return err
	}

	if current.Level < item.LevelRequirement {
		return domain.ErrLevelTooLow
	}

	if len(item.JobRequirement) == 0 {
		return nil
	}

	jc, err := s.jobClassRepo.GetJobClassByID(ctx, current.JobClassID)
	if err != nil {
		return fmt.Errorf("failed to get job class %d: %w", current.JobClassID, err)
	}
	for _, name := range item.JobRequirement {
		if name == jc.Name {
			return nil
		}
	}
	return domain.ErrJobNotAllowed
}

// Equip validates the slot, level and job requirements, then atomically
// swaps the item into the slot. A displaced occupant lands in inventory.
func (s *service) Equip(ctx context.Context, characterItemID string, slot domain.EquipmentSlot) (*EquipResult, error) {
	log := logger.FromContext(ctx)

	ci, err := s.inventoryRepo.GetCharacterItem(ctx, characterItemID)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetItemByID(ctx, ci.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item template %d: %w", ci.ItemID, err)
	}

	if !SlotAllowed(item.ItemType, slot) {
		return nil, domain.ErrSlotMismatch
	}
	if err := s.checkRequirements(ctx, ci.CharacterID, item); err != nil {
		return nil, err
	}

	lock := s.locks.GetLock(ci.CharacterID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.txBeginner.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	target, err := tx.GetCharacterItemForUpdate(ctx, characterItemID)
	if err != nil {
		return nil, err
	}
	if target.Location != domain.LocationInventory {
		return nil, domain.ErrNotInInventory
	}
	if target.Locked {
		return nil, domain.ErrItemLocked
	}

	displaced, err := tx.GetEquippedItemInSlot(ctx, target.CharacterID, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot occupant: %w", err)
	}
	if displaced != nil {
		displaced.Location = domain.LocationInventory
		displaced.EquipmentSlot = nil
		if err := tx.UpdateCharacterItem(ctx, displaced); err != nil {
			return nil, fmt.Errorf("failed to displace slot occupant: %w", err)
		}
	}

	target.Location = domain.LocationEquipped
	target.EquipmentSlot = &slot
	target.WarehouseID = nil
	if err := tx.UpdateCharacterItem(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to equip item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit equip: %w", err)
	}

	log.Info("Item equipped",
		"characterId", target.CharacterID,
		"characterItemId", target.ID,
		"slot", string(slot),
		"displaced", displaced != nil)

	if s.publisher != nil {
		equipped := event.NewItemLocationEvent(event.ItemEquipped, target.CharacterID, target.ID, target.ItemID,
			string(domain.LocationInventory), string(domain.LocationEquipped), string(slot), nil)
		if err := s.publisher.Publish(ctx, equipped); err != nil {
			log.Warn("Failed to publish item equipped event", "error", err)
		}
		if displaced != nil {
			unequipped := event.NewItemLocationEvent(event.ItemUnequipped, displaced.CharacterID, displaced.ID, displaced.ItemID,
				string(domain.LocationEquipped), string(domain.LocationInventory), string(slot), nil)
			if err := s.publisher.Publish(ctx, unequipped); err != nil {
				log.Warn("Failed to publish item unequipped event", "error", err)
			}
		}
	}

	return &EquipResult{Equipped: target, Displaced: displaced}, nil
}

// Unequip returns an equipped item to inventory. Always legal for equipped,
// unlocked items: inventory has no capacity limit.
func (s *service) Unequip(ctx context.Context, characterItemID string) (*domain.CharacterItem, error) {
	log := logger.FromContext(ctx)

	ci, err := s.inventoryRepo.GetCharacterItem(ctx, characterItemID)
	if err != nil {
		return nil, err
	}

	lock := s.locks.GetLock(ci.CharacterID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.txBeginner.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	target, err := tx.GetCharacterItemForUpdate(ctx, characterItemID)
	if err != nil {
		return nil, err
	}
	if target.Location != domain.LocationEquipped {
		return nil, domain.ErrNotEquipped
	}
	if target.Locked {
		return nil, domain.ErrItemLocked
	}

	slot := ""
	if target.EquipmentSlot != nil {
		slot = string(*target.EquipmentSlot)
	}

	target.Location = domain.LocationInventory
	target.EquipmentSlot = nil
	if err := tx.UpdateCharacterItem(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to unequip item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit unequip: %w", err)
	}

	log.Info("Item unequipped",
		"characterId", target.CharacterID,
		"characterItemId", target.ID,
		"slot", slot)

	if s.publisher != nil {
		unequipped := event.NewItemLocationEvent(event.ItemUnequipped, target.CharacterID, target.ID, target.ItemID,
			string(domain.LocationEquipped), string(domain.LocationInventory), slot, nil)
		if err := s.publisher.Publish(ctx, unequipped); err != nil {
			log.Warn("Failed to publish item unequipped event", "error", err)
		}
	}

	return target, nil
}

// GetEquipment returns the character's equipped items.
func (s *service) GetEquipment(ctx context.Context, characterID string) ([]domain.OwnedItem, error) {
	if _, err := s.characterRepo.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}
	return s.inventoryRepo.GetOwnedItems(ctx, characterID, domain.LocationEquipped)
}
