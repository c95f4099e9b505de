package inventory

import (
	"context"
	"fmt"

	"github.com/harukigames/gamecore/internal/concurrency"
	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/event"
	"github.com/harukigames/gamecore/internal/logger"
	"github.com/harukigames/gamecore/internal/repository"
)

// Service is the item location machine. Items move between inventory,
// equipment slots and warehouses; every transition is validated and applied
// in one transaction. Equipped and warehouse are never adjacent: an item
// always passes through inventory.
type Service interface {
	GetInventory(ctx context.Context, characterID string) ([]domain.OwnedItem, error)

	// ListItems returns the character's owned items, optionally filtered by
	// location. An empty location returns everything.
	ListItems(ctx context.Context, characterID string, location domain.Location) ([]domain.OwnedItem, error)
	GetWarehouses(ctx context.Context, characterID string) ([]domain.Warehouse, error)
	CreateWarehouse(ctx context.Context, characterID, name string, maxSlots int) (*domain.Warehouse, error)

	// MoveToWarehouse moves an inventory item into a warehouse, consuming
	// one slot.
	MoveToWarehouse(ctx context.Context, characterItemID string, warehouseID int) (*domain.CharacterItem, error)

	// MoveToInventory returns a warehoused item to inventory, freeing its
	// slot.
	MoveToInventory(ctx context.Context, characterItemID string) (*domain.CharacterItem, error)

	// UseItem consumes one unit of a consumable in inventory and applies
	// its effects to the character's vitals.
	UseItem(ctx context.Context, characterItemID string) (*domain.UseItemResult, error)
}

type service struct {
	inventoryRepo repository.Inventory
	warehouseRepo repository.Warehouse
	itemRepo      repository.Item
	characterRepo repository.Character
	jobClassRepo  repository.JobClass
	txBeginner    repository.TxBeginner
	locks         *concurrency.LockManager
	publisher     event.Bus
}

// NewService creates a new inventory service.
func NewService(
	inventoryRepo repository.Inventory,
	warehouseRepo repository.Warehouse,
	itemRepo repository.Item,
	characterRepo repository.Character,
	jobClassRepo repository.JobClass,
	txBeginner repository.TxBeginner,
	locks *concurrency.LockManager,
	publisher event.Bus,
) Service {
	return &service{
		inventoryRepo: inventoryRepo,
		warehouseRepo: warehouseRepo,
		itemRepo:      itemRepo,
		characterRepo: characterRepo,
		jobClassRepo:  jobClassRepo,
		txBeginner:    txBeginner,
		locks:         locks,
		publisher:     publisher,
	}
}

// GetInventory returns the character's inventory items.
func (s *service) GetInventory(ctx context.Context, characterID string) ([]domain.OwnedItem, error) {
	if _, err := s.characterRepo.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}
	return s.inventoryRepo.GetOwnedItems(ctx, characterID, domain.LocationInventory)
}

// ListItems returns the character's owned items in the given location, or
// everywhere when location is empty.
func (s *service) ListItems(ctx context.Context, characterID string, location domain.Location) ([]domain.OwnedItem, error) {
	if _, err := s.characterRepo.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}
	return s.inventoryRepo.GetOwnedItems(ctx, characterID, location)
}

// GetWarehouses returns the character's warehouses with slot usage.
func (s *service) GetWarehouses(ctx context.Context, characterID string) ([]domain.Warehouse, error) {
	if _, err := s.characterRepo.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}
	return s.warehouseRepo.GetWarehousesForCharacter(ctx, characterID)
}

// CreateWarehouse creates a new warehouse for a character.
func (s *service) CreateWarehouse(ctx context.Context, characterID, name string, maxSlots int) (*domain.Warehouse, error) {
	if name == "" || maxSlots <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.characterRepo.GetCharacter(ctx, characterID); err != nil {
		return nil, err
	}

	w := &domain.Warehouse{
		CharacterID: characterID,
		Name:        name,
		MaxSlots:    maxSlots,
	}
	id, err := s.warehouseRepo.InsertWarehouse(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("failed to create warehouse: %w", err)
	}
	w.ID = id
	return w, nil
}

// MoveToWarehouse moves an inventory item into a warehouse. The capacity
// check and the used_slots increment happen in the same transaction as the
// location change.
func (s *service) MoveToWarehouse(ctx context.Context, characterItemID string, warehouseID int) (*domain.CharacterItem, error) {
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
	if target.Location != domain.LocationInventory {
		return nil, domain.ErrNotInInventory
	}
	if target.Locked {
		return nil, domain.ErrItemLocked
	}

	w, err := tx.GetWarehouseForUpdate(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if w.CharacterID != target.CharacterID {
		return nil, domain.ErrWarehouseNotFound
	}
	if w.UsedSlots >= w.MaxSlots {
		return nil, domain.ErrWarehouseFull
	}

	if err := tx.AdjustWarehouseUsedSlots(ctx, warehouseID, 1); err != nil {
		return nil, fmt.Errorf("failed to update warehouse slots: %w", err)
	}

	target.Location = domain.LocationWarehouse
	target.WarehouseID = &warehouseID
	if err := tx.UpdateCharacterItem(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to move item to warehouse: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit warehouse move: %w", err)
	}

	log.Info("Item moved to warehouse",
		"characterId", target.CharacterID,
		"characterItemId", target.ID,
		"warehouseId", warehouseID)

	s.publishMove(ctx, target, string(domain.LocationInventory), string(domain.LocationWarehouse), &warehouseID)
	return target, nil
}

// MoveToInventory returns a warehoused item to inventory and frees its slot.
func (s *service) MoveToInventory(ctx context.Context, characterItemID string) (*domain.CharacterItem, error) {
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
	if target.Location != domain.LocationWarehouse || target.WarehouseID == nil {
		return nil, domain.ErrNotInWarehouse
	}
	if target.Locked {
		return nil, domain.ErrItemLocked
	}

	fromWarehouse := *target.WarehouseID
	if err := tx.AdjustWarehouseUsedSlots(ctx, fromWarehouse, -1); err != nil {
		return nil, fmt.Errorf("failed to update warehouse slots: %w", err)
	}

	target.Location = domain.LocationInventory
	target.WarehouseID = nil
	if err := tx.UpdateCharacterItem(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to move item to inventory: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit inventory move: %w", err)
	}

	log.Info("Item moved to inventory",
		"characterId", target.CharacterID,
		"characterItemId", target.ID,
		"warehouseId", fromWarehouse)

	s.publishMove(ctx, target, string(domain.LocationWarehouse), string(domain.LocationInventory), &fromWarehouse)
	return target, nil
}

func (s *service) publishMove(ctx context.Context, ci *domain.CharacterItem, from, to string, warehouseID *int) {
	if s.publisher == nil {
		return
	}
	moved := event.NewItemLocationEvent(event.ItemMoved, ci.CharacterID, ci.ID, ci.ItemID, from, to, "", warehouseID)
	if err := s.publisher.Publish(ctx, moved); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish item moved event", "error", err)
	}
}
