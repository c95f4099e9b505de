package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/repository"
)

type inventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new PostgreSQL owned-item repository.
func NewInventoryRepository(db *pgxpool.Pool) repository.Inventory {
	return &inventoryRepository{db: db}
}

const characterItemColumns = `character_item_id, character_id, item_id, quantity,
	location, warehouse_id, equipment_slot, durability, max_durability,
	enchantment_level, locked, obtained_at`

func scanCharacterItem(row pgx.Row) (*domain.CharacterItem, error) {
	var item domain.CharacterItem
	err := row.Scan(&item.ID, &item.CharacterID, &item.ItemID, &item.Quantity,
		&item.Location, &item.WarehouseID, &item.EquipmentSlot, &item.Durability,
		&item.MaxDurability, &item.EnchantmentLevel, &item.Locked, &item.ObtainedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) GetCharacterItem(ctx context.Context, id string) (*domain.CharacterItem, error) {
	query := `SELECT ` + characterItemColumns + ` FROM character_items WHERE character_item_id = $1`

	item, err := scanCharacterItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOwnedItemNotFound
		}
		return nil, fmt.Errorf("failed to get character item: %w", err)
	}
	return item, nil
}

func (r *inventoryRepository) GetOwnedItems(ctx context.Context, characterID string, location domain.Location) ([]domain.OwnedItem, error) {
	characterUUID, err := parseCharacterUUID(characterID)
	if err != nil {
		return nil, domain.ErrCharacterNotFound
	}

	query := `
		SELECT ci.character_item_id, ci.character_id, ci.item_id, ci.quantity,
		       ci.location, ci.warehouse_id, ci.equipment_slot, ci.durability,
		       ci.max_durability, ci.enchantment_level, ci.locked, ci.obtained_at,
		       i.name, i.item_type, i.rarity
		FROM character_items ci
		JOIN items i ON i.item_id = ci.item_id
		WHERE ci.character_id = $1
	`
	args := []any{characterUUID}
	if location != "" {
		query += ` AND ci.location = $2`
		args = append(args, location)
	}
	query += ` ORDER BY ci.obtained_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned items: %w", err)
	}
	defer rows.Close()

	var items []domain.OwnedItem
	for rows.Next() {
		var item domain.OwnedItem
		err := rows.Scan(&item.ID, &item.CharacterID, &item.ItemID, &item.Quantity,
			&item.Location, &item.WarehouseID, &item.EquipmentSlot, &item.Durability,
			&item.MaxDurability, &item.EnchantmentLevel, &item.Locked, &item.ObtainedAt,
			&item.ItemName, &item.ItemType, &item.Rarity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan owned item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *inventoryRepository) InsertCharacterItem(ctx context.Context, item *domain.CharacterItem) error {
	characterUUID, err := parseCharacterUUID(item.CharacterID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO character_items (character_item_id, character_id, item_id, quantity,
			location, warehouse_id, equipment_slot, durability, max_durability,
			enchantment_level, locked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING obtained_at
	`

	err = r.db.QueryRow(ctx, query, item.ID, characterUUID, item.ItemID, item.Quantity,
		item.Location, item.WarehouseID, item.EquipmentSlot, item.Durability,
		item.MaxDurability, item.EnchantmentLevel, item.Locked).Scan(&item.ObtainedAt)
	if err != nil {
		return fmt.Errorf("failed to insert character item: %w", err)
	}
	return nil
}

type warehouseRepository struct {
	db *pgxpool.Pool
}

// NewWarehouseRepository creates a new PostgreSQL warehouse repository.
func NewWarehouseRepository(db *pgxpool.Pool) repository.Warehouse {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) GetWarehouse(ctx context.Context, id int) (*domain.Warehouse, error) {
	query := `
		SELECT warehouse_id, character_id, name, max_slots, used_slots
		FROM warehouses
		WHERE warehouse_id = $1
	`

	var w domain.Warehouse
	err := r.db.QueryRow(ctx, query, id).Scan(&w.ID, &w.CharacterID, &w.Name, &w.MaxSlots, &w.UsedSlots)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWarehouseNotFound
		}
		return nil, fmt.Errorf("failed to get warehouse: %w", err)
	}
	return &w, nil
}

func (r *warehouseRepository) GetWarehousesForCharacter(ctx context.Context, characterID string) ([]domain.Warehouse, error) {
	characterUUID, err := parseCharacterUUID(characterID)
	if err != nil {
		return nil, domain.ErrCharacterNotFound
	}

	query := `
		SELECT warehouse_id, character_id, name, max_slots, used_slots
		FROM warehouses
		WHERE character_id = $1
		ORDER BY warehouse_id
	`

	rows, err := r.db.Query(ctx, query, characterUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []domain.Warehouse
	for rows.Next() {
		var w domain.Warehouse
		if err := rows.Scan(&w.ID, &w.CharacterID, &w.Name, &w.MaxSlots, &w.UsedSlots); err != nil {
			return nil, fmt.Errorf("failed to scan warehouse: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

func (r *warehouseRepository) InsertWarehouse(ctx context.Context, w *domain.Warehouse) (int, error) {
	characterUUID, err := parseCharacterUUID(w.CharacterID)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO warehouses (character_id, name, max_slots, used_slots)
		VALUES ($1, $2, $3, 0)
		RETURNING warehouse_id
	`

	var id int
	if err := r.db.QueryRow(ctx, query, characterUUID, w.Name, w.MaxSlots).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert warehouse: %w", err)
	}
	return id, nil
}
