package repository

import (
	"context"

	"github.com/harukigames/gamecore/internal/domain"
)

// Inventory defines the interface for owned item persistence outside of
// transitions; transitions themselves run through Tx.
type Inventory interface {
	GetCharacterItem(ctx context.Context, id string) (*domain.CharacterItem, error)
	GetOwnedItems(ctx context.Context, characterID string, location domain.Location) ([]domain.OwnedItem, error)
	InsertCharacterItem(ctx context.Context, item *domain.CharacterItem) error
}

// Warehouse defines the interface for warehouse persistence.
type Warehouse interface {
	GetWarehouse(ctx context.Context, id int) (*domain.Warehouse, error)
	GetWarehousesForCharacter(ctx context.Context, characterID string) ([]domain.Warehouse, error)
	InsertWarehouse(ctx context.Context, w *domain.Warehouse) (int, error)
}
