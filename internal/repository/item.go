package repository

import (
	"context"

	"github.com/harukigames/gamecore/internal/domain"
)

// Item defines the interface for item template persistence.
type Item interface {
	GetAllItems(ctx context.Context) ([]domain.Item, error)
	GetItemByID(ctx context.Context, id int) (*domain.Item, error)
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
	InsertItem(ctx context.Context, item *domain.Item) (int, error)
	UpdateItem(ctx context.Context, id int, item *domain.Item) error
}
