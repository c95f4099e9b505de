package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/logger"
	"github.com/harukigames/gamecore/internal/repository"
)

const (
	itemCacheSize = 512
	itemCacheTTL  = 5 * time.Minute
)

// Service manages the item template catalog. Templates are hot reads: every
// equip and use check resolves one, so single-item lookups go through an LRU.
type Service interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id int) (*domain.Item, error)
	CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error)
	UpdateItem(ctx context.Context, id int, item *domain.Item) (*domain.Item, error)
}

type service struct {
	itemRepo repository.Item
	items    *expirable.LRU[int, *domain.Item]
}

// NewService creates a new item catalog service.
func NewService(itemRepo repository.Item) Service {
	return &service{
		itemRepo: itemRepo,
		items:    expirable.NewLRU[int, *domain.Item](itemCacheSize, nil, itemCacheTTL),
	}
}

func validate(item *domain.Item) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item name required", domain.ErrInvalidInput)
	}
	if !domain.ValidItemTypes[item.ItemType] {
		return fmt.Errorf("%w: unknown item type %q", domain.ErrInvalidInput, item.ItemType)
	}
	if !domain.ValidRarities[item.Rarity] {
		return fmt.Errorf("%w: unknown rarity %q", domain.ErrInvalidInput, item.Rarity)
	}
	if item.MaxStack < 1 {
		return fmt.Errorf("%w: max_stack must be at least 1", domain.ErrInvalidInput)
	}
	if item.LevelRequirement < 0 {
		return fmt.Errorf("%w: level_requirement must not be negative", domain.ErrInvalidInput)
	}
	for _, effect := range item.Effects {
		if err := effect.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ListItems returns the full catalog.
func (s *service) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.itemRepo.GetAllItems(ctx)
}

// GetItem returns one template, served from the cache when warm.
func (s *service) GetItem(ctx context.Context, id int) (*domain.Item, error) {
	if cached, ok := s.items.Get(id); ok {
		return cached, nil
	}

	item, err := s.itemRepo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.items.Add(id, item)
	return item, nil
}

// CreateItem validates and persists a new template.
func (s *service) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if err := validate(item); err != nil {
		return nil, err
	}

	if existing, err := s.itemRepo.GetItemByName(ctx, item.Name); err == nil && existing != nil {
		return nil, domain.ErrConflict
	}

	id, err := s.itemRepo.InsertItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	item.ID = id

	logger.FromContext(ctx).Info("Item created", "itemId", id, "name", item.Name)
	return item, nil
}

// UpdateItem validates and persists template changes, invalidating the cache
// entry.
func (s *service) UpdateItem(ctx context.Context, id int, item *domain.Item) (*domain.Item, error) {
	if err := validate(item); err != nil {
		return nil, err
	}
	if _, err := s.itemRepo.GetItemByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.itemRepo.UpdateItem(ctx, id, item); err != nil {
		return nil, fmt.Errorf("failed to update item %d: %w", id, err)
	}
	s.items.Remove(id)
	item.ID = id

	logger.FromContext(ctx).Info("Item updated", "itemId", id, "name", item.Name)
	return item, nil
}
