package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/harukigames/gamecore/internal/domain"
)

// MockItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) InsertItem(ctx context.Context, item *domain.Item) (int, error) {
	args := m.Called(ctx, item)
	return args.Int(0), args.Error(1)
}

func (m *MockItemRepository) UpdateItem(ctx context.Context, id int, item *domain.Item) error {
	return m.Called(ctx, id, item).Error(0)
}

func potionTemplate() *domain.Item {
	return &domain.Item{
		ID:       200,
		Name:     "Healing Potion",
		ItemType: domain.ItemTypeConsumable,
		Rarity:   domain.RarityCommon,
		MaxStack: 99,
		SaleType: domain.SaleShop,
		Effects:  []domain.ItemEffect{{Type: domain.ItemEffectHeal, Amount: 50}},
		Active:   true,
	}
}

func TestGetItemCachesTemplate(t *testing.T) {
	repo := new(MockItemRepository)
	repo.On("GetItemByID", mock.Anything, 200).Return(potionTemplate(), nil).Once()

	svc := NewService(repo)
	first, err := svc.GetItem(context.Background(), 200)
	require.NoError(t, err)
	second, err := svc.GetItem(context.Background(), 200)
	require.NoError(t, err)

	assert.Same(t, first, second)
	repo.AssertExpectations(t)
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewService(new(MockItemRepository))

	tests := []struct {
		name   string
		mutate func(*domain.Item)
	}{
		{"empty name", func(i *domain.Item) { i.Name = "" }},
		{"unknown item type", func(i *domain.Item) { i.ItemType = "furniture" }},
		{"unknown rarity", func(i *domain.Item) { i.Rarity = "mythic" }},
		{"zero max stack", func(i *domain.Item) { i.MaxStack = 0 }},
		{"negative level requirement", func(i *domain.Item) { i.LevelRequirement = -1 }},
		{"invalid effect", func(i *domain.Item) {
			i.Effects = []domain.ItemEffect{{Type: domain.ItemEffectHeal, Amount: 0}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := potionTemplate()
			tt.mutate(item)
			_, err := svc.CreateItem(context.Background(), item)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateItemRejectsDuplicateName(t *testing.T) {
	repo := new(MockItemRepository)
	repo.On("GetItemByName", mock.Anything, "Healing Potion").Return(potionTemplate(), nil)

	svc := NewService(repo)
	_, err := svc.CreateItem(context.Background(), potionTemplate())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateItemAssignsID(t *testing.T) {
	repo := new(MockItemRepository)
	repo.On("GetItemByName", mock.Anything, "Healing Potion").Return(nil, nil)
	repo.On("InsertItem", mock.Anything, mock.Anything).Return(201, nil)

	svc := NewService(repo)
	item := potionTemplate()
	item.ID = 0
	created, err := svc.CreateItem(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, 201, created.ID)
}

func TestUpdateItemInvalidatesCache(t *testing.T) {
	repo := new(MockItemRepository)
	repo.On("GetItemByID", mock.Anything, 200).Return(potionTemplate(), nil)
	repo.On("UpdateItem", mock.Anything, 200, mock.Anything).Return(nil)

	svc := NewService(repo)

	_, err := svc.GetItem(context.Background(), 200)
	require.NoError(t, err)

	_, err = svc.UpdateItem(context.Background(), 200, potionTemplate())
	require.NoError(t, err)

	_, err = svc.GetItem(context.Background(), 200)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "GetItemByID", 3)
}
