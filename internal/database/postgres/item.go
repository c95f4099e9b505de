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

type itemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new PostgreSQL item template repository.
func NewItemRepository(db *pgxpool.Pool) repository.Item {
	return &itemRepository{db: db}
}

const itemColumns = `item_id, name, item_type, rarity, COALESCE(description, ''),
	level_requirement, job_requirement, max_stack, buy_price, sell_price,
	sale_type, effects, active, created_at, updated_at`

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	var jobRequirement, effects []byte

	err := row.Scan(&item.ID, &item.Name, &item.ItemType, &item.Rarity, &item.Description,
		&item.LevelRequirement, &jobRequirement, &item.MaxStack, &item.BuyPrice, &item.SellPrice,
		&item.SaleType, &effects, &item.Active, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSONB(jobRequirement, &item.JobRequirement); err != nil {
		return nil, err
	}
	if err := unmarshalJSONB(effects, &item.Effects); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY item_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *itemRepository) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1`

	item, err := scanItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (r *itemRepository) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name = $1`

	item, err := scanItem(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item by name: %w", err)
	}
	return item, nil
}

func (r *itemRepository) InsertItem(ctx context.Context, item *domain.Item) (int, error) {
	jobRequirement, err := marshalJSONB(item.JobRequirement)
	if err != nil {
		return 0, err
	}
	effects, err := domain.EffectsJSON(item.Effects)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO items (name, item_type, rarity, description, level_requirement,
			job_requirement, max_stack, buy_price, sell_price, sale_type, effects, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING item_id
	`

	var id int
	err = r.db.QueryRow(ctx, query, item.Name, item.ItemType, item.Rarity, item.Description,
		item.LevelRequirement, jobRequirement, item.MaxStack, item.BuyPrice, item.SellPrice,
		item.SaleType, effects, item.Active).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}
	return id, nil
}

func (r *itemRepository) UpdateItem(ctx context.Context, id int, item *domain.Item) error {
	jobRequirement, err := marshalJSONB(item.JobRequirement)
	if err != nil {
		return err
	}
	effects, err := domain.EffectsJSON(item.Effects)
	if err != nil {
		return err
	}

	query := `
		UPDATE items
		SET name = $2, item_type = $3, rarity = $4, description = $5, level_requirement = $6,
		    job_requirement = $7, max_stack = $8, buy_price = $9, sell_price = $10,
		    sale_type = $11, effects = $12, active = $13, updated_at = NOW()
		WHERE item_id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, item.Name, item.ItemType, item.Rarity, item.Description,
		item.LevelRequirement, jobRequirement, item.MaxStack, item.BuyPrice, item.SellPrice,
		item.SaleType, effects, item.Active)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
