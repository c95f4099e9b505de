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

type txBeginner struct {
	db *pgxpool.Pool
}

// NewTxBeginner creates a transaction factory over the connection pool.
func NewTxBeginner(db *pgxpool.Pool) repository.TxBeginner {
	return &txBeginner{db: db}
}

func (b *txBeginner) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := b.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &pgxTx{tx: tx}, nil
}

type pgxTx struct {
	tx pgx.Tx
}

func (t *pgxTx) GetCharacterJobClassForUpdate(ctx context.Context, characterID string, jobClassID int) (*domain.CharacterJobClass, error) {
	characterUUID, err := parseCharacterUUID(characterID)
	if err != nil {
		return nil, domain.ErrCharacterNotFound
	}

	query := `SELECT ` + characterJobClassColumns + `
		FROM character_job_classes
		WHERE character_id = $1 AND job_class_id = $2
		FOR UPDATE`

	cjc, err := scanCharacterJobClass(t.tx.QueryRow(ctx, query, characterUUID, jobClassID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJobClassNotFound
		}
		return nil, fmt.Errorf("failed to lock character job class: %w", err)
	}
	return cjc, nil
}

func (t *pgxTx) UpdateCharacterJobClassProgress(ctx context.Context, cjc *domain.CharacterJobClass) error {
	query := `
		UPDATE character_job_classes
		SET level = $2, experience = $3, skill_points = $4
		WHERE character_job_class_id = $1
	`

	tag, err := t.tx.Exec(ctx, query, cjc.ID, cjc.Level, cjc.Experience, cjc.SkillPoints)
	if err != nil {
		return fmt.Errorf("failed to update job class progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobClassNotFound
	}
	return nil
}

func (t *pgxTx) InsertExperienceAudit(ctx context.Context, audit *domain.ExperienceAudit) error {
	characterUUID, err := parseCharacterUUID(audit.CharacterID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO experience_audits (audit_id, character_id, job_class_id, amount, reason, actor, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := t.tx.Exec(ctx, query, audit.ID, characterUUID, audit.JobClassID, audit.Amount, audit.Reason, audit.Actor, audit.RecordedAt); err != nil {
		return fmt.Errorf("failed to insert experience audit: %w", err)
	}
	return nil
}

func (t *pgxTx) SetCurrentJobClass(ctx context.Context, characterID string, jobClassID int) error {
	characterUUID, err := parseCharacterUUID(characterID)
	if err != nil {
		return domain.ErrCharacterNotFound
	}

	// Clear before set so the partial unique index never sees two current rows.
	clear := `UPDATE character_job_classes SET is_current = FALSE WHERE character_id = $1 AND is_current`
	if _, err := t.tx.Exec(ctx, clear, characterUUID); err != nil {
		return fmt.Errorf("failed to clear current job class: %w", err)
	}

	set := `UPDATE character_job_classes SET is_current = TRUE WHERE character_id = $1 AND job_class_id = $2`
	tag, err := t.tx.Exec(ctx, set, characterUUID, jobClassID)
	if err != nil {
		return fmt.Errorf("failed to set current job class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobClassNotFound
	}
	return nil
}

func (t *pgxTx) InsertSkillInvestment(ctx context.Context, inv *domain.CharacterSkillInvestment) error {
	characterUUID, err := parseCharacterUUID(inv.CharacterID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO character_skill_investments (character_id, skill_node_id, unlocked_at)
		VALUES ($1, $2, $3)
	`

	if _, err := t.tx.Exec(ctx, query, characterUUID, inv.SkillNodeID, inv.UnlockedAt); err != nil {
		return fmt.Errorf("failed to insert skill investment: %w", err)
	}
	return nil
}

func (t *pgxTx) GetCharacterItemForUpdate(ctx context.Context, id string) (*domain.CharacterItem, error) {
	query := `SELECT ` + characterItemColumns + `
		FROM character_items
		WHERE character_item_id = $1
		FOR UPDATE`

	item, err := scanCharacterItem(t.tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOwnedItemNotFound
		}
		return nil, fmt.Errorf("failed to lock character item: %w", err)
	}
	return item, nil
}

func (t *pgxTx) GetEquippedItemInSlot(ctx context.Context, characterID string, slot domain.EquipmentSlot) (*domain.CharacterItem, error) {
	characterUUID, err := parseCharacterUUID(characterID)
	if err != nil {
		return nil, domain.ErrCharacterNotFound
	}

	query := `SELECT ` + characterItemColumns + `
		FROM character_items
		WHERE character_id = $1 AND location = 'equipped' AND equipment_slot = $2
		FOR UPDATE`

	item, err := scanCharacterItem(t.tx.QueryRow(ctx, query, characterUUID, slot))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get equipped item: %w", err)
	}
	return item, nil
}

func (t *pgxTx) UpdateCharacterItem(ctx context.Context, item *domain.CharacterItem) error {
	query := `
		UPDATE character_items
		SET quantity = $2, location = $3, warehouse_id = $4, equipment_slot = $5,
		    durability = $6, enchantment_level = $7, locked = $8
		WHERE character_item_id = $1
	`

	tag, err := t.tx.Exec(ctx, query, item.ID, item.Quantity, item.Location, item.WarehouseID,
		item.EquipmentSlot, item.Durability, item.EnchantmentLevel, item.Locked)
	if err != nil {
		return fmt.Errorf("failed to update character item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOwnedItemNotFound
	}
	return nil
}

func (t *pgxTx) DeleteCharacterItem(ctx context.Context, id string) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM character_items WHERE character_item_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete character item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOwnedItemNotFound
	}
	return nil
}

func (t *pgxTx) GetWarehouseForUpdate(ctx context.Context, id int) (*domain.Warehouse, error) {
	query := `
		SELECT warehouse_id, character_id, name, max_slots, used_slots
		FROM warehouses
		WHERE warehouse_id = $1
		FOR UPDATE
	`

	var w domain.Warehouse
	err := t.tx.QueryRow(ctx, query, id).Scan(&w.ID, &w.CharacterID, &w.Name, &w.MaxSlots, &w.UsedSlots)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWarehouseNotFound
		}
		return nil, fmt.Errorf("failed to lock warehouse: %w", err)
	}
	return &w, nil
}

func (t *pgxTx) AdjustWarehouseUsedSlots(ctx context.Context, id int, delta int) error {
	query := `UPDATE warehouses SET used_slots = used_slots + $2 WHERE warehouse_id = $1`

	tag, err := t.tx.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust warehouse slots: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWarehouseNotFound
	}
	return nil
}

func (t *pgxTx) UpdateCharacterVitals(ctx context.Context, characterID string, currentHP, currentMP int) error {
	characterUUID, err := parseCharacterUUID(characterID)
	if err != nil {
		return domain.ErrCharacterNotFound
	}

	query := `UPDATE characters SET current_hp = $2, current_mp = $3, updated_at = NOW() WHERE character_id = $1`

	tag, err := t.tx.Exec(ctx, query, characterUUID, currentHP, currentMP)
	if err != nil {
		return fmt.Errorf("failed to update character vitals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

func (t *pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *pgxTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
