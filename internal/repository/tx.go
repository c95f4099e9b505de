package repository

import (
	"context"

	"github.com/harukigames/gamecore/internal/domain"
)

// TxBeginner starts a transaction covering all mutable character state.
type TxBeginner interface {
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx defines the interface for transactional operations. Every read-then-write
// sequence on a character (experience grant, node unlock, equip, location
// move) happens inside one Tx so counters like skill_points and
// warehouse used_slots are never updated from a stale snapshot.
type Tx interface {
	// Character progress
	GetCharacterJobClassForUpdate(ctx context.Context, characterID string, jobClassID int) (*domain.CharacterJobClass, error)
	UpdateCharacterJobClassProgress(ctx context.Context, cjc *domain.CharacterJobClass) error
	InsertExperienceAudit(ctx context.Context, audit *domain.ExperienceAudit) error
	SetCurrentJobClass(ctx context.Context, characterID string, jobClassID int) error

	// Skill investments
	InsertSkillInvestment(ctx context.Context, inv *domain.CharacterSkillInvestment) error

	// Owned items
	GetCharacterItemForUpdate(ctx context.Context, id string) (*domain.CharacterItem, error)
	// GetEquippedItemInSlot returns (nil, nil) when the slot is empty.
	GetEquippedItemInSlot(ctx context.Context, characterID string, slot domain.EquipmentSlot) (*domain.CharacterItem, error)
	UpdateCharacterItem(ctx context.Context, item *domain.CharacterItem) error
	DeleteCharacterItem(ctx context.Context, id string) error

	// Warehouses
	GetWarehouseForUpdate(ctx context.Context, id int) (*domain.Warehouse, error)
	AdjustWarehouseUsedSlots(ctx context.Context, id int, delta int) error

	// Character vitals
	UpdateCharacterVitals(ctx context.Context, characterID string, currentHP, currentMP int) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
