package inventory

import (
	"context"
	"fmt"

	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/event"
	"github.com/harukigames/gamecore/internal/logger"
	"github.com/harukigames/gamecore/internal/statcurve"
)

// UseItem consumes one unit of a consumable in inventory. Heal and MP
// restore effects apply to the character's vitals, clamped to the stats
// derived from the current job class at the current level. Quantity
// decrements by one and the stack row is deleted at zero.
func (s *service) UseItem(ctx context.Context, characterItemID string) (*domain.UseItemResult, error) {
	log := logger.FromContext(ctx)

	ci, err := s.inventoryRepo.GetCharacterItem(ctx, characterItemID)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetItemByID(ctx, ci.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item template %d: %w", ci.ItemID, err)
	}
	if item.ItemType != domain.ItemTypeConsumable {
		return nil, domain.ErrNotConsumable
	}

	character, err := s.characterRepo.GetCharacter(ctx, ci.CharacterID)
	if err != nil {
		return nil, err
	}
	current, err := s.characterRepo.GetCurrentJobClass(ctx, ci.CharacterID)
	if err != nil {
		return nil, err
	}
	jc, err := s.jobClassRepo.GetJobClassByID(ctx, current.JobClassID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job class %d: %w", current.JobClassID, err)
	}
	maxStats := statcurve.DeriveForJobClass(jc, current.Level)

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

	hp := character.CurrentHP
	mp := character.CurrentMP
	applied := make([]string, 0, len(item.Effects))
	for _, effect := range item.Effects {
		switch effect.Type {
		case domain.ItemEffectHeal:
			hp += effect.Amount
			if hp > maxStats.HP {
				hp = maxStats.HP
			}
		case domain.ItemEffectRestore:
			mp += effect.Amount
			if mp > maxStats.MP {
				mp = maxStats.MP
			}
		}
		applied = append(applied, effect.Describe())
	}

	if hp != character.CurrentHP || mp != character.CurrentMP {
		if err := tx.UpdateCharacterVitals(ctx, character.ID, hp, mp); err != nil {
			return nil, fmt.Errorf("failed to update vitals: %w", err)
		}
	}

	target.Quantity--
	removed := target.Quantity <= 0
	if removed {
		if err := tx.DeleteCharacterItem(ctx, target.ID); err != nil {
			return nil, fmt.Errorf("failed to delete consumed stack: %w", err)
		}
	} else {
		if err := tx.UpdateCharacterItem(ctx, target); err != nil {
			return nil, fmt.Errorf("failed to decrement stack: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit item use: %w", err)
	}

	log.Info("Item used",
		"characterId", character.ID,
		"characterItemId", target.ID,
		"itemId", item.ID,
		"removed", removed)

	if s.publisher != nil {
		used := event.NewItemLocationEvent(event.ItemUsed, character.ID, target.ID, item.ID,
			string(domain.LocationInventory), "", "", nil)
		if err := s.publisher.Publish(ctx, used); err != nil {
			log.Warn("Failed to publish item used event", "error", err)
		}
	}

	quantity := target.Quantity
	if quantity < 0 {
		quantity = 0
	}
	return &domain.UseItemResult{
		Message:  fmt.Sprintf("Used %s", item.Name),
		Effects:  applied,
		Removed:  removed,
		Quantity: quantity,
	}, nil
}
