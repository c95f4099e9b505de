package equipment

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/harukigames/gamecore/internal/domain"
)

// slotsByItemType is the fixed item-type to slot mapping. Consumables,
// materials and quest items have no slots and can never be equipped.
var slotsByItemType = map[domain.ItemType][]domain.EquipmentSlot{
	domain.ItemTypeWeapon:    {domain.SlotRightHand, domain.SlotLeftHand},
	domain.ItemTypeArmor:     {domain.SlotHead, domain.SlotBody, domain.SlotWaist, domain.SlotArms, domain.SlotLegs},
	domain.ItemTypeAccessory: {domain.SlotRing, domain.SlotNecklace},
}

// validSlots is every known slot name after NFKC normalization.
var validSlots = func() map[domain.EquipmentSlot]bool {
	m := make(map[domain.EquipmentSlot]bool)
	for _, slots := range slotsByItemType {
		for _, slot := range slots {
			m[domain.EquipmentSlot(norm.NFKC.String(string(slot)))] = true
		}
	}
	return m
}()

// EligibleSlots returns the slots an item type may occupy. Nil means the
// type is not equippable.
func EligibleSlots(itemType domain.ItemType) []domain.EquipmentSlot {
	return slotsByItemType[itemType]
}

// SlotAllowed reports whether the item type may occupy the slot.
func SlotAllowed(itemType domain.ItemType, slot domain.EquipmentSlot) bool {
	for _, s := range slotsByItemType[itemType] {
		if s == slot {
			return true
		}
	}
	return false
}

// NormalizeSlot canonicalizes a client-supplied slot name. Half-width and
// full-width variants of the Japanese labels normalize to the same slot
// under NFKC.
func NormalizeSlot(raw string) (domain.EquipmentSlot, error) {
	slot := domain.EquipmentSlot(norm.NFKC.String(strings.TrimSpace(raw)))
	if !validSlots[slot] {
		return "", fmt.Errorf("%w: unknown equipment slot %q", domain.ErrInvalidInput, raw)
	}
	return slot, nil
}
