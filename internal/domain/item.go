package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ItemType categorizes item templates; it drives equip eligibility and use
// rules.
type ItemType string

const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeAccessory  ItemType = "accessory"
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeMaterial   ItemType = "material"
	ItemTypeQuest      ItemType = "quest"
)

// ValidItemTypes is the set of accepted item_type values.
var ValidItemTypes = map[ItemType]bool{
	ItemTypeWeapon:     true,
	ItemTypeArmor:      true,
	ItemTypeAccessory:  true,
	ItemTypeConsumable: true,
	ItemTypeMaterial:   true,
	ItemTypeQuest:      true,
}

// Rarity is the item quality tier.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// ValidRarities is the set of accepted rarity values.
var ValidRarities = map[Rarity]bool{
	RarityCommon:    true,
	RarityUncommon:  true,
	RarityRare:      true,
	RarityEpic:      true,
	RarityLegendary: true,
}

// SaleType controls where an item may be sold.
type SaleType string

const (
	SaleShop       SaleType = "shop"
	SaleBazaar     SaleType = "bazaar"
	SaleBoth       SaleType = "both"
	SaleUnsellable SaleType = "unsellable"
)

// Item is a designer-authored item template. An empty JobRequirement means
// any job may use the item.
type Item struct {
	ID               int          `json:"id"`
	Name             string       `json:"name"`
	ItemType         ItemType     `json:"item_type"`
	Rarity           Rarity       `json:"rarity"`
	Description      string       `json:"description,omitempty"`
	LevelRequirement int          `json:"level_requirement"`
	JobRequirement   []string     `json:"job_requirement"`
	MaxStack         int          `json:"max_stack"`
	BuyPrice         int          `json:"buy_price"`
	SellPrice        int          `json:"sell_price"`
	SaleType         SaleType     `json:"sale_type"`
	Effects          []ItemEffect `json:"effects"`
	Active           bool         `json:"active"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// ItemEffectType discriminates item effect payloads.
type ItemEffectType string

const (
	ItemEffectHeal    ItemEffectType = "heal"
	ItemEffectRestore ItemEffectType = "restore_mp"
	ItemEffectBuff    ItemEffectType = "buff"
	ItemEffectCure    ItemEffectType = "cure"
)

// ItemEffect is a typed effect descriptor on a consumable or equipment
// template. Stat and Duration apply to buffs, Status to cures, Amount to
// heal/restore.
type ItemEffect struct {
	Type            ItemEffectType `json:"type"`
	Amount          int            `json:"amount,omitempty"`
	Stat            StatName       `json:"stat,omitempty"`
	DurationSeconds int            `json:"duration_seconds,omitempty"`
	Status          string         `json:"status,omitempty"`
}

// Describe renders the effect for use_item responses.
func (e ItemEffect) Describe() string {
	switch e.Type {
	case ItemEffectHeal:
		return fmt.Sprintf("HP +%d", e.Amount)
	case ItemEffectRestore:
		return fmt.Sprintf("MP +%d", e.Amount)
	case ItemEffectBuff:
		return fmt.Sprintf("%s +%d for %ds", e.Stat, e.Amount, e.DurationSeconds)
	case ItemEffectCure:
		return fmt.Sprintf("cures %s", e.Status)
	}
	return string(e.Type)
}

// Validate checks the payload fields required by the discriminant.
func (e ItemEffect) Validate() error {
	switch e.Type {
	case ItemEffectHeal, ItemEffectRestore:
		if e.Amount <= 0 {
			return fmt.Errorf("%w: %s effect requires positive amount", ErrInvalidInput, e.Type)
		}
	case ItemEffectBuff:
		if !ValidStatNames[e.Stat] {
			return fmt.Errorf("%w: buff effect has unknown stat %q", ErrInvalidInput, e.Stat)
		}
	case ItemEffectCure:
		if e.Status == "" {
			return fmt.Errorf("%w: cure effect requires status", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown item effect type %q", ErrInvalidInput, e.Type)
	}
	return nil
}

// EffectsJSON encodes an effect list for the JSONB column.
func EffectsJSON(effects []ItemEffect) ([]byte, error) {
	if effects == nil {
		effects = []ItemEffect{}
	}
	return json.Marshal(effects)
}
