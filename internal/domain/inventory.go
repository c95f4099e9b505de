package domain

import "time"

// Location is where an owned item instance currently lives.
type Location string

const (
	LocationInventory Location = "inventory"
	LocationEquipped  Location = "equipped"
	LocationWarehouse Location = "warehouse"
)

// EquipmentSlot is a named equipment position. Slot names match the game
// client's Japanese labels.
type EquipmentSlot string

const (
	SlotRightHand EquipmentSlot = "右手"
	SlotLeftHand  EquipmentSlot = "左手"
	SlotHead      EquipmentSlot = "頭"
	SlotBody      EquipmentSlot = "胴"
	SlotWaist     EquipmentSlot = "腰"
	SlotArms      EquipmentSlot = "腕"
	SlotLegs      EquipmentSlot = "足"
	SlotRing      EquipmentSlot = "指輪"
	SlotNecklace  EquipmentSlot = "首飾り"
)

// CharacterItem is an owned instance/stack of an item template.
// Invariants: Quantity <= template MaxStack; WarehouseID set iff location is
// warehouse; EquipmentSlot set iff location is equipped; at most one equipped
// item per (character, slot).
type CharacterItem struct {
	ID               string         `json:"id"`
	CharacterID      string         `json:"character_id"`
	ItemID           int            `json:"item_id"`
	Quantity         int            `json:"quantity"`
	Location         Location       `json:"location"`
	WarehouseID      *int           `json:"warehouse_id,omitempty"`
	EquipmentSlot    *EquipmentSlot `json:"equipment_slot,omitempty"`
	Durability       int            `json:"durability"`
	MaxDurability    int            `json:"max_durability"`
	EnchantmentLevel int            `json:"enchantment_level"`
	Locked           bool           `json:"locked"`
	ObtainedAt       time.Time      `json:"obtained_at"`
}

// OwnedItem joins a CharacterItem with its template for API responses.
type OwnedItem struct {
	CharacterItem
	ItemName string   `json:"item_name"`
	ItemType ItemType `json:"item_type"`
	Rarity   Rarity   `json:"rarity"`
}

// UseItemResult is the outcome of consuming an item.
type UseItemResult struct {
	Message  string   `json:"message"`
	Effects  []string `json:"effects"`
	Removed  bool     `json:"removed"`
	Quantity int      `json:"quantity"`
}
