package domain

// Warehouse is per-character bulk storage. UsedSlots is maintained in the
// same transaction as any move touching the warehouse, never recomputed from
// a snapshot.
type Warehouse struct {
	ID          int    `json:"id"`
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	MaxSlots    int    `json:"max_slots"`
	UsedSlots   int    `json:"used_slots"`
}
