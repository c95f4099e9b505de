package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Not-found errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgJobClassNotFound  = "job class not found"
	ErrMsgItemNotFound      = "item not found"
	ErrMsgSkillNodeNotFound = "skill node not found"
	ErrMsgSkillLineNotFound = "skill line not found"
	ErrMsgWarehouseNotFound = "warehouse not found"
	ErrMsgOwnedItemNotFound = "owned item not found"
	ErrMsgNoCurrentJob      = "character has no current job class"

	// Experience errors
	ErrMsgInvalidAmount = "experience amount must be positive"

	// Skill tree errors
	ErrMsgInsufficientPoints = "insufficient skill points"
	ErrMsgAlreadyUnlocked    = "node already unlocked"
	ErrMsgNodeInactive       = "node is inactive"

	// Equipment errors
	ErrMsgSlotMismatch  = "item cannot occupy that slot"
	ErrMsgLevelTooLow   = "job level too low for item"
	ErrMsgJobNotAllowed = "item not usable by current job"
	ErrMsgNotEquipped   = "item is not equipped"

	// Location errors
	ErrMsgWarehouseFull  = "warehouse is full"
	ErrMsgItemLocked     = "item is locked"
	ErrMsgNotInInventory = "item is not in inventory"
	ErrMsgNotInWarehouse = "item is not in warehouse"
	ErrMsgNotConsumable  = "item is not consumable"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"

	// Concurrency errors
	ErrMsgConflict = "concurrent update conflict"
)

// Common domain errors.
// These errors are used consistently across all layers. Wrap with
// fmt.Errorf("%w: details", domain.ErrXxx) for additional context.
var (
	// Not-found errors
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrJobClassNotFound  = errors.New(ErrMsgJobClassNotFound)
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrSkillNodeNotFound = errors.New(ErrMsgSkillNodeNotFound)
	ErrSkillLineNotFound = errors.New(ErrMsgSkillLineNotFound)
	ErrWarehouseNotFound = errors.New(ErrMsgWarehouseNotFound)
	ErrOwnedItemNotFound = errors.New(ErrMsgOwnedItemNotFound)
	ErrNoCurrentJob      = errors.New(ErrMsgNoCurrentJob)

	// Experience errors
	ErrInvalidAmount = errors.New(ErrMsgInvalidAmount)

	// Skill tree errors
	ErrInsufficientPoints = errors.New(ErrMsgInsufficientPoints)
	ErrAlreadyUnlocked    = errors.New(ErrMsgAlreadyUnlocked)
	ErrNodeInactive       = errors.New(ErrMsgNodeInactive)

	// Equipment errors
	ErrSlotMismatch  = errors.New(ErrMsgSlotMismatch)
	ErrLevelTooLow   = errors.New(ErrMsgLevelTooLow)
	ErrJobNotAllowed = errors.New(ErrMsgJobNotAllowed)
	ErrNotEquipped   = errors.New(ErrMsgNotEquipped)

	// Location errors
	ErrWarehouseFull  = errors.New(ErrMsgWarehouseFull)
	ErrItemLocked     = errors.New(ErrMsgItemLocked)
	ErrNotInInventory = errors.New(ErrMsgNotInInventory)
	ErrNotInWarehouse = errors.New(ErrMsgNotInWarehouse)
	ErrNotConsumable  = errors.New(ErrMsgNotConsumable)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Concurrency errors
	ErrConflict = errors.New(ErrMsgConflict)
)
