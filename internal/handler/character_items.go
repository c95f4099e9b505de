package handler

import (
	"net/http"
	"strings"

	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/equipment"
	"github.com/harukigames/gamecore/internal/inventory"
	"github.com/harukigames/gamecore/internal/logger"
)

// HandleListCharacterItems returns a character's owned items, optionally
// filtered by location.
func HandleListCharacterItems(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		location := strings.ToLower(GetOptionalQueryParam(r, "location", ""))
		if location != "" && !ValidLocations[location] {
			respondError(w, http.StatusBadRequest, "Invalid location parameter")
			return
		}

		items, err := svc.ListItems(r.Context(), characterID, domain.Location(location))
		if err != nil {
			respondServiceError(w, r, "List character items", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: items})
	}
}

// EquipRequest is the body for equipping an owned item.
type EquipRequest struct {
	Slot string `json:"slot" validate:"required,max=20"`
}

// HandleEquipItem equips an inventory item into the requested slot,
// displacing any current occupant back to inventory.
func HandleEquipItem(svc equipment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		itemID, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		var req EquipRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Equip item"); err != nil {
			return
		}

		slot, err := equipment.NormalizeSlot(req.Slot)
		if err != nil {
			respondServiceError(w, r, "Equip item", err)
			return
		}

		result, err := svc.Equip(r.Context(), itemID, slot)
		if err != nil {
			respondServiceError(w, r, "Equip item", err)
			return
		}

		log.Info("Item equipped", "character_item_id", itemID, "slot", string(slot))
		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}

// HandleUnequipItem moves an equipped item back to inventory.
func HandleUnequipItem(svc equipment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		itemID, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		item, err := svc.Unequip(r.Context(), itemID)
		if err != nil {
			respondServiceError(w, r, "Unequip item", err)
			return
		}

		log.Info("Item unequipped", "character_item_id", itemID)
		respondJSON(w, http.StatusOK, DataResponse{Data: item})
	}
}

// MoveToWarehouseRequest is the body for moving an item into a warehouse.
type MoveToWarehouseRequest struct {
	WarehouseID int `json:"warehouse_id" validate:"min=1"`
}

// HandleMoveToWarehouse moves an inventory item into a warehouse.
func HandleMoveToWarehouse(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		itemID, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		var req MoveToWarehouseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Move to warehouse"); err != nil {
			return
		}

		item, err := svc.MoveToWarehouse(r.Context(), itemID, req.WarehouseID)
		if err != nil {
			respondServiceError(w, r, "Move to warehouse", err)
			return
		}

		log.Info("Item moved to warehouse", "character_item_id", itemID, "warehouse_id", req.WarehouseID)
		respondJSON(w, http.StatusOK, DataResponse{Data: item})
	}
}

// HandleMoveToInventory returns a warehoused item to inventory.
func HandleMoveToInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		itemID, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		item, err := svc.MoveToInventory(r.Context(), itemID)
		if err != nil {
			respondServiceError(w, r, "Move to inventory", err)
			return
		}

		log.Info("Item moved to inventory", "character_item_id", itemID)
		respondJSON(w, http.StatusOK, DataResponse{Data: item})
	}
}

// HandleUseItem consumes one unit of a consumable and reports the applied
// effects.
func HandleUseItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		itemID, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		result, err := svc.UseItem(r.Context(), itemID)
		if err != nil {
			respondServiceError(w, r, "Use item", err)
			return
		}

		log.Info("Item used", "character_item_id", itemID, "removed", result.Removed)
		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}

// HandleGetEquipment returns everything the character has equipped.
func HandleGetEquipment(svc equipment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetPathParam(r, w, "id")
		if !ok {
			return
		}

		equipped, err := svc.GetEquipment(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "Get equipment", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: equipped})
	}
}
