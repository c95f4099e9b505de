package handler

import (
	"net/http"

	"github.com/harukigames/gamecore/internal/inventory"
	"github.com/harukigames/gamecore/internal/logger"
)

// HandleListWarehouses returns a character's warehouses with slot usage.
func HandleListWarehouses(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		characterID, ok := GetQueryParam(r, w, "character_id")
		if !ok {
			return
		}

		warehouses, err := svc.GetWarehouses(r.Context(), characterID)
		if err != nil {
			respondServiceError(w, r, "List warehouses", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: warehouses})
	}
}

// CreateWarehouseRequest is the body for creating a warehouse.
type CreateWarehouseRequest struct {
	CharacterID string `json:"character_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	MaxSlots    int    `json:"max_slots" validate:"min=1,max=1000"`
}

// HandleCreateWarehouse creates an empty warehouse for a character.
func HandleCreateWarehouse(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateWarehouseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create warehouse"); err != nil {
			return
		}

		warehouse, err := svc.CreateWarehouse(r.Context(), req.CharacterID, req.Name, req.MaxSlots)
		if err != nil {
			respondServiceError(w, r, "Create warehouse", err)
			return
		}

		log.Info("Warehouse created", "warehouse_id", warehouse.ID, "character_id", req.CharacterID)
		respondJSON(w, http.StatusCreated, DataResponse{Data: warehouse})
	}
}
