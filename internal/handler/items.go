package handler

import (
	"net/http"

	"github.com/harukigames/gamecore/internal/catalog"
	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/logger"
)

// ItemRequest is the create/update body for item templates.
type ItemRequest struct {
	Name             string              `json:"name" validate:"required,max=100,excludesall=\x00\n\r\t"`
	ItemType         string              `json:"item_type" validate:"required"`
	Rarity           string              `json:"rarity" validate:"required"`
	Description      string              `json:"description" validate:"max=2000"`
	LevelRequirement int                 `json:"level_requirement" validate:"min=0"`
	JobRequirement   []string            `json:"job_requirement"`
	MaxStack         int                 `json:"max_stack" validate:"min=1,max=9999"`
	BuyPrice         int                 `json:"buy_price" validate:"min=0"`
	SellPrice        int                 `json:"sell_price" validate:"min=0"`
	SaleType         string              `json:"sale_type"`
	Effects          []domain.ItemEffect `json:"effects"`
	Active           bool                `json:"active"`
}

func (req *ItemRequest) toDomain() *domain.Item {
	return &domain.Item{
		Name:             req.Name,
		ItemType:         domain.ItemType(req.ItemType),
		Rarity:           domain.Rarity(req.Rarity),
		Description:      req.Description,
		LevelRequirement: req.LevelRequirement,
		JobRequirement:   req.JobRequirement,
		MaxStack:         req.MaxStack,
		BuyPrice:         req.BuyPrice,
		SellPrice:        req.SellPrice,
		SaleType:         domain.SaleType(req.SaleType),
		Effects:          req.Effects,
		Active:           req.Active,
	}
}

// HandleListItems returns the item catalog.
func HandleListItems(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListItems(r.Context())
		if err != nil {
			respondServiceError(w, r, "List items", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: items})
	}
}

// HandleGetItem returns one item template.
func HandleGetItem(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIntPathParam(r, w, "id")
		if !ok {
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, "Get item", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: item})
	}
}

// HandleCreateItem creates a designer-authored item template.
func HandleCreateItem(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create item"); err != nil {
			return
		}

		created, err := svc.CreateItem(r.Context(), req.toDomain())
		if err != nil {
			respondServiceError(w, r, "Create item", err)
			return
		}

		log.Info("Item created", "id", created.ID, "name", created.Name)
		respondJSON(w, http.StatusCreated, DataResponse{Data: created})
	}
}

// HandleUpdateItem updates an item template in place.
func HandleUpdateItem(svc catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		id, ok := GetIntPathParam(r, w, "id")
		if !ok {
			return
		}

		var req ItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update item"); err != nil {
			return
		}

		updated, err := svc.UpdateItem(r.Context(), id, req.toDomain())
		if err != nil {
			respondServiceError(w, r, "Update item", err)
			return
		}

		log.Info("Item updated", "id", id, "name", updated.Name)
		respondJSON(w, http.StatusOK, DataResponse{Data: updated})
	}
}
