package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/harukigames/gamecore/internal/domain"
	"github.com/harukigames/gamecore/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped HTTP
// error to the client.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, message)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your API key."

	ErrMsgCharacterNotFoundError = "Character not found"
	ErrMsgJobClassNotFoundError  = "Job class not found"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgSkillLineNotFoundError = "Skill line not found"
	ErrMsgSkillNodeNotFoundError = "Skill node not found"
	ErrMsgWarehouseNotFoundError = "Warehouse not found"
	ErrMsgOwnedItemNotFoundError = "Owned item not found"
	ErrMsgNoCurrentJobError      = "Character has no current job class"

	ErrMsgInvalidAmountError      = "Experience amount must be positive"
	ErrMsgInsufficientPointsError = "Not enough skill points"
	ErrMsgAlreadyUnlockedError    = "Node is already unlocked"
	ErrMsgNodeInactiveError       = "Node is not active"

	ErrMsgSlotMismatchError  = "Item cannot go in that slot"
	ErrMsgLevelTooLowError   = "Job level is too low for that item"
	ErrMsgJobNotAllowedError = "Current job cannot use that item"
	ErrMsgNotEquippedError   = "Item is not equipped"

	ErrMsgWarehouseFullError  = "Warehouse is full"
	ErrMsgItemLockedError     = "Item is locked"
	ErrMsgNotInInventoryError = "Item must be in inventory"
	ErrMsgNotInWarehouseError = "Item is not in a warehouse"
	ErrMsgNotConsumableError  = "Item is not consumable"

	ErrMsgConflictError = "Another change got there first. Please retry."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages the admin frontend can show directly.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundError
	case errors.Is(err, domain.ErrJobClassNotFound):
		return http.StatusNotFound, ErrMsgJobClassNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrSkillLineNotFound):
		return http.StatusNotFound, ErrMsgSkillLineNotFoundError
	case errors.Is(err, domain.ErrSkillNodeNotFound):
		return http.StatusNotFound, ErrMsgSkillNodeNotFoundError
	case errors.Is(err, domain.ErrWarehouseNotFound):
		return http.StatusNotFound, ErrMsgWarehouseNotFoundError
	case errors.Is(err, domain.ErrOwnedItemNotFound):
		return http.StatusNotFound, ErrMsgOwnedItemNotFoundError
	case errors.Is(err, domain.ErrNoCurrentJob):
		return http.StatusConflict, ErrMsgNoCurrentJobError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInsufficientPoints):
		return http.StatusBadRequest, ErrMsgInsufficientPointsError
	case errors.Is(err, domain.ErrAlreadyUnlocked):
		return http.StatusConflict, ErrMsgAlreadyUnlockedError
	case errors.Is(err, domain.ErrNodeInactive):
		return http.StatusBadRequest, ErrMsgNodeInactiveError
	case errors.Is(err, domain.ErrSlotMismatch):
		return http.StatusBadRequest, ErrMsgSlotMismatchError
	case errors.Is(err, domain.ErrLevelTooLow):
		return http.StatusBadRequest, ErrMsgLevelTooLowError
	case errors.Is(err, domain.ErrJobNotAllowed):
		return http.StatusBadRequest, ErrMsgJobNotAllowedError
	case errors.Is(err, domain.ErrNotEquipped):
		return http.StatusBadRequest, ErrMsgNotEquippedError
	case errors.Is(err, domain.ErrWarehouseFull):
		return http.StatusConflict, ErrMsgWarehouseFullError
	case errors.Is(err, domain.ErrItemLocked):
		return http.StatusConflict, ErrMsgItemLockedError
	case errors.Is(err, domain.ErrNotInInventory):
		return http.StatusBadRequest, ErrMsgNotInInventoryError
	case errors.Is(err, domain.ErrNotInWarehouse):
		return http.StatusBadRequest, ErrMsgNotInWarehouseError
	case errors.Is(err, domain.ErrNotConsumable):
		return http.StatusBadRequest, ErrMsgNotConsumableError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrMsgConflictError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
