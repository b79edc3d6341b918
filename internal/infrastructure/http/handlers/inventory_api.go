package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pantrysage/v1/internal/ports/inbound"
	apperrors "github.com/pantrysage/v1/pkg/errors"
	"go.uber.org/zap"
)

// InventoryHandlers handles inventory CRUD requests
type InventoryHandlers struct {
	baseHandlers
	inventoryService inbound.InventoryService
}

// NewInventoryHandlers creates a new inventory handlers instance
func NewInventoryHandlers(inventoryService inbound.InventoryService, logger *zap.Logger) *InventoryHandlers {
	return &InventoryHandlers{
		baseHandlers:     baseHandlers{validate: validator.New(), logger: logger},
		inventoryService: inventoryService,
	}
}

// ListItems handles GET /api/v1/inventory
func (h *InventoryHandlers) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	items, err := h.inventoryService.ListItems(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    items,
		Message: "Inventory retrieved",
	})
}

// ListExpiringSoon handles GET /api/v1/inventory/expiring
func (h *InventoryHandlers) ListExpiringSoon(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	withinDays := 3
	if raw := r.URL.Query().Get("within_days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.writeError(w, apperrors.NewBadRequestError("within_days must be a positive integer"))
			return
		}
		withinDays = n
	}

	items, err := h.inventoryService.ListExpiringSoon(r.Context(), userID, withinDays)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    items,
		Message: "Expiring items retrieved",
	})
}

// CreateItem handles POST /api/v1/inventory
func (h *InventoryHandlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.CreateItemCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, err)
		return
	}

	item, err := h.inventoryService.CreateItem(r.Context(), cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    item,
		Message: "Item created",
	})
}

// UpdateItem handles PUT /api/v1/inventory/{id}
func (h *InventoryHandlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, apperrors.NewBadRequestError("item id must be a valid UUID"))
		return
	}

	var cmd inbound.UpdateItemCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.writeError(w, apperrors.NewBadRequestError("Invalid JSON body"))
		return
	}
	cmd.ItemID = itemID
	if err := h.validate.Struct(cmd); err != nil {
		h.writeError(w, apperrors.NewValidationError(err.Error()))
		return
	}

	item, err := h.inventoryService.UpdateItem(r.Context(), cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    item,
		Message: "Item updated",
	})
}

// DeleteItem handles DELETE /api/v1/inventory/{id}
func (h *InventoryHandlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, apperrors.NewBadRequestError("item id must be a valid UUID"))
		return
	}
	userID, err := userIDFromQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := h.inventoryService.RemoveItem(r.Context(), userID, itemID); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Item removed",
	})
}
