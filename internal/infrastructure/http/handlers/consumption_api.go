package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pantrysage/v1/internal/ports/inbound"
	apperrors "github.com/pantrysage/v1/pkg/errors"
	"go.uber.org/zap"
)

// ConsumptionHandlers handles meal consumption requests
type ConsumptionHandlers struct {
	baseHandlers
	consumptionService inbound.ConsumptionService
}

// NewConsumptionHandlers creates a new consumption handlers instance
func NewConsumptionHandlers(consumptionService inbound.ConsumptionService, logger *zap.Logger) *ConsumptionHandlers {
	return &ConsumptionHandlers{
		baseHandlers:       baseHandlers{validate: validator.New(), logger: logger},
		consumptionService: consumptionService,
	}
}

// ConsumeMeal handles POST /api/v1/consume
func (h *ConsumptionHandlers) ConsumeMeal(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.ConsumeMealCommand
	if err := h.decodeAndValidate(r, &cmd); err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.consumptionService.ConsumeMeal(r.Context(), cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
		Message: "Consumption run completed",
	})
}

// userIDFromQuery parses the user_id query parameter shared by the
// read-side endpoints.
func userIDFromQuery(r *http.Request) (uuid.UUID, error) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		return uuid.Nil, apperrors.NewBadRequestError("user_id query parameter is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("user_id must be a valid UUID")
	}
	return id, nil
}
