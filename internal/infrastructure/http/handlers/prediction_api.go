package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pantrysage/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

// PredictionHandlers serves low-stock alerts and shopping recommendations
type PredictionHandlers struct {
	baseHandlers
	predictionService inbound.PredictionService
}

// NewPredictionHandlers creates a new prediction handlers instance
func NewPredictionHandlers(predictionService inbound.PredictionService, logger *zap.Logger) *PredictionHandlers {
	return &PredictionHandlers{
		baseHandlers:      baseHandlers{validate: validator.New(), logger: logger},
		predictionService: predictionService,
	}
}

// GetAlerts handles GET /api/v1/alerts
func (h *PredictionHandlers) GetAlerts(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	report, err := h.predictionService.RefreshRecommendations(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    report.Alerts,
		Message: "Low stock alerts retrieved",
	})
}

// GetRecommendations handles GET /api/v1/recommendations
func (h *PredictionHandlers) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	report, err := h.predictionService.RefreshRecommendations(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    report.Recommendations,
		Message: "Shopping recommendations retrieved",
	})
}

// GetStockReport handles GET /api/v1/stock-report
func (h *PredictionHandlers) GetStockReport(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	report, err := h.predictionService.RefreshRecommendations(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    report,
		Message: "Stock report retrieved",
	})
}
