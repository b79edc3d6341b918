// Package server provides the JSON API HTTP server
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pantrysage/v1/internal/infrastructure/config"
	"github.com/pantrysage/v1/internal/infrastructure/http/handlers"
	"github.com/pantrysage/v1/internal/infrastructure/http/middleware"
	"github.com/pantrysage/v1/internal/infrastructure/monitoring"
	"github.com/pantrysage/v1/internal/infrastructure/notify"
	"github.com/pantrysage/v1/internal/ports/inbound"
	"go.uber.org/zap"
)

// APIServer serves the inventory JSON API
type APIServer struct {
	config             *config.Config
	logger             *zap.Logger
	server             *http.Server
	router             *chi.Mux
	consumptionService inbound.ConsumptionService
	predictionService  inbound.PredictionService
	inventoryService   inbound.InventoryService
	metrics            *monitoring.Metrics
	hub                *notify.WebSocketHub
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	consumptionService inbound.ConsumptionService,
	predictionService inbound.PredictionService,
	inventoryService inbound.InventoryService,
	metrics *monitoring.Metrics,
	hub *notify.WebSocketHub,
) *APIServer {
	server := &APIServer{
		config:             cfg,
		logger:             log,
		consumptionService: consumptionService,
		predictionService:  predictionService,
		inventoryService:   inventoryService,
		metrics:            metrics,
		hub:                hub,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// setupRoutes configures the JSON API routes
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealthCheck)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	if s.hub != nil {
		r.Get("/ws/notifications", s.hub.HandleWS)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.JSONOnly())
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	consumeH := handlers.NewConsumptionHandlers(s.consumptionService, s.logger)
	predictH := handlers.NewPredictionHandlers(s.predictionService, s.logger)
	inventoryH := handlers.NewInventoryHandlers(s.inventoryService, s.logger)

	r.Post("/consume", consumeH.ConsumeMeal)

	r.Get("/alerts", predictH.GetAlerts)
	r.Get("/recommendations", predictH.GetRecommendations)
	r.Get("/stock-report", predictH.GetStockReport)

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", inventoryH.ListItems)
		r.Get("/expiring", inventoryH.ListExpiringSoon)
		r.Post("/", inventoryH.CreateItem)
		r.Put("/{id}", inventoryH.UpdateItem)
		r.Delete("/{id}", inventoryH.DeleteItem)
	})
}

// Start starts the HTTP server
func (s *APIServer) Start() error {
	s.logger.Info("Starting API server",
		zap.String("address", s.server.Addr),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	if s.hub != nil {
		s.hub.Close()
	}
	return s.server.Shutdown(ctx)
}

// handleHealthCheck provides the health check endpoint
func (s *APIServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","service":"%s","version":"%s","timestamp":%d}`,
		s.config.App.Name, s.config.App.Version, time.Now().Unix())
}
