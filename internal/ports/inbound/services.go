// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the application exposes to its callers
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pantrysage/v1/internal/domain/inventory"
)

// IngredientCommand is one ingredient line of a meal to consume
type IngredientCommand struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Unit     string  `json:"unit" validate:"required"`
	Notes    string  `json:"notes,omitempty"`
}

// ConsumeMealCommand requests one FIFO consumption run. Invoking it twice
// for the same meal double-consumes; the caller owns exactly-once semantics.
type ConsumeMealCommand struct {
	UserID      uuid.UUID           `json:"user_id" validate:"required"`
	MealName    string              `json:"meal_name"`
	Ingredients []IngredientCommand `json:"ingredients" validate:"dive"`
}

// ConsumptionService runs meal consumption against the inventory
type ConsumptionService interface {
	ConsumeMeal(ctx context.Context, cmd ConsumeMealCommand) (*inventory.ConsumptionResult, error)
}

// StockReport is the predictor's output for one inventory snapshot
type StockReport struct {
	Alerts          []inventory.LowStockAlert          `json:"alerts"`
	Recommendations []inventory.ShoppingRecommendation `json:"recommendations"`
	GeneratedAt     time.Time                          `json:"generated_at"`
}

// PredictionService derives forward-looking stock signals from historical
// consumption events
type PredictionService interface {
	RefreshRecommendations(ctx context.Context, userID uuid.UUID) (*StockReport, error)
	InvalidateRecommendations(ctx context.Context, userID uuid.UUID) error
}

// CreateItemCommand adds a new item to the inventory
type CreateItemCommand struct {
	UserID          uuid.UUID `json:"user_id" validate:"required"`
	Name            string    `json:"name" validate:"required,max=200"`
	Amount          float64   `json:"amount" validate:"gte=0"`
	Unit            string    `json:"unit" validate:"required"`
	Label           string    `json:"label" validate:"required,oneof=raw_material cooked_meal"`
	EatByDate       time.Time `json:"eat_by_date" validate:"required"`
	FreshnessDays   int       `json:"freshness_days" validate:"required,gt=0"`
	StorageLocation string    `json:"storage_location,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
}

// UpdateItemCommand edits an existing item
type UpdateItemCommand struct {
	ItemID          uuid.UUID `json:"item_id" validate:"required"`
	UserID          uuid.UUID `json:"user_id" validate:"required"`
	Name            *string   `json:"name,omitempty"`
	Amount          *float64  `json:"amount,omitempty"`
	StorageLocation *string   `json:"storage_location,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
}

// FoodItemDTO is the transport representation of a food item
type FoodItemDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Amount          float64   `json:"amount"`
	Unit            string    `json:"unit"`
	Label           string    `json:"label"`
	EatByDate       time.Time `json:"eat_by_date"`
	FreshnessDays   int       `json:"freshness_days"`
	StorageLocation string    `json:"storage_location,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
}

// InventoryService exposes inventory CRUD to the host application
type InventoryService interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]FoodItemDTO, error)
	ListExpiringSoon(ctx context.Context, userID uuid.UUID, withinDays int) ([]FoodItemDTO, error)
	CreateItem(ctx context.Context, cmd CreateItemCommand) (*FoodItemDTO, error)
	UpdateItem(ctx context.Context, cmd UpdateItemCommand) (*FoodItemDTO, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
}
