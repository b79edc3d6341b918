// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pantrysage/v1/internal/domain/inventory"
)

// InventoryFilter narrows the snapshot returned by List
type InventoryFilter struct {
	UserID *uuid.UUID
	Label  *inventory.Label
	// Name filters on exact normalized name equality when set
	Name *string
}

// InventoryRepository defines the interface for food item persistence.
// List must return a fresh snapshot of current state on every call; the
// consumption engine re-reads between depletion steps and relies on the
// store never serving it a cached view.
type InventoryRepository interface {
	List(ctx context.Context, filter InventoryFilter) ([]*inventory.FoodItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*inventory.FoodItem, error)
	FindExpiringSoon(ctx context.Context, within time.Duration) ([]*inventory.FoodItem, error)
	Create(ctx context.Context, item *inventory.FoodItem) error
	Update(ctx context.Context, item *inventory.FoodItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActionType classifies event log entries
type ActionType string

const (
	ActionAdd    ActionType = "add"
	ActionRemove ActionType = "remove"
)

// EventLog is the append-only record of inventory add/remove actions.
// Entries are ordered by creation time descending.
type EventLog interface {
	Append(ctx context.Context, userID uuid.UUID, actionType ActionType, itemName string) error
	ListRecent(ctx context.Context, userID uuid.UUID, actionType ActionType, limit int) ([]inventory.ConsumptionEvent, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// NotificationSink consumes the four-branch result contract of a
// consumption run plus predictor alerts. Implementations must keep the
// branches distinguishable to the end user; silent partial failure is not
// allowed.
type NotificationSink interface {
	Notify(ctx context.Context, kind inventory.Outcome, message string) error
}
