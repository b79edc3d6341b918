package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pantrysage/v1/internal/domain/inventory"
	"github.com/pantrysage/v1/internal/ports/outbound"
)

// InventoryRepository implements the inventory store in memory. List
// returns deep snapshots so callers never observe each other's in-flight
// mutations; writes only land through Update and Delete, matching the
// fresh-snapshot contract of the port.
type InventoryRepository struct {
	items map[uuid.UUID]*inventory.FoodItem
	mutex sync.RWMutex
}

// NewInventoryRepository creates a new in-memory inventory repository
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		items: make(map[uuid.UUID]*inventory.FoodItem),
	}
}

// List returns a fresh snapshot of items matching the filter
func (r *InventoryRepository) List(ctx context.Context, filter outbound.InventoryFilter) ([]*inventory.FoodItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var items []*inventory.FoodItem
	for _, item := range r.items {
		if filter.UserID != nil && item.UserID() != *filter.UserID {
			continue
		}
		if filter.Label != nil && item.Label() != *filter.Label {
			continue
		}
		if filter.Name != nil && strings.ToLower(strings.TrimSpace(item.Name())) != strings.ToLower(strings.TrimSpace(*filter.Name)) {
			continue
		}
		items = append(items, clone(item))
	}
	return items, nil
}

// FindByID finds a food item by ID
func (r *InventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.FoodItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, inventory.ErrItemNotFound
	}
	return clone(item), nil
}

// FindExpiringSoon returns items whose eat-by date falls within the window
func (r *InventoryRepository) FindExpiringSoon(ctx context.Context, within time.Duration) ([]*inventory.FoodItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	deadline := time.Now().Add(within)
	var items []*inventory.FoodItem
	for _, item := range r.items {
		if !item.EatByDate().After(deadline) {
			items = append(items, clone(item))
		}
	}
	return items, nil
}

// Create creates a new food item
func (r *InventoryRepository) Create(ctx context.Context, item *inventory.FoodItem) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.items[item.ID()] = clone(item)
	return nil
}

// Update persists an existing food item
func (r *InventoryRepository) Update(ctx context.Context, item *inventory.FoodItem) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.items[item.ID()]; !exists {
		return inventory.ErrItemNotFound
	}
	r.items[item.ID()] = clone(item)
	return nil
}

// Delete removes a food item entirely
func (r *InventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.items[id]; !exists {
		return inventory.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

// clone deep-copies an item via the domain rehydration path
func clone(item *inventory.FoodItem) *inventory.FoodItem {
	tags := make([]string, len(item.Tags()))
	copy(tags, item.Tags())

	return inventory.Rehydrate(
		item.ID(),
		item.UserID(),
		item.Version(),
		item.Name(),
		item.Amount(),
		item.Unit(),
		item.Label(),
		item.EatByDate(),
		item.DateCookedStored(),
		item.FreshnessDays(),
		item.StorageLocation(),
		item.Notes(),
		tags,
		item.CreatedAt(),
		item.UpdatedAt(),
	)
}
