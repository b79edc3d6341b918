package gorm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pantrysage/v1/internal/domain/inventory"
	"github.com/pantrysage/v1/internal/ports/outbound"
	"gorm.io/gorm"
)

// InventoryRepository implements the inventory store interface using GORM.
// Every List call issues a fresh query; the consumption engine depends on
// never seeing a cached snapshot.
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) outbound.InventoryRepository {
	return &InventoryRepository{db: db}
}

// List returns a fresh snapshot of items matching the filter
func (r *InventoryRepository) List(ctx context.Context, filter outbound.InventoryFilter) ([]*inventory.FoodItem, error) {
	query := r.db.WithContext(ctx).Model(&FoodItemModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Label != nil {
		query = query.Where("label = ?", string(*filter.Label))
	}
	if filter.Name != nil {
		query = query.Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(*filter.Name)))
	}

	var models []FoodItemModel
	if result := query.Order("eat_by_date ASC").Find(&models); result.Error != nil {
		return nil, result.Error
	}

	items := make([]*inventory.FoodItem, len(models))
	for i := range models {
		items[i] = ModelToItem(&models[i])
	}
	return items, nil
}

// FindByID finds a food item by ID
func (r *InventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.FoodItem, error) {
	var model FoodItemModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrItemNotFound
		}
		return nil, result.Error
	}

	return ModelToItem(&model), nil
}

// FindExpiringSoon returns items whose eat-by date falls within the window
func (r *InventoryRepository) FindExpiringSoon(ctx context.Context, within time.Duration) ([]*inventory.FoodItem, error) {
	deadline := time.Now().Add(within)

	var models []FoodItemModel
	result := r.db.WithContext(ctx).
		Where("eat_by_date <= ?", deadline).
		Order("eat_by_date ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*inventory.FoodItem, len(models))
	for i := range models {
		items[i] = ModelToItem(&models[i])
	}
	return items, nil
}

// Create creates a new food item
func (r *InventoryRepository) Create(ctx context.Context, item *inventory.FoodItem) error {
	model := ItemToModel(item)

	if result := r.db.WithContext(ctx).Create(model); result.Error != nil {
		return result.Error
	}
	return nil
}

// Update persists an existing food item
func (r *InventoryRepository) Update(ctx context.Context, item *inventory.FoodItem) error {
	model := ItemToModel(item)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return inventory.ErrItemNotFound
	}
	return nil
}

// Delete removes a food item entirely
func (r *InventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&FoodItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return inventory.ErrItemNotFound
	}
	return nil
}
