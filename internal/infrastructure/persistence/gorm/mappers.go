package gorm

import (
	"github.com/pantrysage/v1/internal/domain/inventory"
)

// ItemToModel converts a domain FoodItem to its GORM model
func ItemToModel(item *inventory.FoodItem) *FoodItemModel {
	return &FoodItemModel{
		ID:               item.ID(),
		UserID:           item.UserID(),
		Version:          item.Version(),
		Name:             item.Name(),
		Amount:           item.Amount(),
		Unit:             item.Unit(),
		Label:            string(item.Label()),
		EatByDate:        item.EatByDate(),
		DateCookedStored: item.DateCookedStored(),
		FreshnessDays:    item.FreshnessDays(),
		StorageLocation:  item.StorageLocation(),
		Notes:            item.Notes(),
		Tags:             StringSlice(item.Tags()),
		CreatedAt:        item.CreatedAt(),
		UpdatedAt:        item.UpdatedAt(),
	}
}

// ModelToItem converts a GORM model back to the domain FoodItem
func ModelToItem(model *FoodItemModel) *inventory.FoodItem {
	return inventory.Rehydrate(
		model.ID,
		model.UserID,
		model.Version,
		model.Name,
		model.Amount,
		model.Unit,
		inventory.Label(model.Label),
		model.EatByDate,
		model.DateCookedStored,
		model.FreshnessDays,
		model.StorageLocation,
		model.Notes,
		[]string(model.Tags),
		model.CreatedAt,
		model.UpdatedAt,
	)
}
