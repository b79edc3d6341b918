// Package testutils provides test data factories and recording fakes shared
// by the package-level test suites.
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/pantrysage/v1/internal/domain/inventory"
)

// FoodItemBuilder provides a fluent interface for building test food items
type FoodItemBuilder struct {
	userID        uuid.UUID
	name          string
	amount        float64
	unit          string
	label         inventory.Label
	eatByDate     time.Time
	freshnessDays int
}

// NewFoodItemBuilder creates a builder with sensible defaults
func NewFoodItemBuilder() *FoodItemBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &FoodItemBuilder{
		userID:        uuid.New(),
		name:          faker.Vegetable(),
		amount:        500,
		unit:          inventory.UnitGram,
		label:         inventory.LabelRawMaterial,
		eatByDate:     time.Now().AddDate(0, 0, 7),
		freshnessDays: 7,
	}
}

// WithUser sets the owning user
func (b *FoodItemBuilder) WithUser(userID uuid.UUID) *FoodItemBuilder {
	b.userID = userID
	return b
}

// WithName sets the item name
func (b *FoodItemBuilder) WithName(name string) *FoodItemBuilder {
	b.name = name
	return b
}

// WithAmount sets amount and unit
func (b *FoodItemBuilder) WithAmount(amount float64, unit string) *FoodItemBuilder {
	b.amount = amount
	b.unit = unit
	return b
}

// WithLabel sets the item label
func (b *FoodItemBuilder) WithLabel(label inventory.Label) *FoodItemBuilder {
	b.label = label
	return b
}

// WithEatByDate sets the expiry date
func (b *FoodItemBuilder) WithEatByDate(eatByDate time.Time) *FoodItemBuilder {
	b.eatByDate = eatByDate
	return b
}

// Build creates the food item, panicking on invalid builder state so test
// setup mistakes fail loudly.
func (b *FoodItemBuilder) Build() *inventory.FoodItem {
	item, err := inventory.NewFoodItem(b.userID, b.name, b.amount, b.unit, b.label, b.eatByDate, b.freshnessDays)
	if err != nil {
		panic(err)
	}
	item.Events() // drain creation event so tests start clean
	return item
}
