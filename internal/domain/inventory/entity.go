// Package inventory contains the core domain logic for pantry inventory
// management. This follows Domain-Driven Design principles with rich domain
// models.
package inventory

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pantrysage/v1/internal/domain/shared"
)

// amountEpsilon is the threshold below which a remaining amount is treated
// as fully depleted. Items never persist with amount <= amountEpsilon.
const amountEpsilon = 1e-9

// FoodItem represents a single tracked item in the pantry inventory.
// It is the aggregate root for all stock mutations.
type FoodItem struct {
	id      uuid.UUID
	userID  uuid.UUID
	version int64 // Optimistic locking

	name   string
	amount float64
	unit   string
	label  Label

	eatByDate       time.Time
	dateCookedStored time.Time
	freshnessDays   int

	storageLocation string
	notes           string
	tags            []string

	createdAt time.Time
	updatedAt time.Time

	// Domain events to be dispatched
	events []shared.DomainEvent
}

// NewFoodItem creates a new FoodItem with validation
func NewFoodItem(userID uuid.UUID, name string, amount float64, unit string, label Label, eatByDate time.Time, freshnessDays int) (*FoodItem, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	if freshnessDays <= 0 {
		return nil, ErrInvalidFreshness
	}
	if !label.Valid() {
		return nil, ErrInvalidLabel
	}

	now := time.Now()
	item := &FoodItem{
		id:               uuid.New(),
		userID:           userID,
		version:          1,
		name:             name,
		amount:           amount,
		unit:             NormalizeUnit(unit),
		label:            label,
		eatByDate:        eatByDate,
		dateCookedStored: now,
		freshnessDays:    freshnessDays,
		createdAt:        now,
		updatedAt:        now,
		events:           []shared.DomainEvent{},
	}

	item.addEvent(ItemAddedEvent{
		ItemID:  item.id,
		Name:    name,
		Amount:  amount,
		Unit:    item.unit,
		AddedAt: now,
	})

	return item, nil
}

// Rehydrate reconstructs a FoodItem from persisted state. It bypasses
// creation events and is intended for repository mappers only.
func Rehydrate(id, userID uuid.UUID, version int64, name string, amount float64, unit string, label Label,
	eatByDate, dateCookedStored time.Time, freshnessDays int, storageLocation, notes string,
	tags []string, createdAt, updatedAt time.Time) *FoodItem {
	return &FoodItem{
		id:               id,
		userID:           userID,
		version:          version,
		name:             name,
		amount:           amount,
		unit:             NormalizeUnit(unit),
		label:            label,
		eatByDate:        eatByDate,
		dateCookedStored: dateCookedStored,
		freshnessDays:    freshnessDays,
		storageLocation:  storageLocation,
		notes:            notes,
		tags:             tags,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		events:           []shared.DomainEvent{},
	}
}

// ID returns the item's unique identifier
func (f *FoodItem) ID() uuid.UUID {
	return f.id
}

// UserID returns the identifier of the user who owns the item
func (f *FoodItem) UserID() uuid.UUID {
	return f.userID
}

// Version returns the item's version
func (f *FoodItem) Version() int64 {
	return f.version
}

// Name returns the item's name
func (f *FoodItem) Name() string {
	return f.name
}

// Amount returns the current stock amount
func (f *FoodItem) Amount() float64 {
	return f.amount
}

// Unit returns the unit the amount is measured in
func (f *FoodItem) Unit() string {
	return f.unit
}

// Label returns whether the item is a raw material or a cooked meal
func (f *FoodItem) Label() Label {
	return f.label
}

// EatByDate returns the date by which the item should be eaten
func (f *FoodItem) EatByDate() time.Time {
	return f.eatByDate
}

// DateCookedStored returns when the item was cooked or stored
func (f *FoodItem) DateCookedStored() time.Time {
	return f.dateCookedStored
}

// FreshnessDays returns the expected shelf life in days
func (f *FoodItem) FreshnessDays() int {
	return f.freshnessDays
}

// StorageLocation returns where the item is stored
func (f *FoodItem) StorageLocation() string {
	return f.storageLocation
}

// Notes returns free-form notes attached to the item
func (f *FoodItem) Notes() string {
	return f.notes
}

// Tags returns the item's tags
func (f *FoodItem) Tags() []string {
	return f.tags
}

// CreatedAt returns when the item was created
func (f *FoodItem) CreatedAt() time.Time {
	return f.createdAt
}

// UpdatedAt returns when the item was last updated
func (f *FoodItem) UpdatedAt() time.Time {
	return f.updatedAt
}

// IsRawMaterial reports whether the item is eligible for ingredient matching
func (f *FoodItem) IsRawMaterial() bool {
	return f.label == LabelRawMaterial
}

// IsExpired reports whether the item's eat-by date has passed
func (f *FoodItem) IsExpired(now time.Time) bool {
	return f.eatByDate.Before(now)
}

// DaysUntilExpiry returns the number of whole days until the eat-by date.
// Negative for expired items.
func (f *FoodItem) DaysUntilExpiry(now time.Time) int {
	return int(math.Floor(f.eatByDate.Sub(now).Hours() / 24))
}

// SetStorageLocation updates where the item is stored
func (f *FoodItem) SetStorageLocation(location string) {
	f.storageLocation = location
	f.updatedAt = time.Now()
}

// SetNotes updates the item's notes
func (f *FoodItem) SetNotes(notes string) {
	f.notes = notes
	f.updatedAt = time.Now()
}

// Rename updates the item name with validation
func (f *FoodItem) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	f.name = name
	f.updatedAt = time.Now()
	return nil
}

// Restock sets the amount to a new non-negative value, e.g. after an
// explicit edit or a shopping trip.
func (f *FoodItem) Restock(amount float64) error {
	if amount < 0 {
		return ErrNegativeAmount
	}
	f.amount = amount
	f.updatedAt = time.Now()
	return nil
}

// Deduct removes the given amount of stock, expressed in the item's own
// unit. It returns true when the item is fully depleted and must be removed
// from the store instead of persisted. A depleted item never survives with
// a zero or negative amount.
func (f *FoodItem) Deduct(amountInItemUnit float64) (depleted bool, err error) {
	if amountInItemUnit < 0 {
		return false, ErrNegativeAmount
	}

	newAmount := f.amount - amountInItemUnit
	now := time.Now()

	if newAmount <= amountEpsilon {
		consumed := f.amount
		f.amount = 0
		f.updatedAt = now
		f.addEvent(ItemDepletedEvent{
			ItemID:     f.id,
			Name:       f.name,
			Consumed:   consumed,
			Unit:       f.unit,
			DepletedAt: now,
		})
		return true, nil
	}

	f.amount = newAmount
	f.updatedAt = now
	f.addEvent(ItemConsumedEvent{
		ItemID:     f.id,
		Name:       f.name,
		Consumed:   amountInItemUnit,
		Remaining:  newAmount,
		Unit:       f.unit,
		ConsumedAt: now,
	})
	return false, nil
}

// addEvent adds a domain event to be dispatched
func (f *FoodItem) addEvent(event shared.DomainEvent) {
	f.events = append(f.events, event)
}

// Events returns and clears pending domain events
func (f *FoodItem) Events() []shared.DomainEvent {
	events := f.events
	f.events = []shared.DomainEvent{}
	return events
}

// validateName validates an item or ingredient name
func validateName(name string) error {
	if len(name) == 0 {
		return ErrEmptyName
	}
	if len(name) > 200 {
		return ErrNameTooLong
	}
	return nil
}
