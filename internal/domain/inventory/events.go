package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Domain Events - Events that occur within the inventory domain

// ItemAddedEvent is raised when a new item enters the inventory
type ItemAddedEvent struct {
	ItemID  uuid.UUID
	Name    string
	Amount  float64
	Unit    string
	AddedAt time.Time
}

func (e ItemAddedEvent) EventName() string {
	return "inventory.item.added"
}

func (e ItemAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}

// ItemConsumedEvent is raised when stock is deducted from an item
type ItemConsumedEvent struct {
	ItemID     uuid.UUID
	Name       string
	Consumed   float64
	Remaining  float64
	Unit       string
	ConsumedAt time.Time
}

func (e ItemConsumedEvent) EventName() string {
	return "inventory.item.consumed"
}

func (e ItemConsumedEvent) OccurredAt() time.Time {
	return e.ConsumedAt
}

// ItemDepletedEvent is raised when consumption empties an item entirely
type ItemDepletedEvent struct {
	ItemID     uuid.UUID
	Name       string
	Consumed   float64
	Unit       string
	DepletedAt time.Time
}

func (e ItemDepletedEvent) EventName() string {
	return "inventory.item.depleted"
}

func (e ItemDepletedEvent) OccurredAt() time.Time {
	return e.DepletedAt
}

// ItemRemovedEvent is raised when an item is explicitly removed
type ItemRemovedEvent struct {
	ItemID    uuid.UUID
	Name      string
	RemovedAt time.Time
}

func (e ItemRemovedEvent) EventName() string {
	return "inventory.item.removed"
}

func (e ItemRemovedEvent) OccurredAt() time.Time {
	return e.RemovedAt
}
