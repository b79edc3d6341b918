package inventory

import (
	"strings"
	"time"
)

// Value Objects - Immutable objects that describe aspects of the domain

// Ingredient is one line of a meal or recipe: a named quantity in a unit.
// It is embedded in meals and never persisted on its own.
type Ingredient struct {
	Name     string
	Quantity float64
	Unit     string
	Notes    string
}

// Validate validates the ingredient before it enters a consumption run
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.Quantity <= 0 {
		return ErrNonPositiveQuantity
	}
	return nil
}

// Label distinguishes raw ingredients from prepared dishes
type Label string

const (
	// LabelRawMaterial marks an uncooked ingredient, eligible for
	// consumption matching.
	LabelRawMaterial Label = "raw_material"
	// LabelCookedMeal marks a prepared dish, excluded from matching.
	LabelCookedMeal Label = "cooked_meal"
)

// Valid reports whether the label is a member of the closed vocabulary
func (l Label) Valid() bool {
	return l == LabelRawMaterial || l == LabelCookedMeal
}

// Unit vocabulary. Units outside this list are still accepted as free-form
// self-compatible units ("item", "serving", ...), they just never convert
// to anything else.
const (
	UnitGram     = "g"
	UnitKilogram = "kg"
	UnitPound    = "lb"
	UnitOunce    = "oz"

	UnitMilliliter = "ml"
	UnitLiter      = "l"
	UnitCup        = "cup"
	UnitTablespoon = "tbsp"
	UnitTeaspoon   = "tsp"

	UnitItem    = "item"
	UnitServing = "serving"
)

// NormalizeUnit lowercases and trims a unit label for table lookup
func NormalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// ConsumptionEvent is a historical remove-action read from the event log.
// Read-only.
type ConsumptionEvent struct {
	ItemName  string
	CreatedAt time.Time
}

// ConsumptionResult summarizes one FIFO consumption run
type ConsumptionResult struct {
	ConsumedItems     []string `json:"consumed_items"`
	InsufficientItems []string `json:"insufficient_items"`
}

// Outcome classifies the result into one of the four mutually exclusive
// messaging branches callers must handle.
func (r ConsumptionResult) Outcome() Outcome {
	switch {
	case len(r.ConsumedItems) > 0 && len(r.InsufficientItems) == 0:
		return OutcomeSuccess
	case len(r.ConsumedItems) > 0 && len(r.InsufficientItems) > 0:
		return OutcomePartial
	case len(r.ConsumedItems) == 0 && len(r.InsufficientItems) > 0:
		return OutcomeFailure
	default:
		return OutcomeEmpty
	}
}

// Outcome is the messaging branch of a consumption run
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePartial Outcome = "partial"
	OutcomeFailure Outcome = "failure"
	OutcomeEmpty   Outcome = "empty"
)

// LowStockAlert warns that an item is projected to run out soon
type LowStockAlert struct {
	ItemName          string  `json:"item_name"`
	CurrentAmount     float64 `json:"current_amount"`
	Unit              string  `json:"unit"`
	RecommendedAmount float64 `json:"recommended_amount"`
	DaysUntilOut      float64 `json:"days_until_out"`
}

// Priority of a shopping recommendation
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ShoppingRecommendation suggests repurchasing an item that is out of stock
type ShoppingRecommendation struct {
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	Reason   string   `json:"reason"`
	Priority Priority `json:"priority"`
}
