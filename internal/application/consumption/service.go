// Package consumption implements the FIFO meal-consumption use case: given
// a meal's ingredient list, deplete matching raw-material inventory in
// soonest-expiry-first order and report what succeeded.
package consumption

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pantrysage/v1/internal/domain/inventory"
	"github.com/pantrysage/v1/internal/domain/matching"
	"github.com/pantrysage/v1/internal/domain/measurement"
	"github.com/pantrysage/v1/internal/infrastructure/monitoring"
	"github.com/pantrysage/v1/internal/ports/inbound"
	"github.com/pantrysage/v1/internal/ports/outbound"
	"github.com/pantrysage/v1/pkg/errors"
	"go.uber.org/zap"
)

// Service implements the consumption use case
type Service struct {
	store      outbound.InventoryRepository
	eventLog   outbound.EventLog
	notifier   outbound.NotificationSink
	prediction inbound.PredictionService
	metrics    *monitoring.Metrics
	logger     *zap.Logger
}

// NewService creates a new consumption service
func NewService(
	store outbound.InventoryRepository,
	eventLog outbound.EventLog,
	notifier outbound.NotificationSink,
	prediction inbound.PredictionService,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) inbound.ConsumptionService {
	return &Service{
		store:      store,
		eventLog:   eventLog,
		notifier:   notifier,
		prediction: prediction,
		metrics:    metrics,
		logger:     logger.Named("consumption-service"),
	}
}

// ConsumeMeal runs one FIFO consumption pass over the inventory. It mutates
// the store as it goes and is not re-entrant: invoking it twice for the
// same meal double-consumes. Prior writes are not rolled back when a later
// ingredient step fails.
func (s *Service) ConsumeMeal(ctx context.Context, cmd inbound.ConsumeMealCommand) (*inventory.ConsumptionResult, error) {
	s.logger.Info("Consuming meal",
		zap.String("user_id", cmd.UserID.String()),
		zap.String("meal", cmd.MealName),
		zap.Int("ingredients", len(cmd.Ingredients)),
	)

	// Reject malformed input before any store mutation happens.
	ingredients := make([]inventory.Ingredient, len(cmd.Ingredients))
	for i, ing := range cmd.Ingredients {
		ingredients[i] = inventory.Ingredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     inventory.NormalizeUnit(ing.Unit),
			Notes:    ing.Notes,
		}
		if err := ingredients[i].Validate(); err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("ingredient %d: %v", i, err))
		}
	}

	timer := s.metrics.ConsumptionTimer()
	defer timer.ObserveDuration()

	result := &inventory.ConsumptionResult{
		ConsumedItems:     []string{},
		InsufficientItems: []string{},
	}

	for _, ingredient := range ingredients {
		if err := s.consumeIngredient(ctx, cmd.UserID, ingredient, result); err != nil {
			// Prior writes stand; surface the failed step.
			s.metrics.RecordConsumptionRun("error")
			return nil, err
		}
	}

	outcome := result.Outcome()
	s.metrics.RecordConsumptionRun(string(outcome))

	if err := s.notifier.Notify(ctx, outcome, s.resultMessage(cmd.MealName, outcome, result)); err != nil {
		s.logger.Error("Failed to deliver consumption notification",
			zap.String("outcome", string(outcome)),
			zap.Error(err),
		)
	}

	if s.prediction != nil {
		if err := s.prediction.InvalidateRecommendations(ctx, cmd.UserID); err != nil {
			s.logger.Warn("Failed to invalidate recommendation cache", zap.Error(err))
		}
	}

	s.logger.Info("Meal consumed",
		zap.String("outcome", string(outcome)),
		zap.Strings("consumed", result.ConsumedItems),
		zap.Strings("insufficient", result.InsufficientItems),
	)

	return result, nil
}

// consumeIngredient depletes inventory for a single ingredient, oldest
// expiry first. A partially satisfied ingredient still counts as
// insufficient.
func (s *Service) consumeIngredient(ctx context.Context, userID uuid.UUID, ingredient inventory.Ingredient, result *inventory.ConsumptionResult) error {
	matches, err := s.matchingItems(ctx, userID, ingredient.Name)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		result.InsufficientItems = append(result.InsufficientItems, ingredient.Name)
		return nil
	}

	// Soonest expiry is consumed first. This is a freshness-driven FIFO,
	// not insertion order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].EatByDate().Before(matches[j].EatByDate())
	})

	remaining := ingredient.Quantity
	consumedAny := false

	for _, candidate := range matches {
		if remaining <= 0 {
			break
		}

		// The snapshot may be stale by the time this candidate is
		// reached: an earlier step, or an external writer, may have
		// changed or removed it. Re-read before touching it.
		current, err := s.store.FindByID(ctx, candidate.ID())
		if err != nil {
			if stderrors.Is(err, inventory.ErrItemNotFound) {
				continue
			}
			return errors.NewDatabaseError("re-read inventory item", err)
		}
		if current == nil || current.Amount() <= 0 {
			continue
		}

		if !measurement.AreCompatible(current.Unit(), ingredient.Unit) {
			continue
		}

		available, ok := measurement.Convert(current.Amount(), current.Unit(), ingredient.Unit)
		if !ok {
			continue
		}

		consumeQty := math.Min(remaining, available)

		consumedInItemUnit, ok := measurement.Convert(consumeQty, ingredient.Unit, current.Unit())
		if !ok {
			// Should not occur given the compatibility check above.
			continue
		}

		depleted, err := current.Deduct(consumedInItemUnit)
		if err != nil {
			return errors.Wrap(err, "deduct stock")
		}

		if depleted {
			if err := s.store.Delete(ctx, current.ID()); err != nil {
				return errors.NewDatabaseError("delete depleted item", err)
			}
		} else {
			if err := s.store.Update(ctx, current); err != nil {
				return errors.NewDatabaseError("persist consumed item", err)
			}
		}

		// The action log feeds the predictor. Best effort: a failed
		// append never aborts the run.
		if err := s.eventLog.Append(ctx, userID, outbound.ActionRemove, current.Name()); err != nil {
			s.logger.Warn("Failed to append consumption event",
				zap.String("item", current.Name()),
				zap.Error(err),
			)
		}

		remaining -= consumeQty
		consumedAny = true
	}

	if consumedAny && remaining <= 0 {
		result.ConsumedItems = append(result.ConsumedItems,
			fmt.Sprintf("%s (%s %s)", ingredient.Name, formatQuantity(ingredient.Quantity), ingredient.Unit))
	} else {
		// Nothing consumed, or only part of the requested quantity.
		result.InsufficientItems = append(result.InsufficientItems, ingredient.Name)
		if consumedAny {
			result.ConsumedItems = append(result.ConsumedItems,
				fmt.Sprintf("%s (%s %s)", ingredient.Name, formatQuantity(ingredient.Quantity-remaining), ingredient.Unit))
		}
	}

	return nil
}

// matchingItems lists raw-material items whose name plausibly is the
// ingredient. The store returns a fresh snapshot on every call.
func (s *Service) matchingItems(ctx context.Context, userID uuid.UUID, ingredientName string) ([]*inventory.FoodItem, error) {
	label := inventory.LabelRawMaterial
	items, err := s.store.List(ctx, outbound.InventoryFilter{UserID: &userID, Label: &label})
	if err != nil {
		return nil, errors.NewDatabaseError("list inventory", err)
	}

	var matches []*inventory.FoodItem
	for _, item := range items {
		if matching.IsMatch(item.Name(), ingredientName) {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

// formatQuantity trims trailing zeros so messages read "12 item" rather
// than "12.000000 item".
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// resultMessage renders one of the four mutually exclusive messaging
// branches.
func (s *Service) resultMessage(mealName string, outcome inventory.Outcome, result *inventory.ConsumptionResult) string {
	switch outcome {
	case inventory.OutcomeSuccess:
		return fmt.Sprintf("Consumed from inventory: %s", strings.Join(result.ConsumedItems, ", "))
	case inventory.OutcomePartial:
		return fmt.Sprintf("Consumed: %s. Not enough in stock: %s",
			strings.Join(result.ConsumedItems, ", "),
			strings.Join(result.InsufficientItems, ", "))
	case inventory.OutcomeFailure:
		return fmt.Sprintf("Nothing consumed, missing ingredients: %s", strings.Join(result.InsufficientItems, ", "))
	default:
		if mealName != "" {
			return fmt.Sprintf("Meal %q moved to inventory", mealName)
		}
		return "Meal moved to inventory"
	}
}
