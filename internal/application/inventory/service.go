// Package inventory provides the application layer for pantry inventory
// management: CRUD over food items, expiry queries, and the action-log and
// cache bookkeeping every mutation carries.
package inventory

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	domain "github.com/pantrysage/v1/internal/domain/inventory"
	"github.com/pantrysage/v1/internal/ports/inbound"
	"github.com/pantrysage/v1/internal/ports/outbound"
	"github.com/pantrysage/v1/pkg/errors"
	"go.uber.org/zap"
)

// Service implements the inventory use cases
type Service struct {
	store      outbound.InventoryRepository
	eventLog   outbound.EventLog
	prediction inbound.PredictionService
	logger     *zap.Logger
}

// NewService creates a new inventory service
func NewService(
	store outbound.InventoryRepository,
	eventLog outbound.EventLog,
	prediction inbound.PredictionService,
	logger *zap.Logger,
) inbound.InventoryService {
	return &Service{
		store:      store,
		eventLog:   eventLog,
		prediction: prediction,
		logger:     logger.Named("inventory-service"),
	}
}

// ListItems returns every item the user owns
func (s *Service) ListItems(ctx context.Context, userID uuid.UUID) ([]inbound.FoodItemDTO, error) {
	items, err := s.store.List(ctx, outbound.InventoryFilter{UserID: &userID})
	if err != nil {
		return nil, errors.NewDatabaseError("list inventory", err)
	}
	return toDTOs(items), nil
}

// ListExpiringSoon returns items whose eat-by date falls within the window
func (s *Service) ListExpiringSoon(ctx context.Context, userID uuid.UUID, withinDays int) ([]inbound.FoodItemDTO, error) {
	if withinDays <= 0 {
		return nil, errors.NewValidationError("withinDays must be greater than 0")
	}

	items, err := s.store.FindExpiringSoon(ctx, time.Duration(withinDays)*24*time.Hour)
	if err != nil {
		return nil, errors.NewDatabaseError("list expiring items", err)
	}

	var owned []*domain.FoodItem
	for _, item := range items {
		if item.UserID() == userID {
			owned = append(owned, item)
		}
	}
	return toDTOs(owned), nil
}

// CreateItem adds a new item and records the add action
func (s *Service) CreateItem(ctx context.Context, cmd inbound.CreateItemCommand) (*inbound.FoodItemDTO, error) {
	s.logger.Info("Creating inventory item",
		zap.String("user_id", cmd.UserID.String()),
		zap.String("name", cmd.Name),
	)

	item, err := domain.NewFoodItem(cmd.UserID, cmd.Name, cmd.Amount, cmd.Unit, domain.Label(cmd.Label), cmd.EatByDate, cmd.FreshnessDays)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.StorageLocation != "" {
		item.SetStorageLocation(cmd.StorageLocation)
	}
	if cmd.Notes != "" {
		item.SetNotes(cmd.Notes)
	}

	if err := s.store.Create(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("create item", err)
	}

	if err := s.eventLog.Append(ctx, cmd.UserID, outbound.ActionAdd, item.Name()); err != nil {
		s.logger.Warn("Failed to append add event", zap.Error(err))
	}

	s.invalidate(ctx, cmd.UserID)

	dto := toDTO(item)
	return &dto, nil
}

// UpdateItem edits an existing item
func (s *Service) UpdateItem(ctx context.Context, cmd inbound.UpdateItemCommand) (*inbound.FoodItemDTO, error) {
	item, err := s.store.FindByID(ctx, cmd.ItemID)
	if err != nil {
		if stderrors.Is(err, domain.ErrItemNotFound) {
			return nil, errors.NewItemNotFoundError(cmd.ItemID.String())
		}
		return nil, errors.NewDatabaseError("find item", err)
	}
	if item.UserID() != cmd.UserID {
		return nil, errors.NewForbiddenError("item belongs to another user")
	}

	if cmd.Name != nil {
		if err := item.Rename(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Amount != nil {
		if err := item.Restock(*cmd.Amount); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.StorageLocation != nil {
		item.SetStorageLocation(*cmd.StorageLocation)
	}
	if cmd.Notes != nil {
		item.SetNotes(*cmd.Notes)
	}

	if err := s.store.Update(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("update item", err)
	}

	s.invalidate(ctx, cmd.UserID)

	dto := toDTO(item)
	return &dto, nil
}

// RemoveItem deletes an item and records the remove action
func (s *Service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.store.FindByID(ctx, itemID)
	if err != nil {
		if stderrors.Is(err, domain.ErrItemNotFound) {
			return errors.NewItemNotFoundError(itemID.String())
		}
		return errors.NewDatabaseError("find item", err)
	}
	if item.UserID() != userID {
		return errors.NewForbiddenError("item belongs to another user")
	}

	if err := s.store.Delete(ctx, itemID); err != nil {
		return errors.NewDatabaseError("delete item", err)
	}

	if err := s.eventLog.Append(ctx, userID, outbound.ActionRemove, item.Name()); err != nil {
		s.logger.Warn("Failed to append remove event", zap.Error(err))
	}

	s.invalidate(ctx, userID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.prediction == nil {
		return
	}
	if err := s.prediction.InvalidateRecommendations(ctx, userID); err != nil {
		s.logger.Warn("Failed to invalidate recommendation cache", zap.Error(err))
	}
}

func toDTO(item *domain.FoodItem) inbound.FoodItemDTO {
	return inbound.FoodItemDTO{
		ID:              item.ID(),
		Name:            item.Name(),
		Amount:          item.Amount(),
		Unit:            item.Unit(),
		Label:           string(item.Label()),
		EatByDate:       item.EatByDate(),
		FreshnessDays:   item.FreshnessDays(),
		StorageLocation: item.StorageLocation(),
		Notes:           item.Notes(),
		Tags:            item.Tags(),
	}
}

func toDTOs(items []*domain.FoodItem) []inbound.FoodItemDTO {
	dtos := make([]inbound.FoodItemDTO, len(items))
	for i, item := range items {
		dtos[i] = toDTO(item)
	}
	return dtos
}
