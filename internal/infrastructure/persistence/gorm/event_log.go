package gorm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pantrysage/v1/internal/domain/inventory"
	"github.com/pantrysage/v1/internal/ports/outbound"
	"gorm.io/gorm"
)

// EventLog implements the append-only action log using GORM
type EventLog struct {
	db *gorm.DB
}

// NewEventLog creates a new event log
func NewEventLog(db *gorm.DB) outbound.EventLog {
	return &EventLog{db: db}
}

// Append records one add/remove action
func (l *EventLog) Append(ctx context.Context, userID uuid.UUID, actionType outbound.ActionType, itemName string) error {
	entry := &ActionLogModel{
		ID:         uuid.New(),
		UserID:     userID,
		ActionType: string(actionType),
		ItemName:   itemName,
		CreatedAt:  time.Now(),
	}

	if result := l.db.WithContext(ctx).Create(entry); result.Error != nil {
		return result.Error
	}
	return nil
}

// ListRecent returns the newest entries of one action type, ordered by
// creation time descending
func (l *EventLog) ListRecent(ctx context.Context, userID uuid.UUID, actionType outbound.ActionType, limit int) ([]inventory.ConsumptionEvent, error) {
	var models []ActionLogModel

	result := l.db.WithContext(ctx).
		Where("user_id = ? AND action_type = ?", userID, string(actionType)).
		Order("created_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	events := make([]inventory.ConsumptionEvent, len(models))
	for i, model := range models {
		events[i] = inventory.ConsumptionEvent{
			ItemName:  model.ItemName,
			CreatedAt: model.CreatedAt,
		}
	}
	return events, nil
}
