package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pantrysage/v1/internal/domain/inventory"
	"github.com/pantrysage/v1/internal/ports/outbound"
)

type logEntry struct {
	userID     uuid.UUID
	actionType outbound.ActionType
	itemName   string
	createdAt  time.Time
}

// EventLog implements the append-only action log in memory
type EventLog struct {
	entries []logEntry
	mutex   sync.RWMutex
}

// NewEventLog creates a new in-memory event log
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Append records one add/remove action
func (l *EventLog) Append(ctx context.Context, userID uuid.UUID, actionType outbound.ActionType, itemName string) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.entries = append(l.entries, logEntry{
		userID:     userID,
		actionType: actionType,
		itemName:   itemName,
		createdAt:  time.Now(),
	})
	return nil
}

// AppendAt records an action with an explicit timestamp, for seeding
// historical data in tests.
func (l *EventLog) AppendAt(userID uuid.UUID, actionType outbound.ActionType, itemName string, createdAt time.Time) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.entries = append(l.entries, logEntry{
		userID:     userID,
		actionType: actionType,
		itemName:   itemName,
		createdAt:  createdAt,
	})
}

// ListRecent returns the newest entries of one action type, ordered by
// creation time descending
func (l *EventLog) ListRecent(ctx context.Context, userID uuid.UUID, actionType outbound.ActionType, limit int) ([]inventory.ConsumptionEvent, error) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	var events []inventory.ConsumptionEvent
	for _, entry := range l.entries {
		if entry.userID == userID && entry.actionType == actionType {
			events = append(events, inventory.ConsumptionEvent{
				ItemName:  entry.itemName,
				CreatedAt: entry.createdAt,
			})
		}
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
