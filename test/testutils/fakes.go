package testutils

import (
	"context"
	"sync"

	"github.com/pantrysage/v1/internal/domain/inventory"
)

// RecordingSink captures every notification for inspection
type RecordingSink struct {
	mutex    sync.Mutex
	Kinds    []inventory.Outcome
	Messages []string
}

// Notify records the notification
func (s *RecordingSink) Notify(ctx context.Context, kind inventory.Outcome, message string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Kinds = append(s.Kinds, kind)
	s.Messages = append(s.Messages, message)
	return nil
}

// LastMessage returns the most recent message, or empty
func (s *RecordingSink) LastMessage() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if len(s.Messages) == 0 {
		return ""
	}
	return s.Messages[len(s.Messages)-1]
}

// LastKind returns the most recent outcome kind, or empty
func (s *RecordingSink) LastKind() inventory.Outcome {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if len(s.Kinds) == 0 {
		return ""
	}
	return s.Kinds[len(s.Kinds)-1]
}
