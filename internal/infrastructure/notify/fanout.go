package notify

import (
	"context"

	"github.com/pantrysage/v1/internal/domain/inventory"
	"github.com/pantrysage/v1/internal/ports/outbound"
)

// Fanout delivers each message to every registered sink. Delivery is
// best effort; the first error is returned after all sinks ran.
type Fanout struct {
	sinks []outbound.NotificationSink
}

// NewFanout creates a fan-out sink over the given sinks
func NewFanout(sinks ...outbound.NotificationSink) *Fanout {
	return &Fanout{sinks: sinks}
}

// Notify forwards the message to all sinks
func (f *Fanout) Notify(ctx context.Context, kind inventory.Outcome, message string) error {
	var firstErr error
	for _, sink := range f.sinks {
		if err := sink.Notify(ctx, kind, message); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
