// Package notify delivers consumption result messages to users. Sinks
// receive one message per consumption run together with its outcome
// classification, so each transport can decide how loudly to present it.
package notify

import (
	"context"

	"github.com/pantrysage/v1/internal/domain/inventory"
	"go.uber.org/zap"
)

// LogSink writes result messages to the structured log. It is the
// fallback sink and always stays registered so every run leaves a trace.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a log-backed notification sink
func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("notify")}
}

// Notify logs the message at a level matching the outcome
func (s *LogSink) Notify(ctx context.Context, kind inventory.Outcome, message string) error {
	switch kind {
	case inventory.OutcomeSuccess:
		s.logger.Info("Consumption completed", zap.String("message", message))
	case inventory.OutcomePartial:
		s.logger.Warn("Consumption partially completed", zap.String("message", message))
	case inventory.OutcomeFailure, inventory.OutcomeEmpty:
		s.logger.Warn("Consumption found no stock", zap.String("message", message))
	default:
		s.logger.Info("Consumption result", zap.String("message", message))
	}
	return nil
}
