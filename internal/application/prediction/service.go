// Package prediction turns historical remove-events into forward-looking
// stock signals: low-stock alerts for items about to run out and shopping
// recommendations for items already gone.
package prediction

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pantrysage/v1/internal/domain/inventory"
	"github.com/pantrysage/v1/internal/infrastructure/monitoring"
	"github.com/pantrysage/v1/internal/ports/inbound"
	"github.com/pantrysage/v1/internal/ports/outbound"
	"github.com/pantrysage/v1/pkg/errors"
	"go.uber.org/zap"
)

const (
	// defaultGapDays is the assumed consumption cadence for items observed
	// only once: weekly by convention.
	defaultGapDays = 7.0

	// eventWindow caps how much history one refresh reads
	eventWindow = 500

	// Alert policy: items consumed at least twice, projected to run out in
	// under three days, with stock still on hand.
	alertMinEvents   = 2
	alertHorizonDays = 3.0

	// Recommendation policy: items consumed at least three times that are
	// fully out of stock. The thresholds differ from the alert policy on
	// purpose; the two signals trigger on different stock states.
	recommendMinEvents   = 3
	highPriorityMinCount = 5 // strictly greater than this is high
)

// Pattern aggregates the removal history of one normalized item name
type Pattern struct {
	Count       int
	SortedDates []time.Time
}

// Service implements the prediction use case
type Service struct {
	store    outbound.InventoryRepository
	eventLog outbound.EventLog
	cache    outbound.CacheRepository
	cacheTTL time.Duration
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewService creates a new prediction service
func NewService(
	store outbound.InventoryRepository,
	eventLog outbound.EventLog,
	cache outbound.CacheRepository,
	cacheTTL time.Duration,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) inbound.PredictionService {
	return &Service{
		store:    store,
		eventLog: eventLog,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		logger:   logger.Named("prediction-service"),
	}
}

// RefreshRecommendations computes alerts and shopping recommendations for
// the user's current inventory snapshot. Results are cached with an expiry
// and invalidated on every inventory mutation; a cached report is only ever
// served within its TTL.
func (s *Service) RefreshRecommendations(ctx context.Context, userID uuid.UUID) (*inbound.StockReport, error) {
	if cached := s.cachedReport(ctx, userID); cached != nil {
		s.metrics.RecordCacheHit("recommendations")
		return cached, nil
	}
	s.metrics.RecordCacheMiss("recommendations")

	events, err := s.eventLog.ListRecent(ctx, userID, outbound.ActionRemove, eventWindow)
	if err != nil {
		return nil, errors.NewDatabaseError("list consumption events", err)
	}

	items, err := s.store.List(ctx, outbound.InventoryFilter{UserID: &userID})
	if err != nil {
		return nil, errors.NewDatabaseError("list inventory", err)
	}

	patterns := BuildPatterns(events)
	stock := totalStockByName(items)

	report := &inbound.StockReport{
		Alerts:          []inventory.LowStockAlert{},
		Recommendations: []inventory.ShoppingRecommendation{},
		GeneratedAt:     time.Now(),
	}

	for name, pattern := range patterns {
		current := stock[name]

		if alert, ok := lowStockAlert(name, pattern, current); ok {
			report.Alerts = append(report.Alerts, alert)
		}
		if rec, ok := shoppingRecommendation(name, pattern, current); ok {
			report.Recommendations = append(report.Recommendations, rec)
		}
	}

	// Deterministic output order for callers and tests.
	sort.Slice(report.Alerts, func(i, j int) bool {
		return report.Alerts[i].ItemName < report.Alerts[j].ItemName
	})
	sort.Slice(report.Recommendations, func(i, j int) bool {
		return report.Recommendations[i].Name < report.Recommendations[j].Name
	})

	s.metrics.RecordPredictorRefresh()
	s.cacheReport(ctx, userID, report)

	s.logger.Info("Recommendations refreshed",
		zap.String("user_id", userID.String()),
		zap.Int("patterns", len(patterns)),
		zap.Int("alerts", len(report.Alerts)),
		zap.Int("recommendations", len(report.Recommendations)),
	)

	return report, nil
}

// InvalidateRecommendations drops the cached report after any inventory
// mutation
func (s *Service) InvalidateRecommendations(ctx context.Context, userID uuid.UUID) error {
	return s.cache.Delete(ctx, reportCacheKey(userID))
}

// BuildPatterns groups remove-events by lowercased item name with dates
// sorted ascending
func BuildPatterns(events []inventory.ConsumptionEvent) map[string]Pattern {
	grouped := make(map[string][]time.Time)
	for _, event := range events {
		name := strings.ToLower(strings.TrimSpace(event.ItemName))
		if name == "" {
			continue
		}
		grouped[name] = append(grouped[name], event.CreatedAt)
	}

	patterns := make(map[string]Pattern, len(grouped))
	for name, dates := range grouped {
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		patterns[name] = Pattern{Count: len(dates), SortedDates: dates}
	}
	return patterns
}

// ConsumptionRate returns the removal rate in events per day. A single
// observation is treated as weekly cadence.
func ConsumptionRate(p Pattern) float64 {
	if p.Count <= 1 {
		return float64(p.Count) / defaultGapDays
	}

	span := p.SortedDates[len(p.SortedDates)-1].Sub(p.SortedDates[0])
	avgGapDays := span.Hours() / 24 / float64(p.Count-1)
	if avgGapDays <= 0 {
		// All events on the same instant; fall back to the default
		// cadence rather than dividing by zero.
		avgGapDays = defaultGapDays
	}
	return float64(p.Count) / avgGapDays
}

// DaysUntilOut projects how many days the given stock lasts at the given
// rate. A non-positive rate means the stock never runs out.
func DaysUntilOut(totalAmount, rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	return totalAmount / rate
}

type stockTotal struct {
	amount float64
	unit   string
}

// totalStockByName sums current amounts per normalized item name. The unit
// reported is the first item's unit for that name.
func totalStockByName(items []*inventory.FoodItem) map[string]stockTotal {
	totals := make(map[string]stockTotal)
	for _, item := range items {
		name := strings.ToLower(strings.TrimSpace(item.Name()))
		total, seen := totals[name]
		if !seen {
			total.unit = item.Unit()
		}
		total.amount += item.Amount()
		totals[name] = total
	}
	return totals
}

func lowStockAlert(name string, p Pattern, stock stockTotal) (inventory.LowStockAlert, bool) {
	if p.Count < alertMinEvents || stock.amount <= 0 {
		return inventory.LowStockAlert{}, false
	}

	rate := ConsumptionRate(p)
	days := DaysUntilOut(stock.amount, rate)
	if math.IsInf(days, 1) || days >= alertHorizonDays {
		return inventory.LowStockAlert{}, false
	}

	return inventory.LowStockAlert{
		ItemName:          name,
		CurrentAmount:     stock.amount,
		Unit:              stock.unit,
		RecommendedAmount: math.Ceil(rate * 7), // one week's projected need
		DaysUntilOut:      days,
	}, true
}

func shoppingRecommendation(name string, p Pattern, stock stockTotal) (inventory.ShoppingRecommendation, bool) {
	if p.Count < recommendMinEvents || stock.amount != 0 {
		return inventory.ShoppingRecommendation{}, false
	}

	priority := inventory.PriorityMedium
	if p.Count > highPriorityMinCount {
		priority = inventory.PriorityHigh
	}

	unit := stock.unit
	if unit == "" {
		unit = inventory.UnitItem
	}

	return inventory.ShoppingRecommendation{
		Name:     name,
		Quantity: math.Ceil(float64(p.Count) / 2),
		Unit:     unit,
		Reason:   fmt.Sprintf("consumed %d times recently, currently out of stock", p.Count),
		Priority: priority,
	}, true
}

func reportCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("stockreport:%s", userID.String())
}

func (s *Service) cachedReport(ctx context.Context, userID uuid.UUID) *inbound.StockReport {
	data, err := s.cache.Get(ctx, reportCacheKey(userID))
	if err != nil || len(data) == 0 {
		return nil
	}

	var report inbound.StockReport
	if err := json.Unmarshal(data, &report); err != nil {
		s.logger.Warn("Discarding undecodable cached report", zap.Error(err))
		return nil
	}
	return &report
}

func (s *Service) cacheReport(ctx context.Context, userID uuid.UUID, report *inbound.StockReport) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, reportCacheKey(userID), data, s.cacheTTL); err != nil {
		s.logger.Warn("Failed to cache stock report", zap.Error(err))
	}
}
