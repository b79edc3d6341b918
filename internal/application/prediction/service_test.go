package prediction

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/pantrysage/v1/internal/domain/inventory"
	"github.com/pantrysage/v1/internal/infrastructure/monitoring"
	"github.com/pantrysage/v1/internal/infrastructure/persistence/memory"
	"github.com/pantrysage/v1/internal/ports/inbound"
	"github.com/pantrysage/v1/internal/ports/outbound"
	"github.com/pantrysage/v1/test/testutils"
)

// PredictionServiceTestSuite exercises pattern building, the two signal
// policies, and the report cache
type PredictionServiceTestSuite struct {
	suite.Suite
	userID uuid.UUID

	store    *memory.InventoryRepository
	eventLog *memory.EventLog
	service  inbound.PredictionService
}

func (suite *PredictionServiceTestSuite) SetupTest() {
	suite.userID = uuid.New()
	suite.store = memory.NewInventoryRepository()
	suite.eventLog = memory.NewEventLog()
	suite.service = NewService(
		suite.store,
		suite.eventLog,
		memory.NewCacheRepository(),
		5*time.Minute,
		monitoring.NewMetrics(),
		zap.NewNop(),
	)
}

// seedRemovals spaces count removal events gapDays apart, ending now
func (suite *PredictionServiceTestSuite) seedRemovals(name string, count int, gapDays float64) {
	for i := 0; i < count; i++ {
		offset := time.Duration(float64(count-1-i) * gapDays * 24 * float64(time.Hour))
		suite.eventLog.AppendAt(suite.userID, outbound.ActionRemove, name, time.Now().Add(-offset))
	}
}

func (suite *PredictionServiceTestSuite) seedStock(name string, amount float64, unit string) {
	item := testutils.NewFoodItemBuilder().
		WithUser(suite.userID).
		WithName(name).
		WithAmount(amount, unit).
		Build()
	require.NoError(suite.T(), suite.store.Create(context.Background(), item))
}

func (suite *PredictionServiceTestSuite) refresh() *inbound.StockReport {
	report, err := suite.service.RefreshRecommendations(context.Background(), suite.userID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), report)
	return report
}

func (suite *PredictionServiceTestSuite) TestLowStockAlerts() {
	suite.Run("FastConsumptionWithLowStock_ShouldAlert", func() {
		suite.SetupTest()
		// Four removals two days apart: one per two days.
		suite.seedRemovals("milk", 4, 2)
		suite.seedStock("milk", 1, "l")

		report := suite.refresh()

		require.Len(suite.T(), report.Alerts, 1)
		alert := report.Alerts[0]
		assert.Equal(suite.T(), "milk", alert.ItemName)
		assert.Equal(suite.T(), 1.0, alert.CurrentAmount)
		assert.Equal(suite.T(), "l", alert.Unit)
		assert.Less(suite.T(), alert.DaysUntilOut, 3.0)
		// One week of projected need at the observed rate of 2 per day.
		assert.Equal(suite.T(), 14.0, alert.RecommendedAmount)
	})

	suite.Run("AmpleStock_ShouldNotAlert", func() {
		suite.SetupTest()
		suite.seedRemovals("milk", 4, 2)
		suite.seedStock("milk", 50, "l")

		report := suite.refresh()

		assert.Empty(suite.T(), report.Alerts)
	})

	suite.Run("SingleObservation_ShouldNotAlert", func() {
		suite.SetupTest()
		suite.seedRemovals("milk", 1, 0)
		suite.seedStock("milk", 0.5, "l")

		report := suite.refresh()

		assert.Empty(suite.T(), report.Alerts)
	})

	suite.Run("OutOfStock_ShouldNotAlert", func() {
		suite.SetupTest()
		suite.seedRemovals("milk", 4, 1)

		report := suite.refresh()

		// No stock on hand is recommendation territory, not alert territory.
		assert.Empty(suite.T(), report.Alerts)
	})
}

func (suite *PredictionServiceTestSuite) TestShoppingRecommendations() {
	suite.Run("FrequentlyConsumedAndOut_ShouldRecommend", func() {
		suite.SetupTest()
		suite.seedRemovals("rice", 5, 3)

		report := suite.refresh()

		require.Len(suite.T(), report.Recommendations, 1)
		rec := report.Recommendations[0]
		assert.Equal(suite.T(), "rice", rec.Name)
		assert.Equal(suite.T(), 3.0, rec.Quantity, "half the observed count, rounded up")
		assert.Equal(suite.T(), inventory.PriorityMedium, rec.Priority)
	})

	suite.Run("MoreThanFiveRemovals_ShouldBeHighPriority", func() {
		suite.SetupTest()
		suite.seedRemovals("rice", 6, 2)

		report := suite.refresh()

		require.Len(suite.T(), report.Recommendations, 1)
		assert.Equal(suite.T(), inventory.PriorityHigh, report.Recommendations[0].Priority)
	})

	suite.Run("StockStillOnHand_ShouldNotRecommend", func() {
		suite.SetupTest()
		suite.seedRemovals("rice", 5, 3)
		suite.seedStock("rice", 100, "g")

		report := suite.refresh()

		assert.Empty(suite.T(), report.Recommendations)
	})

	suite.Run("TooFewRemovals_ShouldNotRecommend", func() {
		suite.SetupTest()
		suite.seedRemovals("rice", 2, 3)

		report := suite.refresh()

		assert.Empty(suite.T(), report.Recommendations)
	})

	suite.Run("OutputOrder_ShouldBeAlphabetical", func() {
		suite.SetupTest()
		suite.seedRemovals("rice", 3, 3)
		suite.seedRemovals("beans", 3, 3)
		suite.seedRemovals("lentils", 3, 3)

		report := suite.refresh()

		require.Len(suite.T(), report.Recommendations, 3)
		assert.Equal(suite.T(), "beans", report.Recommendations[0].Name)
		assert.Equal(suite.T(), "lentils", report.Recommendations[1].Name)
		assert.Equal(suite.T(), "rice", report.Recommendations[2].Name)
	})
}

func (suite *PredictionServiceTestSuite) TestRateModel() {
	suite.Run("SingleEvent_ShouldAssumeWeeklyCadence", func() {
		p := Pattern{Count: 1, SortedDates: []time.Time{time.Now()}}

		assert.InDelta(suite.T(), 1.0/7.0, ConsumptionRate(p), 1e-9)
	})

	suite.Run("EvenlySpacedEvents_ShouldYieldInverseGap", func() {
		base := time.Now()
		p := Pattern{Count: 3, SortedDates: []time.Time{
			base.Add(-4 * 24 * time.Hour),
			base.Add(-2 * 24 * time.Hour),
			base,
		}}

		// Three events over four days, average gap two days.
		assert.InDelta(suite.T(), 1.5, ConsumptionRate(p), 1e-9)
	})

	suite.Run("AllEventsAtSameInstant_ShouldFallBackToWeekly", func() {
		now := time.Now()
		p := Pattern{Count: 3, SortedDates: []time.Time{now, now, now}}

		assert.InDelta(suite.T(), 3.0/7.0, ConsumptionRate(p), 1e-9)
	})

	suite.Run("ZeroRate_ShouldNeverRunOut", func() {
		assert.True(suite.T(), DaysUntilOut(10, 0) > 1e15)
	})
}

func (suite *PredictionServiceTestSuite) TestReportCache() {
	suite.Run("SecondRefresh_ShouldServeCachedReport", func() {
		suite.SetupTest()
		suite.seedRemovals("rice", 5, 3)

		first := suite.refresh()
		second := suite.refresh()

		assert.True(suite.T(), second.GeneratedAt.Equal(first.GeneratedAt),
			"cached report should be returned verbatim")
	})

	suite.Run("Invalidate_ShouldForceRecomputation", func() {
		suite.SetupTest()
		suite.seedRemovals("rice", 5, 3)

		first := suite.refresh()
		require.NoError(suite.T(), suite.service.InvalidateRecommendations(context.Background(), suite.userID))

		// Restocking between refreshes changes the outcome.
		suite.seedStock("rice", 500, "g")
		second := suite.refresh()

		assert.Len(suite.T(), first.Recommendations, 1)
		assert.Empty(suite.T(), second.Recommendations)
	})
}

func TestPredictionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PredictionServiceTestSuite))
}

func BenchmarkBuildPatterns(b *testing.B) {
	events := make([]inventory.ConsumptionEvent, 500)
	names := []string{"milk", "egg", "rice", "butter", "flour"}
	for i := range events {
		events[i] = inventory.ConsumptionEvent{
			ItemName:  names[i%len(names)],
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Hour),
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BuildPatterns(events)
	}
}
