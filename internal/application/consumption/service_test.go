package consumption

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

// ConsumptionServiceTestSuite exercises the FIFO consumption engine against
// the in-memory store
type ConsumptionServiceTestSuite struct {
	suite.Suite
	userID uuid.UUID

	store    *memory.InventoryRepository
	eventLog *memory.EventLog
	sink     *testutils.RecordingSink
	service  inbound.ConsumptionService
}

func (suite *ConsumptionServiceTestSuite) SetupTest() {
	suite.userID = uuid.New()
	suite.store = memory.NewInventoryRepository()
	suite.eventLog = memory.NewEventLog()
	suite.sink = &testutils.RecordingSink{}
	suite.service = NewService(
		suite.store,
		suite.eventLog,
		suite.sink,
		nil,
		monitoring.NewMetrics(),
		zap.NewNop(),
	)
}

func (suite *ConsumptionServiceTestSuite) seedItem(name string, amount float64, unit string, eatBy time.Time) *inventory.FoodItem {
	item := testutils.NewFoodItemBuilder().
		WithUser(suite.userID).
		WithName(name).
		WithAmount(amount, unit).
		WithEatByDate(eatBy).
		Build()
	require.NoError(suite.T(), suite.store.Create(context.Background(), item))
	return item
}

func (suite *ConsumptionServiceTestSuite) consume(ingredients ...inbound.IngredientCommand) *inventory.ConsumptionResult {
	result, err := suite.service.ConsumeMeal(context.Background(), inbound.ConsumeMealCommand{
		UserID:      suite.userID,
		MealName:    "dinner",
		Ingredients: ingredients,
	})
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), result)
	return result
}

func (suite *ConsumptionServiceTestSuite) TestFIFODepletion() {
	suite.Run("SpanningTwoItems_ShouldDepleteOldestFirst", func() {
		suite.SetupTest()
		older := suite.seedItem("egg", 10, "item", time.Now().AddDate(0, 0, 2))
		newer := suite.seedItem("egg", 10, "item", time.Now().AddDate(0, 0, 9))

		result := suite.consume(inbound.IngredientCommand{Name: "egg", Quantity: 12, Unit: "item"})

		// One aggregated entry for the whole ingredient.
		assert.Equal(suite.T(), []string{"egg (12 item)"}, result.ConsumedItems)
		assert.Empty(suite.T(), result.InsufficientItems)
		assert.Equal(suite.T(), inventory.OutcomeSuccess, result.Outcome())

		// Oldest carton is gone, the newer one holds the remainder.
		_, err := suite.store.FindByID(context.Background(), older.ID())
		assert.ErrorIs(suite.T(), err, inventory.ErrItemNotFound)

		remaining, err := suite.store.FindByID(context.Background(), newer.ID())
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 8.0, remaining.Amount())
	})

	suite.Run("ExpiryOrderBeatsInsertionOrder", func() {
		suite.SetupTest()
		later := suite.seedItem("milk", 1, "l", time.Now().AddDate(0, 0, 10))
		sooner := suite.seedItem("milk", 1, "l", time.Now().AddDate(0, 0, 1))

		suite.consume(inbound.IngredientCommand{Name: "milk", Quantity: 1, Unit: "l"})

		// The later-created but sooner-expiring carton was consumed.
		_, err := suite.store.FindByID(context.Background(), sooner.ID())
		assert.ErrorIs(suite.T(), err, inventory.ErrItemNotFound)

		untouched, err := suite.store.FindByID(context.Background(), later.ID())
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1.0, untouched.Amount())
	})

	suite.Run("EventLogReceivesOneEntryPerTouchedItem", func() {
		suite.SetupTest()
		suite.seedItem("egg", 10, "item", time.Now().AddDate(0, 0, 2))
		suite.seedItem("egg", 10, "item", time.Now().AddDate(0, 0, 9))

		suite.consume(inbound.IngredientCommand{Name: "egg", Quantity: 12, Unit: "item"})

		events, err := suite.eventLog.ListRecent(context.Background(), suite.userID, outbound.ActionRemove, 10)
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), events, 2)
	})
}

func (suite *ConsumptionServiceTestSuite) TestUnitHandling() {
	suite.Run("CrossUnitConsumption_ShouldConvert", func() {
		suite.SetupTest()
		flour := suite.seedItem("flour", 1, "kg", time.Now().AddDate(0, 1, 0))

		result := suite.consume(inbound.IngredientCommand{Name: "flour", Quantity: 300, Unit: "g"})

		assert.Equal(suite.T(), inventory.OutcomeSuccess, result.Outcome())

		remaining, err := suite.store.FindByID(context.Background(), flour.ID())
		require.NoError(suite.T(), err)
		assert.InDelta(suite.T(), 0.7, remaining.Amount(), 1e-9)
	})

	suite.Run("IncompatibleUnits_ShouldSkipItem", func() {
		suite.SetupTest()
		milk := suite.seedItem("milk", 1, "l", time.Now().AddDate(0, 0, 4))

		result := suite.consume(inbound.IngredientCommand{Name: "milk", Quantity: 200, Unit: "g"})

		// The only candidate cannot serve grams; nothing is consumed.
		assert.Equal(suite.T(), inventory.OutcomeFailure, result.Outcome())
		assert.Equal(suite.T(), []string{"milk"}, result.InsufficientItems)

		untouched, err := suite.store.FindByID(context.Background(), milk.ID())
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1.0, untouched.Amount())
	})

	suite.Run("AmountNeverGoesNegative", func() {
		suite.SetupTest()
		suite.seedItem("rice", 500, "g", time.Now().AddDate(0, 0, 30))

		suite.consume(inbound.IngredientCommand{Name: "rice", Quantity: 2, Unit: "kg"})

		items, err := suite.store.List(context.Background(), outbound.InventoryFilter{UserID: &suite.userID})
		require.NoError(suite.T(), err)
		for _, item := range items {
			assert.GreaterOrEqual(suite.T(), item.Amount(), 0.0)
		}
	})
}

func (suite *ConsumptionServiceTestSuite) TestResultContract() {
	suite.Run("MissingIngredient_ShouldBeFailure", func() {
		suite.SetupTest()

		result := suite.consume(inbound.IngredientCommand{Name: "butter", Quantity: 50, Unit: "g"})

		assert.Equal(suite.T(), inventory.OutcomeFailure, result.Outcome())
		assert.Equal(suite.T(), []string{"butter"}, result.InsufficientItems)
		assert.Empty(suite.T(), result.ConsumedItems)
		assert.Equal(suite.T(), inventory.OutcomeFailure, suite.sink.LastKind())
		assert.Contains(suite.T(), suite.sink.LastMessage(), "butter")
	})

	suite.Run("PartialStock_ShouldReportBothLists", func() {
		suite.SetupTest()
		suite.seedItem("egg", 5, "item", time.Now().AddDate(0, 0, 3))

		result := suite.consume(inbound.IngredientCommand{Name: "egg", Quantity: 12, Unit: "item"})

		// The ingredient shows up as insufficient and the partial draw is
		// still recorded.
		assert.Equal(suite.T(), inventory.OutcomePartial, result.Outcome())
		assert.Equal(suite.T(), []string{"egg"}, result.InsufficientItems)
		assert.Equal(suite.T(), []string{"egg (5 item)"}, result.ConsumedItems)

		// The drained item was removed, not left at zero.
		items, err := suite.store.List(context.Background(), outbound.InventoryFilter{UserID: &suite.userID})
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), items)
	})

	suite.Run("MixedIngredients_ShouldBePartial", func() {
		suite.SetupTest()
		suite.seedItem("egg", 10, "item", time.Now().AddDate(0, 0, 3))

		result := suite.consume(
			inbound.IngredientCommand{Name: "egg", Quantity: 2, Unit: "item"},
			inbound.IngredientCommand{Name: "butter", Quantity: 50, Unit: "g"},
		)

		assert.Equal(suite.T(), inventory.OutcomePartial, result.Outcome())
		assert.Equal(suite.T(), []string{"egg (2 item)"}, result.ConsumedItems)
		assert.Equal(suite.T(), []string{"butter"}, result.InsufficientItems)
		assert.Equal(suite.T(), inventory.OutcomePartial, suite.sink.LastKind())
	})

	suite.Run("NoIngredients_ShouldBeEmptyOutcome", func() {
		suite.SetupTest()

		result := suite.consume()

		assert.Equal(suite.T(), inventory.OutcomeEmpty, result.Outcome())
		assert.Equal(suite.T(), inventory.OutcomeEmpty, suite.sink.LastKind())
		assert.Contains(suite.T(), suite.sink.LastMessage(), "dinner")
	})

	suite.Run("InvalidIngredient_ShouldRejectBeforeMutation", func() {
		suite.SetupTest()
		egg := suite.seedItem("egg", 10, "item", time.Now().AddDate(0, 0, 3))

		_, err := suite.service.ConsumeMeal(context.Background(), inbound.ConsumeMealCommand{
			UserID: suite.userID,
			Ingredients: []inbound.IngredientCommand{
				{Name: "egg", Quantity: 2, Unit: "item"},
				{Name: "", Quantity: 1, Unit: "item"},
			},
		})
		require.Error(suite.T(), err)

		// The valid first ingredient was not consumed either.
		untouched, ferr := suite.store.FindByID(context.Background(), egg.ID())
		require.NoError(suite.T(), ferr)
		assert.Equal(suite.T(), 10.0, untouched.Amount())
	})
}

func (suite *ConsumptionServiceTestSuite) TestMatchingScope() {
	suite.Run("CookedMeals_ShouldNeverBeConsumedAsIngredients", func() {
		suite.SetupTest()
		leftover := testutils.NewFoodItemBuilder().
			WithUser(suite.userID).
			WithName("egg fried rice").
			WithAmount(2, "serving").
			WithLabel(inventory.LabelCookedMeal).
			Build()
		require.NoError(suite.T(), suite.store.Create(context.Background(), leftover))

		result := suite.consume(inbound.IngredientCommand{Name: "egg", Quantity: 1, Unit: "serving"})

		assert.Equal(suite.T(), inventory.OutcomeFailure, result.Outcome())
	})

	suite.Run("OtherUsersStock_ShouldBeInvisible", func() {
		suite.SetupTest()
		foreign := testutils.NewFoodItemBuilder().
			WithName("egg").
			WithAmount(10, "item").
			Build()
		require.NoError(suite.T(), suite.store.Create(context.Background(), foreign))

		result := suite.consume(inbound.IngredientCommand{Name: "egg", Quantity: 1, Unit: "item"})

		assert.Equal(suite.T(), inventory.OutcomeFailure, result.Outcome())
	})

	suite.Run("VariantName_ShouldMatchStock", func() {
		suite.SetupTest()
		suite.seedItem("tomatoes", 4, "item", time.Now().AddDate(0, 0, 5))

		result := suite.consume(inbound.IngredientCommand{Name: "tomato", Quantity: 2, Unit: "item"})

		assert.Equal(suite.T(), inventory.OutcomeSuccess, result.Outcome())
	})
}

func TestConsumptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConsumptionServiceTestSuite))
}
