package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// FoodItemTestSuite provides a test suite for the FoodItem entity
type FoodItemTestSuite struct {
	suite.Suite
	userID uuid.UUID
}

func (suite *FoodItemTestSuite) SetupSuite() {
	suite.userID = uuid.New()
}

func (suite *FoodItemTestSuite) newItem(name string, amount float64, unit string) *FoodItem {
	item, err := NewFoodItem(suite.userID, name, amount, unit, LabelRawMaterial, time.Now().AddDate(0, 0, 5), 5)
	require.NoError(suite.T(), err)
	item.Events()
	return item
}

func (suite *FoodItemTestSuite) TestCreation() {
	suite.Run("ValidItem_ShouldCreateSuccessfully", func() {
		// Act
		item, err := NewFoodItem(suite.userID, "Milk", 1, "L", LabelRawMaterial, time.Now().AddDate(0, 0, 4), 4)

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), item)

		assert.NotEqual(suite.T(), uuid.Nil, item.ID())
		assert.Equal(suite.T(), suite.userID, item.UserID())
		assert.Equal(suite.T(), "Milk", item.Name())
		assert.Equal(suite.T(), 1.0, item.Amount())
		assert.Equal(suite.T(), "l", item.Unit(), "unit should be normalized")
		assert.Equal(suite.T(), int64(1), item.Version())

		events := item.Events()
		require.Len(suite.T(), events, 1)
		added, ok := events[0].(ItemAddedEvent)
		assert.True(suite.T(), ok, "should emit ItemAddedEvent")
		assert.Equal(suite.T(), item.ID(), added.ItemID)
	})

	suite.Run("EmptyName_ShouldReturnError", func() {
		item, err := NewFoodItem(suite.userID, "", 1, "l", LabelRawMaterial, time.Now(), 4)

		assert.Nil(suite.T(), item)
		assert.Equal(suite.T(), ErrEmptyName, err)
	})

	suite.Run("NegativeAmount_ShouldReturnError", func() {
		item, err := NewFoodItem(suite.userID, "Milk", -1, "l", LabelRawMaterial, time.Now(), 4)

		assert.Nil(suite.T(), item)
		assert.Equal(suite.T(), ErrNegativeAmount, err)
	})

	suite.Run("InvalidLabel_ShouldReturnError", func() {
		item, err := NewFoodItem(suite.userID, "Milk", 1, "l", Label("leftover"), time.Now(), 4)

		assert.Nil(suite.T(), item)
		assert.Equal(suite.T(), ErrInvalidLabel, err)
	})

	suite.Run("NonPositiveFreshness_ShouldReturnError", func() {
		item, err := NewFoodItem(suite.userID, "Milk", 1, "l", LabelRawMaterial, time.Now(), 0)

		assert.Nil(suite.T(), item)
		assert.Equal(suite.T(), ErrInvalidFreshness, err)
	})
}

func (suite *FoodItemTestSuite) TestDeduct() {
	suite.Run("PartialDeduction_ShouldLowerAmount", func() {
		item := suite.newItem("flour", 500, "g")

		depleted, err := item.Deduct(200)

		require.NoError(suite.T(), err)
		assert.False(suite.T(), depleted)
		assert.Equal(suite.T(), 300.0, item.Amount())

		events := item.Events()
		require.Len(suite.T(), events, 1)
		_, ok := events[0].(ItemConsumedEvent)
		assert.True(suite.T(), ok, "should emit ItemConsumedEvent")
	})

	suite.Run("ExactDeduction_ShouldDeplete", func() {
		item := suite.newItem("flour", 500, "g")

		depleted, err := item.Deduct(500)

		require.NoError(suite.T(), err)
		assert.True(suite.T(), depleted)
		assert.Equal(suite.T(), 0.0, item.Amount(), "depleted item never keeps a residual amount")

		events := item.Events()
		require.Len(suite.T(), events, 1)
		_, ok := events[0].(ItemDepletedEvent)
		assert.True(suite.T(), ok, "should emit ItemDepletedEvent")
	})

	suite.Run("ResidualBelowEpsilon_ShouldDeplete", func() {
		item := suite.newItem("flour", 500, "g")

		depleted, err := item.Deduct(500 - 1e-12)

		require.NoError(suite.T(), err)
		assert.True(suite.T(), depleted, "floating point dust should not keep the item alive")
		assert.Equal(suite.T(), 0.0, item.Amount())
	})

	suite.Run("NegativeDeduction_ShouldReturnError", func() {
		item := suite.newItem("flour", 500, "g")

		_, err := item.Deduct(-1)

		assert.Equal(suite.T(), ErrNegativeAmount, err)
		assert.Equal(suite.T(), 500.0, item.Amount())
	})
}

func (suite *FoodItemTestSuite) TestIngredientValidation() {
	suite.Run("ValidIngredient_ShouldPass", func() {
		ing := Ingredient{Name: "milk", Quantity: 0.5, Unit: "l"}

		assert.NoError(suite.T(), ing.Validate())
	})

	suite.Run("BlankName_ShouldFail", func() {
		ing := Ingredient{Name: "   ", Quantity: 1, Unit: "l"}

		assert.Equal(suite.T(), ErrEmptyName, ing.Validate())
	})

	suite.Run("NonPositiveQuantity_ShouldFail", func() {
		ing := Ingredient{Name: "milk", Quantity: 0, Unit: "l"}

		assert.Equal(suite.T(), ErrNonPositiveQuantity, ing.Validate())
	})
}

func (suite *FoodItemTestSuite) TestConsumptionResultOutcome() {
	suite.Run("OnlyConsumed_ShouldBeSuccess", func() {
		r := ConsumptionResult{ConsumedItems: []string{"egg (2 item)"}}
		assert.Equal(suite.T(), OutcomeSuccess, r.Outcome())
	})

	suite.Run("ConsumedAndInsufficient_ShouldBePartial", func() {
		r := ConsumptionResult{ConsumedItems: []string{"egg (2 item)"}, InsufficientItems: []string{"butter"}}
		assert.Equal(suite.T(), OutcomePartial, r.Outcome())
	})

	suite.Run("OnlyInsufficient_ShouldBeFailure", func() {
		r := ConsumptionResult{InsufficientItems: []string{"butter"}}
		assert.Equal(suite.T(), OutcomeFailure, r.Outcome())
	})

	suite.Run("NothingRequested_ShouldBeEmpty", func() {
		r := ConsumptionResult{}
		assert.Equal(suite.T(), OutcomeEmpty, r.Outcome())
	})
}

func TestFoodItemTestSuite(t *testing.T) {
	suite.Run(t, new(FoodItemTestSuite))
}
