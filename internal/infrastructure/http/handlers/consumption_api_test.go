package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	appinventory "github.com/pantrysage/v1/internal/application/inventory"
	"github.com/pantrysage/v1/internal/application/consumption"
	"github.com/pantrysage/v1/internal/domain/inventory"
	"github.com/pantrysage/v1/internal/infrastructure/monitoring"
	"github.com/pantrysage/v1/internal/infrastructure/persistence/memory"
	"github.com/pantrysage/v1/internal/ports/inbound"
	"github.com/pantrysage/v1/test/testutils"
)

// APIHandlersTestSuite drives the handlers through a real router with the
// in-memory adapters underneath
type APIHandlersTestSuite struct {
	suite.Suite
	userID uuid.UUID
	router *chi.Mux
	store  *memory.InventoryRepository
}

func (suite *APIHandlersTestSuite) SetupTest() {
	suite.userID = uuid.New()
	suite.store = memory.NewInventoryRepository()
	eventLog := memory.NewEventLog()
	logger := zap.NewNop()

	consumptionService := consumption.NewService(
		suite.store, eventLog, &testutils.RecordingSink{}, nil, monitoring.NewMetrics(), logger)
	inventoryService := appinventory.NewService(suite.store, eventLog, nil, logger)

	consumeH := NewConsumptionHandlers(consumptionService, logger)
	inventoryH := NewInventoryHandlers(inventoryService, logger)

	suite.router = chi.NewRouter()
	suite.router.Post("/api/v1/consume", consumeH.ConsumeMeal)
	suite.router.Post("/api/v1/inventory", inventoryH.CreateItem)
	suite.router.Get("/api/v1/inventory", inventoryH.ListItems)
	suite.router.Delete("/api/v1/inventory/{id}", inventoryH.DeleteItem)
}

func (suite *APIHandlersTestSuite) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(suite.T(), err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func (suite *APIHandlersTestSuite) seedItem(name string, amount float64, unit string) {
	item := testutils.NewFoodItemBuilder().
		WithUser(suite.userID).
		WithName(name).
		WithAmount(amount, unit).
		WithEatByDate(time.Now().AddDate(0, 0, 5)).
		Build()
	require.NoError(suite.T(), suite.store.Create(context.Background(), item))
}

func (suite *APIHandlersTestSuite) TestConsumeEndpoint() {
	suite.Run("ValidMeal_ShouldReturnResult", func() {
		suite.SetupTest()
		suite.seedItem("egg", 10, "item")

		rec := suite.postJSON("/api/v1/consume", inbound.ConsumeMealCommand{
			UserID:   suite.userID,
			MealName: "omelette",
			Ingredients: []inbound.IngredientCommand{
				{Name: "egg", Quantity: 3, Unit: "item"},
			},
		})

		assert.Equal(suite.T(), http.StatusOK, rec.Code)

		var resp struct {
			Success bool                        `json:"success"`
			Data    inventory.ConsumptionResult `json:"data"`
		}
		require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(suite.T(), resp.Success)
		assert.Equal(suite.T(), []string{"egg (3 item)"}, resp.Data.ConsumedItems)
	})

	suite.Run("MalformedBody_ShouldReturnBadRequest", func() {
		suite.SetupTest()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/consume", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		suite.router.ServeHTTP(rec, req)

		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	})

	suite.Run("MissingUserID_ShouldFailValidation", func() {
		suite.SetupTest()

		rec := suite.postJSON("/api/v1/consume", map[string]interface{}{
			"ingredients": []map[string]interface{}{
				{"name": "egg", "quantity": 1, "unit": "item"},
			},
		})

		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	})
}

func (suite *APIHandlersTestSuite) TestInventoryEndpoints() {
	suite.Run("CreateThenList_ShouldRoundTrip", func() {
		suite.SetupTest()

		rec := suite.postJSON("/api/v1/inventory", inbound.CreateItemCommand{
			UserID:        suite.userID,
			Name:          "milk",
			Amount:        1,
			Unit:          "l",
			Label:         "raw_material",
			EatByDate:     time.Now().AddDate(0, 0, 4),
			FreshnessDays: 4,
		})
		require.Equal(suite.T(), http.StatusCreated, rec.Code)

		listReq := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/api/v1/inventory?user_id=%s", suite.userID), nil)
		listRec := httptest.NewRecorder()
		suite.router.ServeHTTP(listRec, listReq)

		assert.Equal(suite.T(), http.StatusOK, listRec.Code)

		var resp struct {
			Data []inbound.FoodItemDTO `json:"data"`
		}
		require.NoError(suite.T(), json.Unmarshal(listRec.Body.Bytes(), &resp))
		require.Len(suite.T(), resp.Data, 1)
		assert.Equal(suite.T(), "milk", resp.Data[0].Name)
	})

	suite.Run("ListWithoutUserID_ShouldReturnBadRequest", func() {
		suite.SetupTest()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
		rec := httptest.NewRecorder()
		suite.router.ServeHTTP(rec, req)

		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	})

	suite.Run("DeleteUnknownItem_ShouldReturnNotFound", func() {
		suite.SetupTest()

		req := httptest.NewRequest(http.MethodDelete,
			fmt.Sprintf("/api/v1/inventory/%s?user_id=%s", uuid.New(), suite.userID), nil)
		rec := httptest.NewRecorder()
		suite.router.ServeHTTP(rec, req)

		assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	})
}

func TestAPIHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(APIHandlersTestSuite))
}
