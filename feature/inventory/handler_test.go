package inventory_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"pedalbuild/feature/inventory"
	"pedalbuild/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	svc := inventory.NewService(db, zap.NewNop())
	h := inventory.NewHandler(svc)

	app := fiber.New()
	h.RegisterRoutes(app)
	return app, db
}

func TestHandleListWithTypeFilter(t *testing.T) {
	app, db := setupApp(t)
	seedComponents(t, db,
		models.Component{ID: "resistor_10k", Type: models.TypeResistor, Value: "10k", QuantityInStock: 100},
		models.Component{ID: "capacitor_100nf", Type: models.TypeCapacitor, Value: "100nF", QuantityInStock: 20},
	)

	req := httptest.NewRequest("GET", "/inventory/?type=resistor", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body inventory.ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "resistor_10k", body.Components[0].ID)
}

func TestHandleListRejectsUnknownType(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/inventory/?type=flux_capacitor", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleSearchRequiresQuery(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/inventory/search", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleGetNotFound(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/inventory/resistor_10k", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleUpdateQuantity(t *testing.T) {
	app, db := setupApp(t)
	seedComponents(t, db,
		models.Component{ID: "resistor_10k", Type: models.TypeResistor, Value: "10k", QuantityInStock: 50},
	)

	payload, _ := json.Marshal(inventory.UpdateQuantityRequest{Delta: -20})
	req := httptest.NewRequest("PATCH", "/inventory/resistor_10k/quantity", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body inventory.UpdateQuantityResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, 30, body.NewQuantity)
}

func TestHandleUpdateQuantityConflict(t *testing.T) {
	app, db := setupApp(t)
	seedComponents(t, db,
		models.Component{ID: "resistor_10k", Type: models.TypeResistor, Value: "10k", QuantityInStock: 3},
	)

	payload, _ := json.Marshal(inventory.UpdateQuantityRequest{Delta: -5})
	req := httptest.NewRequest("PATCH", "/inventory/resistor_10k/quantity", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)
}
