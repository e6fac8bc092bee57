package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"moodbrew-order-system/models"
	"moodbrew-order-system/services"
	"moodbrew-order-system/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderTestApp() (*fiber.App, *services.CartStore) {
	st := store.NewMemoryStore()
	carts := services.NewCartStore()
	orders := services.NewOrderService(st, carts, services.NewProgressionService(st))

	app := fiber.New()
	SetupOrderRoutes(app, orders)
	return app, carts
}

func doRequest(t *testing.T, app *fiber.App, method, path, userID string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSubmitRequiresUserContext(t *testing.T) {
	app, _ := newOrderTestApp()

	resp := doRequest(t, app, http.MethodPost, "/orders", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubmitEmptyCartConflict(t *testing.T) {
	app, _ := newOrderTestApp()

	resp := doRequest(t, app, http.MethodPost, "/orders", "u1")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSubmitAndFetchOrder(t *testing.T) {
	app, carts := newOrderTestApp()

	_, err := carts.AddItem("u1", models.CartLine{
		ProductID: "latte",
		Name:      "Cozy Cappuccino",
		Size:      models.SizeMedium,
		Quantity:  2,
		UnitPrice: 5,
	})
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodPost, "/orders", "u1")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Order       models.Order               `json:"order"`
		Progression services.ProgressionResult `json:"progression"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, models.OrderStatusPending, body.Order.Status)
	assert.Equal(t, 10.0, body.Order.Total)
	assert.Equal(t, int64(45), body.Progression.XPDelta)

	// Fetch it back through the API.
	resp = doRequest(t, app, http.MethodGet, "/orders/"+body.Order.ID, "u1")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Another user cannot see it.
	resp = doRequest(t, app, http.MethodGet, "/orders/"+body.Order.ID, "u2")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// It shows up in history.
	resp = doRequest(t, app, http.MethodGet, "/orders", "u1")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var history struct {
		Orders []models.Order `json:"orders"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	assert.Equal(t, 1, history.Count)
}

func TestStatusEndpointValidation(t *testing.T) {
	app, carts := newOrderTestApp()

	_, err := carts.AddItem("u1", models.CartLine{
		ProductID: "latte", Size: models.SizeSmall, Quantity: 1, UnitPrice: 4,
	})
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodPost, "/orders", "u1")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var body struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	patch := func(orderID, status string) *http.Response {
		req := httptest.NewRequest(http.MethodPatch, "/orders/"+orderID+"/status",
			jsonBody(t, fiber.Map{"status": status}))
		req.Header.Set("X-User-ID", "u1")
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	assert.Equal(t, fiber.StatusBadRequest, patch(body.Order.ID, "teleported").StatusCode)
	assert.Equal(t, fiber.StatusOK, patch(body.Order.ID, "ready").StatusCode)
	assert.Equal(t, fiber.StatusConflict, patch(body.Order.ID, "preparing").StatusCode)
	assert.Equal(t, fiber.StatusNotFound, patch("missing", "ready").StatusCode)
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(data)
}
