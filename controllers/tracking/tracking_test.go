package tracking

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trackingModel "parcel-delivery/models/tracking"
	"parcel-delivery/repository/repotest"
)

func setup() (*fiber.App, *repotest.Store, *time.Time) {
	store := repotest.New()
	clock := time.Date(2026, 4, 4, 12, 0, 0, 0, time.UTC)
	tc := NewTrackingController(store, nil)
	tc.now = func() time.Time { return clock }

	app := fiber.New()
	app.Post("/trackings", tc.Store)
	app.Get("/trackings/:trackingId", tc.Show)
	return app, store, &clock
}

func post(t *testing.T, app *fiber.App, body map[string]string) int {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPost, "/trackings", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestStoreAndShowInOrder(t *testing.T) {
	app, _, clock := setup()

	require.Equal(t, fiber.StatusCreated, post(t, app, map[string]string{"tracking_id": "PCL-9", "status": "picked_up"}))
	*clock = clock.Add(time.Hour)
	require.Equal(t, fiber.StatusCreated, post(t, app, map[string]string{"tracking_id": "PCL-9", "status": "in_hub", "message": "Arrived"}))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/trackings/PCL-9", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var env struct {
		Data []trackingModel.Event `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Len(t, env.Data, 2)
	assert.Equal(t, "picked_up", env.Data[0].Status)
	assert.Equal(t, "in_hub", env.Data[1].Status)
	assert.Equal(t, "Arrived", env.Data[1].Message)
}

func TestStoreRequiresTrackingIDAndStatus(t *testing.T) {
	app, store, _ := setup()

	assert.Equal(t, fiber.StatusBadRequest, post(t, app, map[string]string{"status": "picked_up"}))
	assert.Equal(t, fiber.StatusBadRequest, post(t, app, map[string]string{"tracking_id": "PCL-9"}))
	assert.Empty(t, store.TrackingDocs)
}
