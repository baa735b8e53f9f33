package parcel

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/constants"
	"parcel-delivery/httpServices/identity/identitytest"
	"parcel-delivery/middleware"
	parcelModel "parcel-delivery/models/parcel"
	riderModel "parcel-delivery/models/rider"
	"parcel-delivery/models/user"
	"parcel-delivery/repository/repotest"
	"parcel-delivery/services"
)

const (
	adminEmail = "admin@x.com"
	aliceEmail = "alice@x.com"
	bobEmail   = "bob@x.com"
	riderEmail = "rider@x.com"
)

var fixedNow = time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)

type envelope struct {
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
}

type harness struct {
	app   *fiber.App
	store *repotest.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return buildHarness(t, false)
}

// newStrictHarness enforces ownership and lifecycle checks on status updates.
func newStrictHarness(t *testing.T) *harness {
	t.Helper()
	return buildHarness(t, true)
}

func buildHarness(t *testing.T, strict bool) *harness {
	t.Helper()
	store := repotest.New()
	store.AddUser(user.User{Email: adminEmail, Role: constants.RoleAdmin})
	store.AddUser(user.User{Email: aliceEmail, Role: constants.RoleUser})
	store.AddUser(user.User{Email: bobEmail})
	store.AddUser(user.User{Email: riderEmail, Role: constants.RoleRider})

	verifier := identitytest.NewVerifier(adminEmail, aliceEmail, bobEmail, riderEmail)
	permissions := services.NewPermissionService(store.Users())
	mw := middleware.New(verifier, permissions)

	pc := NewParcelController(store, permissions, nil)
	pc.now = func() time.Time { return fixedNow }
	pc.StrictTransitions = strict

	app := fiber.New()
	app.Get("/parcels/delivery/status-count", pc.StatusCount)
	app.Get("/parcels", mw.RequireAuth(), pc.Index)
	app.Get("/parcels/:id", pc.Show)
	app.Post("/parcels", mw.RequireAuth(), pc.Store)
	app.Delete("/parcels/:id", mw.RequireAuth(), pc.Delete)
	app.Patch("/parcels/:id/assign", mw.RequireAuth(), mw.RequireAdmin(), pc.AssignRider)
	app.Patch("/parcels/:id/status", mw.RequireAuth(), mw.RequireRider(), pc.UpdateStatus)
	app.Patch("/parcels/:id/cashout", mw.RequireAuth(), pc.Cashout)
	app.Get("/rider/parcels", mw.RequireAuth(), mw.RequireRider(), pc.RiderParcels)
	app.Get("/rider/completed-parcels", mw.RequireAuth(), mw.RequireRider(), pc.RiderCompletedParcels)
	app.Get("/rider/earnings", mw.RequireAuth(), mw.RequireRider(), pc.RiderEarnings)

	return &harness{app: app, store: store}
}

func (h *harness) do(t *testing.T, method, path, email string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set("Authorization", identitytest.Bearer(email))
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func validParcel() map[string]interface{} {
	return map[string]interface{}{
		"title":             "Documents",
		"type":              "document",
		"weight":            1.5,
		"cost":              120,
		"sender_name":       "Alice",
		"sender_region":     "Dhaka",
		"sender_district":   "Dhaka",
		"receiver_name":     "Carol",
		"receiver_region":   "Chattogram",
		"receiver_district": "Cumilla",
	}
}

func TestStoreStampsCallerAndServerFields(t *testing.T) {
	h := newHarness(t)
	body := validParcel()
	body["created_by"] = "mallory@x.com"
	body["payment_status"] = "paid"

	status, env := h.do(t, fiber.MethodPost, "/parcels", aliceEmail, body)
	require.Equal(t, fiber.StatusCreated, status)

	var data struct {
		InsertedID string `json:"insertedId"`
		TrackingID string `json:"tracking_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, strings.HasPrefix(data.TrackingID, "PCL-20260318-"))

	id, err := primitive.ObjectIDFromHex(data.InsertedID)
	require.NoError(t, err)
	stored, ok := h.store.Parcel(id)
	require.True(t, ok)
	assert.Equal(t, aliceEmail, stored.CreatedBy)
	assert.Equal(t, parcelModel.PaymentStatusUnpaid, stored.PaymentStatus)
	assert.Equal(t, parcelModel.DeliveryStatusPending, stored.DeliveryStatus)
	assert.Equal(t, fixedNow, stored.CreatedAt)

	events := h.store.Events(data.TrackingID)
	require.Len(t, events, 1)
	assert.Equal(t, "parcel_created", events[0].Status)
}

func TestStoreRejectsInvalidBody(t *testing.T) {
	h := newHarness(t)
	body := validParcel()
	delete(body, "title")

	status, env := h.do(t, fiber.MethodPost, "/parcels", aliceEmail, body)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "title is required", env.Message)
	assert.Empty(t, h.store.ParcelDocs)
}

func TestStoreRequiresToken(t *testing.T) {
	h := newHarness(t)
	status, _ := h.do(t, fiber.MethodPost, "/parcels", "", validParcel())
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestIndexScopesNonAdminsToTheirOwnParcels(t *testing.T) {
	h := newHarness(t)
	h.store.AddParcel(parcelModel.Parcel{Title: "a1", CreatedBy: aliceEmail, CreatedAt: fixedNow.Add(-time.Hour)})
	h.store.AddParcel(parcelModel.Parcel{Title: "a2", CreatedBy: aliceEmail, CreatedAt: fixedNow})
	h.store.AddParcel(parcelModel.Parcel{Title: "b1", CreatedBy: bobEmail, CreatedAt: fixedNow})

	titles := func(env envelope) []string {
		var parcels []parcelModel.Parcel
		require.NoError(t, json.Unmarshal(env.Data, &parcels))
		out := make([]string, 0, len(parcels))
		for _, p := range parcels {
			out = append(out, p.Title)
		}
		return out
	}

	status, env := h.do(t, fiber.MethodGet, "/parcels?email="+bobEmail, aliceEmail, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"a2", "a1"}, titles(env))

	_, env = h.do(t, fiber.MethodGet, "/parcels?email="+bobEmail, adminEmail, nil)
	assert.Equal(t, []string{"b1"}, titles(env))

	_, env = h.do(t, fiber.MethodGet, "/parcels", adminEmail, nil)
	assert.Len(t, titles(env), 3)
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	p := h.store.AddParcel(parcelModel.Parcel{Title: "box"})

	status, env := h.do(t, fiber.MethodGet, "/parcels/"+p.ID.Hex(), "", nil)
	require.Equal(t, fiber.StatusOK, status)
	var got parcelModel.Parcel
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "box", got.Title)

	status, _ = h.do(t, fiber.MethodGet, "/parcels/not-an-id", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = h.do(t, fiber.MethodGet, "/parcels/"+primitive.NewObjectID().Hex(), "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Parcel not found", env.Message)
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	p := h.store.AddParcel(parcelModel.Parcel{Title: "box"})

	status, _ := h.do(t, fiber.MethodDelete, "/parcels/xyz", aliceEmail, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = h.do(t, fiber.MethodDelete, "/parcels/"+primitive.NewObjectID().Hex(), aliceEmail, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = h.do(t, fiber.MethodDelete, "/parcels/"+p.ID.Hex(), aliceEmail, nil)
	assert.Equal(t, fiber.StatusOK, status)
	_, ok := h.store.Parcel(p.ID)
	assert.False(t, ok)
}

func TestAssignRiderUpdatesParcelAndRider(t *testing.T) {
	h := newHarness(t)
	p := h.store.AddParcel(parcelModel.Parcel{TrackingID: "PCL-1", DeliveryStatus: parcelModel.DeliveryStatusPending})
	r := h.store.AddRider(riderModel.Rider{Email: riderEmail, Status: riderModel.StatusActive, WorkStatus: riderModel.WorkStatusIdle})

	body := map[string]string{"riderId": r.ID.Hex(), "riderEmail": riderEmail, "riderName": "Rita"}
	status, _ := h.do(t, fiber.MethodPatch, "/parcels/"+p.ID.Hex()+"/assign", adminEmail, body)
	require.Equal(t, fiber.StatusOK, status)

	stored, _ := h.store.Parcel(p.ID)
	assert.Equal(t, parcelModel.DeliveryStatusRiderAssigned, stored.DeliveryStatus)
	assert.Equal(t, r.ID, stored.AssignedRiderID)
	assert.Equal(t, riderEmail, stored.AssignedRiderEmail)
	assert.Equal(t, "Rita", stored.AssignedRiderName)
	require.NotNil(t, stored.AssignedAt)

	rd, _ := h.store.Rider(r.ID)
	assert.Equal(t, riderModel.WorkStatusInDelivery, rd.WorkStatus)
	assert.Len(t, h.store.Events("PCL-1"), 1)
}

func TestAssignRiderAgainKeepsState(t *testing.T) {
	h := newHarness(t)
	p := h.store.AddParcel(parcelModel.Parcel{TrackingID: "PCL-3", DeliveryStatus: parcelModel.DeliveryStatusPending})
	r := h.store.AddRider(riderModel.Rider{Email: riderEmail, Status: riderModel.StatusActive, WorkStatus: riderModel.WorkStatusIdle})
	body := map[string]string{"riderId": r.ID.Hex(), "riderEmail": riderEmail, "riderName": "Rita"}
	path := "/parcels/" + p.ID.Hex() + "/assign"

	status, _ := h.do(t, fiber.MethodPatch, path, adminEmail, body)
	require.Equal(t, fiber.StatusOK, status)
	first, _ := h.store.Parcel(p.ID)

	status, _ = h.do(t, fiber.MethodPatch, path, adminEmail, body)
	require.Equal(t, fiber.StatusOK, status)
	second, _ := h.store.Parcel(p.ID)

	assert.Equal(t, first, second)
	rd, _ := h.store.Rider(r.ID)
	assert.Equal(t, riderModel.WorkStatusInDelivery, rd.WorkStatus)
}

func TestReassignRiderFreesPreviousRider(t *testing.T) {
	h := newHarness(t)
	p := h.store.AddParcel(parcelModel.Parcel{TrackingID: "PCL-4", DeliveryStatus: parcelModel.DeliveryStatusPending})
	first := h.store.AddRider(riderModel.Rider{Email: riderEmail, Status: riderModel.StatusActive, WorkStatus: riderModel.WorkStatusIdle})
	second := h.store.AddRider(riderModel.Rider{Email: "rider2@x.com", Status: riderModel.StatusActive, WorkStatus: riderModel.WorkStatusIdle})
	path := "/parcels/" + p.ID.Hex() + "/assign"

	status, _ := h.do(t, fiber.MethodPatch, path, adminEmail, map[string]string{"riderId": first.ID.Hex(), "riderEmail": riderEmail})
	require.Equal(t, fiber.StatusOK, status)
	status, _ = h.do(t, fiber.MethodPatch, path, adminEmail, map[string]string{"riderId": second.ID.Hex(), "riderEmail": "rider2@x.com"})
	require.Equal(t, fiber.StatusOK, status)

	stored, _ := h.store.Parcel(p.ID)
	assert.Equal(t, second.ID, stored.AssignedRiderID)
	assert.Equal(t, "rider2@x.com", stored.AssignedRiderEmail)

	old, _ := h.store.Rider(first.ID)
	assert.Equal(t, riderModel.WorkStatusIdle, old.WorkStatus)
	current, _ := h.store.Rider(second.ID)
	assert.Equal(t, riderModel.WorkStatusInDelivery, current.WorkStatus)
}

func TestAssignRiderRollsBackWhenRiderMissing(t *testing.T) {
	h := newHarness(t)
	p := h.store.AddParcel(parcelModel.Parcel{DeliveryStatus: parcelModel.DeliveryStatusPending})

	body := map[string]string{"riderId": primitive.NewObjectID().Hex(), "riderEmail": riderEmail}
	status, env := h.do(t, fiber.MethodPatch, "/parcels/"+p.ID.Hex()+"/assign", adminEmail, body)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Rider not found", env.Message)

	stored, _ := h.store.Parcel(p.ID)
	assert.Equal(t, parcelModel.DeliveryStatusPending, stored.DeliveryStatus)
	assert.Empty(t, stored.AssignedRiderEmail)
}

func TestAssignRiderRequiresAdmin(t *testing.T) {
	h := newHarness(t)
	p := h.store.AddParcel(parcelModel.Parcel{})
	body := map[string]string{"riderId": primitive.NewObjectID().Hex(), "riderEmail": riderEmail}

	status, env := h.do(t, fiber.MethodPatch, "/parcels/"+p.ID.Hex()+"/assign", aliceEmail, body)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Admin access required", env.Message)
}

func TestUpdateStatusWritesStatusAsSent(t *testing.T) {
	h := newHarness(t)
	r := h.store.AddRider(riderModel.Rider{Email: riderEmail, WorkStatus: riderModel.WorkStatusInDelivery})
	p := h.store.AddParcel(parcelModel.Parcel{
		TrackingID:         "PCL-5",
		DeliveryStatus:     parcelModel.DeliveryStatusRiderAssigned,
		AssignedRiderID:    r.ID,
		AssignedRiderEmail: riderEmail,
	})
	path := "/parcels/" + p.ID.Hex() + "/status"

	status, _ := h.do(t, fiber.MethodPatch, path, riderEmail, map[string]string{"status": "delivered"})
	require.Equal(t, fiber.StatusOK, status)
	stored, _ := h.store.Parcel(p.ID)
	assert.Equal(t, parcelModel.DeliveryStatusDelivered, stored.DeliveryStatus)
	require.NotNil(t, stored.DeliveredAt)
	assert.Equal(t, fixedNow, *stored.DeliveredAt)
	assert.Nil(t, stored.PickedAt)
	rd, _ := h.store.Rider(r.ID)
	assert.Equal(t, riderModel.WorkStatusIdle, rd.WorkStatus)

	status, env := h.do(t, fiber.MethodPatch, path, riderEmail, map[string]string{"status": "held_at_customs"})
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"delivery_status":"held_at_customs"}`, string(env.Data))
	stored, _ = h.store.Parcel(p.ID)
	assert.Equal(t, parcelModel.DeliveryStatus("held_at_customs"), stored.DeliveryStatus)

	status, _ = h.do(t, fiber.MethodPatch, path, riderEmail, map[string]string{"status": ""})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Len(t, h.store.Events("PCL-5"), 2)
}

func TestUpdateStatusAcceptsUnassignedParcel(t *testing.T) {
	h := newHarness(t)
	p := h.store.AddParcel(parcelModel.Parcel{DeliveryStatus: parcelModel.DeliveryStatusPending})

	status, _ := h.do(t, fiber.MethodPatch, "/parcels/"+p.ID.Hex()+"/status", riderEmail, map[string]string{"status": "in_transit"})
	require.Equal(t, fiber.StatusOK, status)
	stored, _ := h.store.Parcel(p.ID)
	assert.Equal(t, parcelModel.DeliveryStatusInTransit, stored.DeliveryStatus)
	require.NotNil(t, stored.PickedAt)

	status, env := h.do(t, fiber.MethodPatch, "/parcels/"+primitive.NewObjectID().Hex()+"/status", riderEmail, map[string]string{"status": "in_transit"})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Parcel not found", env.Message)

	status, env = h.do(t, fiber.MethodPatch, "/parcels/"+p.ID.Hex()+"/status", aliceEmail, map[string]string{"status": "in_transit"})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Rider access required", env.Message)
}

func TestStrictUpdateStatusLifecycle(t *testing.T) {
	h := newStrictHarness(t)
	r := h.store.AddRider(riderModel.Rider{Email: riderEmail, WorkStatus: riderModel.WorkStatusInDelivery})
	p := h.store.AddParcel(parcelModel.Parcel{
		TrackingID:         "PCL-2",
		DeliveryStatus:     parcelModel.DeliveryStatusRiderAssigned,
		AssignedRiderID:    r.ID,
		AssignedRiderEmail: riderEmail,
	})
	path := "/parcels/" + p.ID.Hex() + "/status"

	status, _ := h.do(t, fiber.MethodPatch, path, riderEmail, map[string]string{"status": "delivered"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = h.do(t, fiber.MethodPatch, path, riderEmail, map[string]string{"status": "in_transit"})
	require.Equal(t, fiber.StatusOK, status)
	stored, _ := h.store.Parcel(p.ID)
	require.NotNil(t, stored.PickedAt)
	assert.Nil(t, stored.DeliveredAt)

	status, _ = h.do(t, fiber.MethodPatch, path, riderEmail, map[string]string{"status": "delivered"})
	require.Equal(t, fiber.StatusOK, status)
	stored, _ = h.store.Parcel(p.ID)
	assert.Equal(t, parcelModel.DeliveryStatusDelivered, stored.DeliveryStatus)
	require.NotNil(t, stored.DeliveredAt)
	assert.Equal(t, fixedNow, *stored.DeliveredAt)

	rd, _ := h.store.Rider(r.ID)
	assert.Equal(t, riderModel.WorkStatusIdle, rd.WorkStatus)
	assert.Len(t, h.store.Events("PCL-2"), 2)
}

func TestStrictUpdateStatusRejections(t *testing.T) {
	h := newStrictHarness(t)
	h.store.AddUser(user.User{Email: "other-rider@x.com", Role: constants.RoleRider})
	p := h.store.AddParcel(parcelModel.Parcel{
		DeliveryStatus:     parcelModel.DeliveryStatusRiderAssigned,
		AssignedRiderEmail: "other-rider@x.com",
	})
	path := "/parcels/" + p.ID.Hex() + "/status"

	status, env := h.do(t, fiber.MethodPatch, path, riderEmail, map[string]string{"status": "in_transit"})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Parcel is not assigned to you", env.Message)

	status, _ = h.do(t, fiber.MethodPatch, path, riderEmail, map[string]string{"status": "lost"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = h.do(t, fiber.MethodPatch, path, aliceEmail, map[string]string{"status": "in_transit"})
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "Rider access required", env.Message)

	stored, _ := h.store.Parcel(p.ID)
	assert.Equal(t, parcelModel.DeliveryStatusRiderAssigned, stored.DeliveryStatus)
}

func TestUpdateStatusRollsBackOnRiderFailure(t *testing.T) {
	h := newHarness(t)
	r := h.store.AddRider(riderModel.Rider{Email: riderEmail, WorkStatus: riderModel.WorkStatusInDelivery})
	p := h.store.AddParcel(parcelModel.Parcel{
		DeliveryStatus:     parcelModel.DeliveryStatusInTransit,
		AssignedRiderID:    r.ID,
		AssignedRiderEmail: riderEmail,
	})
	h.store.Fail("riders.UpdateWorkStatus", errors.New("connection reset"))

	status, env := h.do(t, fiber.MethodPatch, "/parcels/"+p.ID.Hex()+"/status", riderEmail, map[string]string{"status": "delivered"})
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Failed to update parcel status: connection reset", env.Message)

	stored, _ := h.store.Parcel(p.ID)
	assert.Equal(t, parcelModel.DeliveryStatusInTransit, stored.DeliveryStatus)
	assert.Nil(t, stored.DeliveredAt)
}

func TestCashout(t *testing.T) {
	h := newHarness(t)
	p := h.store.AddParcel(parcelModel.Parcel{DeliveryStatus: parcelModel.DeliveryStatusDelivered})

	status, _ := h.do(t, fiber.MethodPatch, "/parcels/"+primitive.NewObjectID().Hex()+"/cashout", riderEmail, nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = h.do(t, fiber.MethodPatch, "/parcels/"+p.ID.Hex()+"/cashout", riderEmail, nil)
	require.Equal(t, fiber.StatusOK, status)
	stored, _ := h.store.Parcel(p.ID)
	assert.Equal(t, parcelModel.CashoutStatusCashedOut, stored.CashoutStatus)
	require.NotNil(t, stored.CashedOutAt)
}

func TestStatusCount(t *testing.T) {
	h := newHarness(t)
	h.store.AddParcel(parcelModel.Parcel{DeliveryStatus: parcelModel.DeliveryStatusPending})
	h.store.AddParcel(parcelModel.Parcel{DeliveryStatus: parcelModel.DeliveryStatusPending})
	h.store.AddParcel(parcelModel.Parcel{DeliveryStatus: parcelModel.DeliveryStatusDelivered})

	status, env := h.do(t, fiber.MethodGet, "/parcels/delivery/status-count", "", nil)
	require.Equal(t, fiber.StatusOK, status)

	var counts []parcelModel.StatusCount
	require.NoError(t, json.Unmarshal(env.Data, &counts))
	assert.ElementsMatch(t, []parcelModel.StatusCount{
		{Status: "delivered", Count: 1},
		{Status: "pending", Count: 2},
	}, counts)
}

func TestRiderViews(t *testing.T) {
	h := newHarness(t)
	h.store.AddParcel(parcelModel.Parcel{Title: "active", AssignedRiderEmail: riderEmail, DeliveryStatus: parcelModel.DeliveryStatusInTransit})
	h.store.AddParcel(parcelModel.Parcel{Title: "done", AssignedRiderEmail: riderEmail, DeliveryStatus: parcelModel.DeliveryStatusServiceCenterDelivered})
	h.store.AddParcel(parcelModel.Parcel{Title: "theirs", AssignedRiderEmail: "x@x.com", DeliveryStatus: parcelModel.DeliveryStatusInTransit})

	decode := func(env envelope) []parcelModel.Parcel {
		var parcels []parcelModel.Parcel
		require.NoError(t, json.Unmarshal(env.Data, &parcels))
		return parcels
	}

	status, env := h.do(t, fiber.MethodGet, "/rider/parcels", riderEmail, nil)
	require.Equal(t, fiber.StatusOK, status)
	active := decode(env)
	require.Len(t, active, 1)
	assert.Equal(t, "active", active[0].Title)

	_, env = h.do(t, fiber.MethodGet, "/rider/completed-parcels", riderEmail, nil)
	done := decode(env)
	require.Len(t, done, 1)
	assert.Equal(t, "done", done[0].Title)
}

func TestRiderEarningsEndpoint(t *testing.T) {
	h := newHarness(t)
	delivered := fixedNow.Add(-time.Hour)
	h.store.AddParcel(parcelModel.Parcel{
		Cost: 100, SenderDistrict: "Dhaka", ReceiverDistrict: "Dhaka",
		AssignedRiderEmail: riderEmail, DeliveryStatus: parcelModel.DeliveryStatusDelivered, DeliveredAt: &delivered,
	})

	status, env := h.do(t, fiber.MethodGet, "/rider/earnings?period=day", riderEmail, nil)
	require.Equal(t, fiber.StatusOK, status)
	var summary struct {
		Deliveries  int     `json:"deliveries"`
		TotalEarned float64 `json:"total_earned"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 1, summary.Deliveries)
	assert.InDelta(t, 80.0, summary.TotalEarned, 0.001)

	status, _ = h.do(t, fiber.MethodGet, "/rider/earnings?period=year", riderEmail, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
