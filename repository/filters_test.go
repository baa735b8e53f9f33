package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/models/parcel"
	"parcel-delivery/models/rider"
)

func TestParcelListFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, parcelListFilter(ParcelFilter{}))

	got := parcelListFilter(ParcelFilter{
		CreatedBy:      "a@x.com",
		PaymentStatus:  "paid",
		DeliveryStatus: "pending",
	})
	assert.Equal(t, bson.M{
		"created_by":      "a@x.com",
		"payment_status":  "paid",
		"delivery_status": "pending",
	}, got)
}

func TestDeliveryStatusUpdateStampsTimestamps(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	set := deliveryStatusUpdate(parcel.DeliveryStatusInTransit, at)["$set"].(bson.M)
	assert.Equal(t, at, set["picked_at"])
	assert.NotContains(t, set, "delivered_at")

	set = deliveryStatusUpdate(parcel.DeliveryStatusDelivered, at)["$set"].(bson.M)
	assert.Equal(t, at, set["delivered_at"])
	assert.Equal(t, parcel.DeliveryStatusDelivered, set["delivery_status"])
	assert.NotContains(t, set, "picked_at")

	// the earnings windows read delivered_at for service center drop-offs too
	set = deliveryStatusUpdate(parcel.DeliveryStatusServiceCenterDelivered, at)["$set"].(bson.M)
	assert.Equal(t, at, set["delivered_at"])

	set = deliveryStatusUpdate("returned_to_sender", at)["$set"].(bson.M)
	assert.Equal(t, bson.M{"delivery_status": parcel.DeliveryStatus("returned_to_sender")}, set)
}

func TestDeliveryStatusFilter(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, bson.M{"_id": id}, deliveryStatusFilter(id, ""))
	assert.Equal(t, bson.M{"_id": id, "delivery_status": parcel.DeliveryStatusInTransit},
		deliveryStatusFilter(id, parcel.DeliveryStatusInTransit))
}

func TestRiderParcelsFilter(t *testing.T) {
	got := riderParcelsFilter("r@x.com", parcel.ActiveRiderStatuses())
	assert.Equal(t, "r@x.com", got["assigned_rider_email"])
	assert.Equal(t, bson.M{"$in": []string{"rider_assigned", "in_transit"}}, got["delivery_status"])
}

func TestRiderListFilter(t *testing.T) {
	assert.Equal(t, bson.M{"district": "Dhaka"}, riderListFilter(RiderFilter{District: "Dhaka"}))
	assert.Equal(t, bson.M{"status": rider.StatusPending}, riderListFilter(RiderFilter{Status: rider.StatusPending}))
	assert.Equal(t, bson.M{}, riderListFilter(RiderFilter{}))
}

func TestEmailSearchFilterQuotesInput(t *testing.T) {
	re := emailSearchFilter("a.b+c")["email"].(primitive.Regex)
	assert.Equal(t, `a\.b\+c`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := ParseID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("not-an-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestNamed(t *testing.T) {
	err := Named(ErrNotFound, "Parcel")
	assert.EqualError(t, err, "Parcel not found")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.EqualError(t, Named(Named(ErrNotFound, "Rider"), "Parcel"), "Rider not found")
	assert.Nil(t, Named(nil, "Parcel"))
	assert.Equal(t, ErrInvalidID, Named(ErrInvalidID, "Parcel"))
}

func TestHelloSupportsTransactions(t *testing.T) {
	assert.True(t, helloSupportsTransactions(bson.M{"setName": "rs0", "isWritablePrimary": true}))
	assert.True(t, helloSupportsTransactions(bson.M{"msg": "isdbgrid"}))
	assert.False(t, helloSupportsTransactions(bson.M{"isWritablePrimary": true}))
}
