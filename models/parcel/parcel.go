package parcel

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Parcel is a shipment tracked from creation through delivery and payment.
type Parcel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TrackingID string             `bson:"tracking_id" json:"tracking_id"`
	Title      string             `bson:"title" json:"title"`
	Type       string             `bson:"type" json:"type"`
	Weight     float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	Cost       float64            `bson:"cost" json:"cost"`

	SenderName     string `bson:"sender_name" json:"sender_name"`
	SenderPhone    string `bson:"sender_phone" json:"sender_phone"`
	SenderRegion   string `bson:"sender_region" json:"sender_region"`
	SenderDistrict string `bson:"sender_district" json:"sender_district"`
	SenderAddress  string `bson:"sender_address" json:"sender_address"`

	ReceiverName     string `bson:"receiver_name" json:"receiver_name"`
	ReceiverPhone    string `bson:"receiver_phone" json:"receiver_phone"`
	ReceiverRegion   string `bson:"receiver_region" json:"receiver_region"`
	ReceiverDistrict string `bson:"receiver_district" json:"receiver_district"`
	ReceiverAddress  string `bson:"receiver_address" json:"receiver_address"`
	Instructions     string `bson:"instructions,omitempty" json:"instructions,omitempty"`

	CreatedBy      string         `bson:"created_by" json:"created_by"`
	CreatedAt      time.Time      `bson:"createdAt" json:"createdAt"`
	PaymentStatus  PaymentStatus  `bson:"payment_status" json:"payment_status"`
	DeliveryStatus DeliveryStatus `bson:"delivery_status" json:"delivery_status"`

	AssignedRiderID    primitive.ObjectID `bson:"assigned_rider_id,omitempty" json:"assigned_rider_id,omitempty"`
	AssignedRiderEmail string             `bson:"assigned_rider_email,omitempty" json:"assigned_rider_email,omitempty"`
	AssignedRiderName  string             `bson:"assigned_rider_name,omitempty" json:"assigned_rider_name,omitempty"`
	AssignedAt         *time.Time         `bson:"assigned_at,omitempty" json:"assigned_at,omitempty"`
	PickedAt           *time.Time         `bson:"picked_at,omitempty" json:"picked_at,omitempty"`
	DeliveredAt        *time.Time         `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`

	CashoutStatus CashoutStatus `bson:"cashout_status,omitempty" json:"cashout_status,omitempty"`
	CashedOutAt   *time.Time    `bson:"cashed_out_at,omitempty" json:"cashed_out_at,omitempty"`
}

// Assignment holds the rider fields written onto a parcel on assignment.
type Assignment struct {
	RiderID    primitive.ObjectID
	RiderEmail string
	RiderName  string
	AssignedAt time.Time
}

// StatusCount is one row of the delivery status aggregation.
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}
