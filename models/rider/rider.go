package rider

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Rider struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Phone            string             `bson:"phone" json:"phone"`
	Age              int                `bson:"age,omitempty" json:"age,omitempty"`
	Region           string             `bson:"region" json:"region"`
	District         string             `bson:"district" json:"district"`
	NID              string             `bson:"nid,omitempty" json:"nid,omitempty"`
	BikeBrand        string             `bson:"bike_brand,omitempty" json:"bike_brand,omitempty"`
	BikeRegistration string             `bson:"bike_registration,omitempty" json:"bike_registration,omitempty"`
	Status           Status             `bson:"status" json:"status"`
	WorkStatus       WorkStatus         `bson:"work_status,omitempty" json:"work_status,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}

type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusActive      Status = "active"
	StatusRejected    Status = "rejected"
	StatusDeactivated Status = "deactivated"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusActive, StatusRejected, StatusDeactivated:
		return true
	default:
		return false
	}
}

type WorkStatus string

const (
	WorkStatusIdle       WorkStatus = "idle"
	WorkStatusInDelivery WorkStatus = "in_delivery"
)
