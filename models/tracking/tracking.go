package tracking

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is one entry of a parcel's public tracking history.
type Event struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	TrackingID string             `bson:"tracking_id" json:"tracking_id"`
	Status     string             `bson:"status" json:"status"`
	Message    string             `bson:"message,omitempty" json:"message,omitempty"`
	UpdateBy   string             `bson:"update_by,omitempty" json:"update_by,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
