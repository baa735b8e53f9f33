package tracking_event

import (
	"context"
	"time"

	"parcel-delivery/models/tracking"
	"parcel-delivery/repository"
)

const (
	EventParcelCreated = "parcel_created"
	EventRiderAssigned = "rider_assigned"
	EventPaymentDone   = "payment_done"
)

// RecordEvent appends one entry to a parcel's tracking history. Callers pass
// the transaction ctx so the entry commits with the change it describes.
func RecordEvent(ctx context.Context, repo repository.TrackingRepository, trackingID, status, message, updatedBy string, at time.Time) error {
	ev := tracking.Event{
		TrackingID: trackingID,
		Status:     status,
		Message:    message,
		UpdateBy:   updatedBy,
		Timestamp:  at,
	}
	_, err := repo.Append(ctx, &ev)
	return err
}
