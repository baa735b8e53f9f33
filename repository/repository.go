package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/models/parcel"
	"parcel-delivery/models/payment"
	"parcel-delivery/models/rider"
	"parcel-delivery/models/tracking"
	"parcel-delivery/models/user"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid id")
	ErrDuplicate = errors.New("duplicate key")
)

// NotFoundError is an ErrNotFound that names the missing entity.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Named replaces ErrNotFound with a NotFoundError for entity and returns any
// other error unchanged.
func Named(err error, entity string) error {
	var named *NotFoundError
	if errors.As(err, &named) {
		return err
	}
	if errors.Is(err, ErrNotFound) {
		return &NotFoundError{Entity: entity}
	}
	return err
}

// Store groups the collections and the transaction scope shared by controllers.
type Store interface {
	Parcels() ParcelRepository
	Users() UserRepository
	Riders() RiderRepository
	Payments() PaymentRepository
	Trackings() TrackingRepository
	// WithTransaction runs fn so that every write made with the ctx it receives
	// commits or aborts together.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type ParcelFilter struct {
	CreatedBy      string
	PaymentStatus  string
	DeliveryStatus string
}

type ParcelRepository interface {
	List(ctx context.Context, filter ParcelFilter) ([]parcel.Parcel, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*parcel.Parcel, error)
	Create(ctx context.Context, p *parcel.Parcel) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AssignRider(ctx context.Context, id primitive.ObjectID, assignment parcel.Assignment) error
	// UpdateDeliveryStatus sets the delivery status of a parcel. A non-empty
	// from only matches a parcel currently in that status; ErrNotFound is
	// returned when nothing matched.
	UpdateDeliveryStatus(ctx context.Context, id primitive.ObjectID, from, to parcel.DeliveryStatus, at time.Time) error
	// MarkPaid returns ErrNotFound when the parcel is missing or already paid.
	MarkPaid(ctx context.Context, id primitive.ObjectID) error
	Cashout(ctx context.Context, id primitive.ObjectID, at time.Time) error
	CountByDeliveryStatus(ctx context.Context) ([]parcel.StatusCount, error)
	ListByRider(ctx context.Context, riderEmail string, statuses []parcel.DeliveryStatus) ([]parcel.Parcel, error)
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, u *user.User) (primitive.ObjectID, error)
	TouchLastLogin(ctx context.Context, email string, at time.Time) error
	SearchByEmail(ctx context.Context, query string, limit int64) ([]user.User, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
	UpdateRoleByEmail(ctx context.Context, email, role string) error
}

type RiderFilter struct {
	District string
	Status   rider.Status
}

type RiderRepository interface {
	Create(ctx context.Context, r *rider.Rider) (primitive.ObjectID, error)
	List(ctx context.Context, filter RiderFilter) ([]rider.Rider, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*rider.Rider, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status rider.Status) error
	UpdateWorkStatus(ctx context.Context, id primitive.ObjectID, status rider.WorkStatus) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) (primitive.ObjectID, error)
	// List returns payments newest first; an empty email lists every payment.
	List(ctx context.Context, email string) ([]payment.Payment, error)
}

type TrackingRepository interface {
	Append(ctx context.Context, e *tracking.Event) (primitive.ObjectID, error)
	ListByTrackingID(ctx context.Context, trackingID string) ([]tracking.Event, error)
}

// ParseID converts a hex document id, returning ErrInvalidID when malformed.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
