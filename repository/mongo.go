package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcel-delivery/logger"
)

const (
	ParcelCollection   = "parcels"
	PaymentCollection  = "payments"
	UserCollection     = "users"
	RiderCollection    = "riders"
	TrackingCollection = "trackings"
)

type MongoStore struct {
	client       *mongo.Client
	transactions bool

	parcels   *parcelRepo
	users     *userRepo
	riders    *riderRepo
	payments  *paymentRepo
	trackings *trackingRepo
}

// NewMongoStore wires the five collections of db. When transactions is false
// WithTransaction runs its function without a session, for standalone servers.
func NewMongoStore(client *mongo.Client, db *mongo.Database, transactions bool) *MongoStore {
	return &MongoStore{
		client:       client,
		transactions: transactions,
		parcels:      &parcelRepo{coll: db.Collection(ParcelCollection)},
		users:        &userRepo{coll: db.Collection(UserCollection)},
		riders:       &riderRepo{coll: db.Collection(RiderCollection)},
		payments:     &paymentRepo{coll: db.Collection(PaymentCollection)},
		trackings:    &trackingRepo{coll: db.Collection(TrackingCollection)},
	}
}

func (s *MongoStore) Parcels() ParcelRepository     { return s.parcels }
func (s *MongoStore) Users() UserRepository         { return s.users }
func (s *MongoStore) Riders() RiderRepository       { return s.riders }
func (s *MongoStore) Payments() PaymentRepository   { return s.payments }
func (s *MongoStore) Trackings() TrackingRepository { return s.trackings }

func (s *MongoStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactions {
		return fn(ctx)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// SupportsTransactions reports whether client is connected to a replica set or
// a sharded cluster. Standalone servers reject multi-document transactions.
func SupportsTransactions(ctx context.Context, client *mongo.Client) (bool, error) {
	var hello bson.M
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return false, fmt.Errorf("hello: %w", err)
	}
	return helloSupportsTransactions(hello), nil
}

func helloSupportsTransactions(hello bson.M) bool {
	if _, ok := hello["setName"]; ok {
		return true
	}
	return hello["msg"] == "isdbgrid"
}

// EnsureIndexes creates the indexes the route handlers query by.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ParcelCollection: {
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "assigned_rider_email", Value: 1}, {Key: "delivery_status", Value: 1}}},
			{Keys: bson.D{{Key: "tracking_id", Value: 1}}},
		},
		RiderCollection: {
			{Keys: bson.D{{Key: "district", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		PaymentCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "paid_at", Value: -1}}},
		},
		TrackingCollection: {
			{Keys: bson.D{{Key: "tracking_id", Value: 1}, {Key: "timestamp", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
		logger.Success(fmt.Sprintf("Indexes ready on %s: %v", collection, names))
	}
	return nil
}

func notFoundOnNoDocuments(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
