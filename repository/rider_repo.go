package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcel-delivery/models/rider"
)

type riderRepo struct {
	coll *mongo.Collection
}

func riderListFilter(f RiderFilter) bson.M {
	query := bson.M{}
	if f.District != "" {
		query["district"] = f.District
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	return query
}

func (r *riderRepo) Create(ctx context.Context, rd *rider.Rider) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, rd)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert rider: %w", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	rd.ID = id
	return id, nil
}

func (r *riderRepo) List(ctx context.Context, filter RiderFilter) ([]rider.Rider, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, riderListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find riders: %w", err)
	}

	riders := []rider.Rider{}
	if err := cursor.All(ctx, &riders); err != nil {
		return nil, fmt.Errorf("decode riders: %w", err)
	}
	return riders, nil
}

func (r *riderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*rider.Rider, error) {
	var rd rider.Rider
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rd); err != nil {
		return nil, notFoundOnNoDocuments(err)
	}
	return &rd, nil
}

func (r *riderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status rider.Status) error {
	return r.set(ctx, id, bson.M{"status": status})
}

func (r *riderRepo) UpdateWorkStatus(ctx context.Context, id primitive.ObjectID, status rider.WorkStatus) error {
	return r.set(ctx, id, bson.M{"work_status": status})
}

func (r *riderRepo) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update rider: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
