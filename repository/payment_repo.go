package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcel-delivery/models/payment"
)

type paymentRepo struct {
	coll *mongo.Collection
}

func (r *paymentRepo) Create(ctx context.Context, p *payment.Payment) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert payment: %w", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	p.ID = id
	return id, nil
}

func (r *paymentRepo) List(ctx context.Context, email string) ([]payment.Payment, error) {
	query := bson.M{}
	if email != "" {
		query["email"] = email
	}
	opts := options.Find().SetSort(bson.D{{Key: "paid_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}

	payments := []payment.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}
