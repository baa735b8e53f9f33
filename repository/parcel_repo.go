package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcel-delivery/models/parcel"
)

type parcelRepo struct {
	coll *mongo.Collection
}

func parcelListFilter(f ParcelFilter) bson.M {
	query := bson.M{}
	if f.CreatedBy != "" {
		query["created_by"] = f.CreatedBy
	}
	if f.PaymentStatus != "" {
		query["payment_status"] = f.PaymentStatus
	}
	if f.DeliveryStatus != "" {
		query["delivery_status"] = f.DeliveryStatus
	}
	return query
}

func deliveryStatusUpdate(to parcel.DeliveryStatus, at time.Time) bson.M {
	set := bson.M{"delivery_status": to}
	switch to {
	case parcel.DeliveryStatusInTransit:
		set["picked_at"] = at
	case parcel.DeliveryStatusDelivered, parcel.DeliveryStatusServiceCenterDelivered:
		set["delivered_at"] = at
	}
	return bson.M{"$set": set}
}

func riderParcelsFilter(email string, statuses []parcel.DeliveryStatus) bson.M {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	return bson.M{
		"assigned_rider_email": email,
		"delivery_status":      bson.M{"$in": values},
	}
}

func (r *parcelRepo) List(ctx context.Context, filter ParcelFilter) ([]parcel.Parcel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, parcelListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find parcels: %w", err)
	}

	parcels := []parcel.Parcel{}
	if err := cursor.All(ctx, &parcels); err != nil {
		return nil, fmt.Errorf("decode parcels: %w", err)
	}
	return parcels, nil
}

func (r *parcelRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*parcel.Parcel, error) {
	var p parcel.Parcel
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFoundOnNoDocuments(err)
	}
	return &p, nil
}

func (r *parcelRepo) Create(ctx context.Context, p *parcel.Parcel) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert parcel: %w", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	p.ID = id
	return id, nil
}

func (r *parcelRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete parcel: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *parcelRepo) AssignRider(ctx context.Context, id primitive.ObjectID, a parcel.Assignment) error {
	update := bson.M{"$set": bson.M{
		"delivery_status":      parcel.DeliveryStatusRiderAssigned,
		"assigned_rider_id":    a.RiderID,
		"assigned_rider_email": a.RiderEmail,
		"assigned_rider_name":  a.RiderName,
		"assigned_at":          a.AssignedAt,
	}}
	return r.updateOne(ctx, bson.M{"_id": id}, update)
}

func deliveryStatusFilter(id primitive.ObjectID, from parcel.DeliveryStatus) bson.M {
	filter := bson.M{"_id": id}
	if from != "" {
		filter["delivery_status"] = from
	}
	return filter
}

func (r *parcelRepo) UpdateDeliveryStatus(ctx context.Context, id primitive.ObjectID, from, to parcel.DeliveryStatus, at time.Time) error {
	return r.updateOne(ctx, deliveryStatusFilter(id, from), deliveryStatusUpdate(to, at))
}

func (r *parcelRepo) MarkPaid(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "payment_status": bson.M{"$ne": parcel.PaymentStatusPaid}},
		bson.M{"$set": bson.M{"payment_status": parcel.PaymentStatusPaid}},
	)
	if err != nil {
		return fmt.Errorf("mark parcel paid: %w", err)
	}
	if result.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *parcelRepo) Cashout(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	update := bson.M{"$set": bson.M{
		"cashout_status": parcel.CashoutStatusCashedOut,
		"cashed_out_at":  at,
	}}
	return r.updateOne(ctx, bson.M{"_id": id}, update)
}

func (r *parcelRepo) CountByDeliveryStatus(ctx context.Context) ([]parcel.StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$delivery_status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate delivery status: %w", err)
	}

	counts := []parcel.StatusCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("decode status counts: %w", err)
	}
	return counts, nil
}

func (r *parcelRepo) ListByRider(ctx context.Context, riderEmail string, statuses []parcel.DeliveryStatus) ([]parcel.Parcel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, riderParcelsFilter(riderEmail, statuses), opts)
	if err != nil {
		return nil, fmt.Errorf("find rider parcels: %w", err)
	}

	parcels := []parcel.Parcel{}
	if err := cursor.All(ctx, &parcels); err != nil {
		return nil, fmt.Errorf("decode rider parcels: %w", err)
	}
	return parcels, nil
}

func (r *parcelRepo) updateOne(ctx context.Context, filter, update bson.M) error {
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update parcel: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
