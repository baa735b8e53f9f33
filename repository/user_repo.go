package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcel-delivery/models/user"
)

type userRepo struct {
	coll *mongo.Collection
}

// emailSearchFilter matches query as a case-insensitive literal substring.
func emailSearchFilter(query string) bson.M {
	return bson.M{"email": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, notFoundOnNoDocuments(err)
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *user.User) (primitive.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, fmt.Errorf("insert user %s: %w", u.Email, ErrDuplicate)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	id, _ := result.InsertedID.(primitive.ObjectID)
	u.ID = id
	return id, nil
}

func (r *userRepo) TouchLastLogin(ctx context.Context, email string, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"last_log_in": at}})
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (r *userRepo) SearchByEmail(ctx context.Context, query string, limit int64) ([]user.User, error) {
	opts := options.Find().SetLimit(limit).SetProjection(bson.M{"email": 1, "name": 1, "role": 1, "created_at": 1})
	cursor, err := r.coll.Find(ctx, emailSearchFilter(query), opts)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	users := []user.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *userRepo) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	return r.updateRole(ctx, bson.M{"_id": id}, role)
}

func (r *userRepo) UpdateRoleByEmail(ctx context.Context, email, role string) error {
	return r.updateRole(ctx, bson.M{"email": email}, role)
}

func (r *userRepo) updateRole(ctx context.Context, filter bson.M, role string) error {
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
