package sellerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blinno/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoProfileRepo uses the "seller_profiles" collection of db.
func NewMongoProfileRepo(db *mongo.Database) *MongoProfileRepo {
	return &MongoProfileRepo{
		coll: db.Collection("seller_profiles"),
		now:  time.Now,
	}
}

func (r *MongoProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.SellerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.SellerProfile
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch seller profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

func (r *MongoProfileRepo) Upsert(ctx context.Context, userID string, patch models.ProfilePatch) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID}
	update := buildProfileUpdate(patch, r.now())
	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to upsert seller profile for user %s: %w", userID, err)
	}
	return nil
}

// buildProfileUpdate turns a patch into a partial $set; absent fields stay untouched.
func buildProfileUpdate(patch models.ProfilePatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if patch.SellerType != nil {
		set["sellerType"] = *patch.SellerType
	}
	if patch.OnboardingCompleted != nil {
		set["onboardingCompleted"] = *patch.OnboardingCompleted
	}
	if patch.OnboardingVersion != nil {
		set["onboardingVersion"] = *patch.OnboardingVersion
	}
	if patch.OnboardingData != nil {
		set["onboardingData"] = *patch.OnboardingData
	}
	if patch.CategorySpecificData != nil {
		set["categorySpecificData"] = patch.CategorySpecificData
	}
	return bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"createdAt": now},
	}
}

func (r *MongoProfileRepo) ListOutdatedCompleted(ctx context.Context, version int, limit int64) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"onboardingCompleted": true,
		"onboardingVersion":   bson.M{"$lt": version},
	}
	opts := options.Find().SetProjection(bson.M{"userId": 1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list outdated profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var userIDs []string
	for cursor.Next(ctx) {
		var row struct {
			UserID string `bson:"userId"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
		userIDs = append(userIDs, row.UserID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return userIDs, nil
}
