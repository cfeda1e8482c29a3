package sellerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the onboarding queries rely on.
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	plan := map[string][]mongo.IndexModel{
		"seller_profiles": {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{
				{Key: "onboardingCompleted", Value: 1},
				{Key: "onboardingVersion", Value: 1},
			}},
		},
		"seller_subscriptions": {
			{Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "status", Value: 1},
				{Key: "createdAt", Value: -1},
			}},
		},
		"user_roles": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "role", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"onboarding_resets": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "resetAt", Value: -1}}},
		},
	}

	for coll, indexes := range plan {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
