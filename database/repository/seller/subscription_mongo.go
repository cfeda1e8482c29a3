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

// MongoSubscriptionRepo implements SubscriptionRepository using MongoDB.
type MongoSubscriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoSubscriptionRepo uses the "seller_subscriptions" collection of db.
func NewMongoSubscriptionRepo(db *mongo.Database) *MongoSubscriptionRepo {
	return &MongoSubscriptionRepo{coll: db.Collection("seller_subscriptions")}
}

func (r *MongoSubscriptionRepo) GetActiveByUserID(ctx context.Context, userID string) (*models.SellerSubscription, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, "status": models.SubscriptionStatusActive}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var sub models.SellerSubscription
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&sub); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to fetch subscription for user %s: %w", userID, err)
	}
	return &sub, nil
}
