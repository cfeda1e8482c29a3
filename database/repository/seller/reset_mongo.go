package sellerRepo

import (
	"context"
	"fmt"
	"time"

	"blinno/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoResetRepo struct {
	coll *mongo.Collection
}

// NewMongoResetRepo returns a ResetHistoryRepository on the "onboarding_resets" collection.
func NewMongoResetRepo(db *mongo.Database) ResetHistoryRepository {
	return &mongoResetRepo{coll: db.Collection("onboarding_resets")}
}

// Create inserts an archived reset and returns its ID.
func (r *mongoResetRepo) Create(ctx context.Context, reset models.OnboardingReset) (string, error) {
	if reset.ID == "" {
		reset.ID = uuid.New().String()
	}
	if reset.ResetAt.IsZero() {
		reset.ResetAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, reset); err != nil {
		return "", fmt.Errorf("failed to archive onboarding reset: %w", err)
	}
	return reset.ID, nil
}

// GetByUserID returns a user's archived resets, newest first.
func (r *mongoResetRepo) GetByUserID(ctx context.Context, userID string) ([]models.OnboardingReset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "resetAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var resets []models.OnboardingReset
	if err := cursor.All(ctx, &resets); err != nil {
		return nil, err
	}
	return resets, nil
}
