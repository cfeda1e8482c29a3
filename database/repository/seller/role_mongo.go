package sellerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRoleRepo implements RoleRepository using MongoDB.
type MongoRoleRepo struct {
	coll *mongo.Collection
}

// NewMongoRoleRepo uses the "user_roles" collection of db.
func NewMongoRoleRepo(db *mongo.Database) *MongoRoleRepo {
	return &MongoRoleRepo{coll: db.Collection("user_roles")}
}

func (r *MongoRoleRepo) HasRole(ctx context.Context, userID, role string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID, "role": role})
	if err != nil {
		return false, fmt.Errorf("failed to check role %s for user %s: %w", role, userID, err)
	}
	return n > 0, nil
}
