package database

import (
	"context"
	"fmt"

	"wizspeek/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PushSubscriptionRepository struct {
	collection *mongo.Collection
}

func NewPushSubscriptionRepository(db *mongo.Database) *PushSubscriptionRepository {
	return &PushSubscriptionRepository{collection: db.Collection(PushSubscriptionsCollection)}
}

// Upsert keeps one subscription per user; a new browser replaces the old one.
func (r *PushSubscriptionRepository) Upsert(ctx context.Context, sub *models.PushSubscription) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": sub.UserID},
		bson.M{
			"$set":         bson.M{"sub": sub.Sub},
			"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

func (r *PushSubscriptionRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.PushSubscription, error) {
	var sub models.PushSubscription
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&sub); err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func (r *PushSubscriptionRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}
