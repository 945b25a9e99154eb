package database

import (
	"context"
	"fmt"
	"time"

	"wizspeek/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RelationshipRepository struct {
	collection *mongo.Collection
}

func NewRelationshipRepository(db *mongo.Database) *RelationshipRepository {
	return &RelationshipRepository{collection: db.Collection(RelationshipsCollection)}
}

func (r *RelationshipRepository) Create(ctx context.Context, rel *models.Relationship) error {
	if rel.ID.IsZero() {
		rel.ID = primitive.NewObjectID()
	}
	now := time.Now().Unix()
	rel.CreatedAt = now
	rel.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, rel); err != nil {
		return fmt.Errorf("failed to insert relationship: %w", translate(err))
	}
	return nil
}

// Find returns how ownerID shares with contactID.
func (r *RelationshipRepository) Find(ctx context.Context, ownerID, contactID primitive.ObjectID) (*models.Relationship, error) {
	var rel models.Relationship
	err := r.collection.FindOne(ctx, bson.M{"ownerId": ownerID, "contactId": contactID}).Decode(&rel)
	if err != nil {
		return nil, translate(err)
	}
	return &rel, nil
}

func (r *RelationshipRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Relationship, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	defer cursor.Close(ctx)

	rels := []*models.Relationship{}
	if err := cursor.All(ctx, &rels); err != nil {
		return nil, fmt.Errorf("failed to decode relationships: %w", err)
	}
	return rels, nil
}

func (r *RelationshipRepository) Update(ctx context.Context, ownerID, contactID primitive.ObjectID, relType models.RelationshipType, visibility models.ProfileVisibility) (*models.Relationship, error) {
	set := bson.M{"relationshipType": relType, "updatedAt": time.Now().Unix()}
	if visibility != "" {
		set["profileVisibility"] = visibility
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rel models.Relationship
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"ownerId": ownerID, "contactId": contactID},
		bson.M{"$set": set},
		opts,
	).Decode(&rel)
	if err != nil {
		return nil, translate(err)
	}
	return &rel, nil
}

func (r *RelationshipRepository) Delete(ctx context.Context, ownerID, contactID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"ownerId": ownerID, "contactId": contactID})
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
