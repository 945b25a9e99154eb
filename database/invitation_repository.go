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

type InvitationRepository struct {
	collection *mongo.Collection
}

func NewInvitationRepository(db *mongo.Database) *InvitationRepository {
	return &InvitationRepository{collection: db.Collection(InvitationsCollection)}
}

func (r *InvitationRepository) Create(ctx context.Context, inv *models.Invitation) error {
	if inv.ID.IsZero() {
		inv.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, inv); err != nil {
		return fmt.Errorf("failed to insert invitation: %w", translate(err))
	}
	return nil
}

func (r *InvitationRepository) FindByCode(ctx context.Context, code string) (*models.Invitation, error) {
	var inv models.Invitation
	if err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&inv); err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

// MarkAccepted claims an unaccepted invitation. ErrNotFound means it was
// already taken (or never existed).
func (r *InvitationRepository) MarkAccepted(ctx context.Context, code string, accepterID primitive.ObjectID, at int64) (*models.Invitation, error) {
	filter := bson.M{"code": code, "acceptedBy": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"acceptedBy": accepterID, "acceptedAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var inv models.Invitation
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&inv); err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

// ReleaseAcceptance undoes MarkAccepted, but only the claim made by accepterID.
func (r *InvitationRepository) ReleaseAcceptance(ctx context.Context, code string, accepterID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"code": code, "acceptedBy": accepterID},
		bson.M{"$unset": bson.M{"acceptedBy": "", "acceptedAt": ""}},
	)
	if err != nil {
		return fmt.Errorf("failed to release invitation: %w", err)
	}
	return nil
}
