package service

import (
	"context"

	"wizspeek/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The stores are satisfied by the repositories in package database.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error)
	UpdateAccount(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	FindByUserIDs(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	UpdateContactOverride(ctx context.Context, ownerID, contactID primitive.ObjectID, ch models.OverrideChange) (*models.ContactOverride, error)
	RemoveContactOverride(ctx context.Context, ownerID, contactID primitive.ObjectID) error
}

type RelationshipStore interface {
	Create(ctx context.Context, rel *models.Relationship) error
	Find(ctx context.Context, ownerID, contactID primitive.ObjectID) (*models.Relationship, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Relationship, error)
	Update(ctx context.Context, ownerID, contactID primitive.ObjectID, relType models.RelationshipType, visibility models.ProfileVisibility) (*models.Relationship, error)
	Delete(ctx context.Context, ownerID, contactID primitive.ObjectID) error
}

type InvitationStore interface {
	Create(ctx context.Context, inv *models.Invitation) error
	FindByCode(ctx context.Context, code string) (*models.Invitation, error)
	MarkAccepted(ctx context.Context, code string, accepterID primitive.ObjectID, at int64) (*models.Invitation, error)
	ReleaseAcceptance(ctx context.Context, code string, accepterID primitive.ObjectID) error
}

// Notifier delivers an event to one user. Implementations must not block the caller.
type Notifier interface {
	Notify(userID primitive.ObjectID, n models.Notification)
}

// MultiNotifier fans an event out to several channels.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(userID primitive.ObjectID, n models.Notification) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(userID, n)
		}
	}
}

type noopNotifier struct{}

func (noopNotifier) Notify(primitive.ObjectID, models.Notification) {}

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	Generate(userID string) (string, error)
}
