package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Invitation struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Code             string              `bson:"code" json:"code"`
	InviterID        primitive.ObjectID  `bson:"inviterId" json:"inviterId"`
	RelationshipType RelationshipType    `bson:"relationshipType" json:"relationshipType"`
	CreatedAt        int64               `bson:"createdAt" json:"createdAt"`
	ExpiresAt        int64               `bson:"expiresAt" json:"expiresAt"`
	AcceptedBy       *primitive.ObjectID `bson:"acceptedBy,omitempty" json:"acceptedBy,omitempty"`
	AcceptedAt       int64               `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
}

func (i *Invitation) Accepted() bool {
	return i.AcceptedBy != nil
}

func (i *Invitation) Expired(now int64) bool {
	return i.ExpiresAt > 0 && now >= i.ExpiresAt
}
