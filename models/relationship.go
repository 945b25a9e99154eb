package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RelationshipType is the owner's label for a contact. Only personal,
// professional and both unlock a gated category.
type RelationshipType string

const (
	RelationshipPersonal     RelationshipType = "personal"
	RelationshipProfessional RelationshipType = "professional"
	RelationshipBoth         RelationshipType = "both"
	RelationshipAcademic     RelationshipType = "academic"
	RelationshipBasic        RelationshipType = "basic"
	RelationshipNone         RelationshipType = "none"
)

func (t RelationshipType) IsValid() bool {
	switch t {
	case RelationshipPersonal, RelationshipProfessional, RelationshipBoth,
		RelationshipAcademic, RelationshipBasic, RelationshipNone:
		return true
	}
	return false
}

func (t RelationshipType) GrantsPersonal() bool {
	return t == RelationshipPersonal || t == RelationshipBoth
}

func (t RelationshipType) GrantsProfessional() bool {
	return t == RelationshipProfessional || t == RelationshipBoth
}

// ProfileVisibility is a descriptive label kept for clients; it does not gate fields.
type ProfileVisibility string

const (
	VisibilityBasic  ProfileVisibility = "basic"
	VisibilityFull   ProfileVisibility = "full"
	VisibilityCustom ProfileVisibility = "custom"
)

func (v ProfileVisibility) IsValid() bool {
	return v == VisibilityBasic || v == VisibilityFull || v == VisibilityCustom
}

// Relationship is directional: OwnerID shares their profile with ContactID
// under RelationshipType.
type Relationship struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID           primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	ContactID         primitive.ObjectID `bson:"contactId" json:"contactId"`
	RelationshipType  RelationshipType   `bson:"relationshipType" json:"relationshipType"`
	ProfileVisibility ProfileVisibility  `bson:"profileVisibility" json:"profileVisibility"`
	CreatedAt         int64              `bson:"createdAt" json:"createdAt"`
	UpdatedAt         int64              `bson:"updatedAt" json:"updatedAt"`
}

// Type is nil-safe: no relationship behaves like an unlabelled one.
func (r *Relationship) Type() RelationshipType {
	if r == nil {
		return ""
	}
	return r.RelationshipType
}
