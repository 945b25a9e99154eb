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

type ProfileRepository struct {
	collection *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{collection: db.Collection(ProfilesCollection)}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	now := time.Now().Unix()
	if profile.CreatedAt == 0 {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("failed to insert profile: %w", translate(err))
	}
	return nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile); err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// Save writes the owner-edited sections and name defaults. Per-contact
// settings are never written here; they change only through
// UpdateContactOverride and RemoveContactOverride.
func (r *ProfileRepository) Save(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	profile.UpdatedAt = time.Now().Unix()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		"general":            profile.General,
		"personal":           profile.Personal,
		"professional":       profile.Professional,
		"defaultNameDisplay": profile.DefaultNameDisplay,
		"defaultPseudonym":   profile.DefaultPseudonym,
		"updatedAt":          profile.UpdatedAt,
	}}

	var updated models.Profile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": profile.UserID}, update, opts).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", translate(err))
	}
	return &updated, nil
}

// UpdateContactOverride applies ch to the owner's entry for contactID and
// nothing else. The entry is appended first if missing; both steps are
// single atomic updates, so concurrent edits for other contacts survive.
func (r *ProfileRepository) UpdateContactOverride(ctx context.Context, ownerID, contactID primitive.ObjectID, ch models.OverrideChange) (*models.ContactOverride, error) {
	now := time.Now().Unix()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": ownerID, "contactPrivacy.contactId": bson.M{"$ne": contactID}},
		bson.M{
			"$push": bson.M{"contactPrivacy": models.ContactOverride{
				ContactID:  contactID,
				HideFields: []string{},
				ShowFields: []string{},
			}},
			"$set": bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add contact override: %w", err)
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetArrayFilters(options.ArrayFilters{Filters: []interface{}{bson.M{"o.contactId": contactID}}})

	var updated models.Profile
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"userId": ownerID}, overrideUpdate(ch, now), opts).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to update contact override: %w", translate(err))
	}

	o := updated.OverrideFor(contactID)
	if o == nil {
		// removed between the two updates
		return nil, ErrNotFound
	}
	return o, nil
}

// overrideUpdate builds the update document for one entry, addressed as $[o].
func overrideUpdate(ch models.OverrideChange, now int64) bson.M {
	const entry = "contactPrivacy.$[o]."

	set := bson.M{"updatedAt": now}
	if ch.AllowPersonalInfo != nil {
		set[entry+"allowPersonalInfo"] = *ch.AllowPersonalInfo
	}
	if ch.AllowProfessionalInfo != nil {
		set[entry+"allowProfessionalInfo"] = *ch.AllowProfessionalInfo
	}
	if ch.NameDisplayType != nil {
		set[entry+"nameDisplayType"] = *ch.NameDisplayType
	}
	if ch.CustomPseudonym != nil {
		set[entry+"customPseudonym"] = *ch.CustomPseudonym
	}

	update := bson.M{"$set": set}
	pull := bson.M{}
	switch {
	case ch.HideField != "":
		update["$addToSet"] = bson.M{entry + "hideFields": ch.HideField}
		pull[entry+"showFields"] = ch.HideField
	case ch.ShowField != "":
		update["$addToSet"] = bson.M{entry + "showFields": ch.ShowField}
		pull[entry+"hideFields"] = ch.ShowField
	case ch.ResetField != "":
		pull[entry+"hideFields"] = ch.ResetField
		pull[entry+"showFields"] = ch.ResetField
	}
	if len(pull) > 0 {
		update["$pull"] = pull
	}
	return update
}

// RemoveContactOverride pulls the owner's settings for one contact.
func (r *ProfileRepository) RemoveContactOverride(ctx context.Context, ownerID, contactID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": ownerID},
		bson.M{
			"$pull": bson.M{"contactPrivacy": bson.M{"contactId": contactID}},
			"$set":  bson.M{"updatedAt": time.Now().Unix()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to remove contact override: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByUserIDs(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]*models.Profile, error) {
	out := make(map[primitive.ObjectID]*models.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"userId": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*models.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	for _, p := range profiles {
		out[p.UserID] = p
	}
	return out, nil
}
