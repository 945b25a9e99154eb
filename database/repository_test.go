package database

import (
	"context"
	"errors"
	"testing"

	"wizspeek/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestProfileRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by user id decodes sections and overrides", func(mt *mtest.T) {
		repo := NewProfileRepository(mt.DB)
		userID := primitive.NewObjectID()
		contactID := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "wizspeek.profiles", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "userId", Value: userID},
			{Key: "general", Value: bson.D{{Key: "education", Value: "MSc"}, {Key: "showEducation", Value: true}}},
			{Key: "personal", Value: bson.D{{Key: "ageDisclosure", Value: "adult_minor"}, {Key: "age", Value: 31}}},
			{Key: "defaultNameDisplay", Value: "first_initial_last"},
			{Key: "contactPrivacy", Value: bson.A{
				bson.D{
					{Key: "contactId", Value: contactID},
					{Key: "allowPersonalInfo", Value: false},
					{Key: "hideFields", Value: bson.A{"education"}},
					{Key: "showFields", Value: bson.A{}},
				},
			}},
		}))

		p, err := repo.FindByUserID(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, userID, p.UserID)
		assert.Equal(t, "MSc", p.General.Education)
		assert.True(t, p.General.ShowEducation)
		assert.Equal(t, models.AgeAdultMinor, p.Personal.AgeDisclosure)
		assert.Equal(t, models.NameFirstInitialLast, p.DefaultNameDisplay)

		o := p.OverrideFor(contactID)
		require.NotNil(t, o)
		assert.True(t, o.PersonalDenied())
		assert.Nil(t, o.AllowProfessionalInfo)
		assert.Equal(t, []string{"education"}, o.HideFields)
	})

	mt.Run("missing profile is ErrNotFound", func(mt *mtest.T) {
		repo := NewProfileRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "wizspeek.profiles", mtest.FirstBatch))

		_, err := repo.FindByUserID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("duplicate profile insert is ErrDuplicate", func(mt *mtest.T) {
		repo := NewProfileRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))

		err := repo.Create(context.Background(), models.NewDefaultProfile(primitive.NewObjectID(), 1))
		assert.True(t, errors.Is(err, ErrDuplicate))
	})

	mt.Run("save returns the stored document", func(mt *mtest.T) {
		repo := NewProfileRepository(mt.DB)
		p := models.NewDefaultProfile(primitive.NewObjectID(), 1)
		p.General.Location = "Accra"

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: p.ID},
			{Key: "userId", Value: p.UserID},
			{Key: "general", Value: bson.D{{Key: "location", Value: "Accra"}}},
		}}))

		saved, err := repo.Save(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, "Accra", saved.General.Location)
		assert.NotZero(t, p.UpdatedAt)

		// per-contact settings are owned by UpdateContactOverride
		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		_, err = evt.Command.LookupErr("update", "$set", "contactPrivacy")
		assert.Error(t, err)
	})

	mt.Run("override update touches only the contact's entry", func(mt *mtest.T) {
		repo := NewProfileRepository(mt.DB)
		owner, contact := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "userId", Value: owner},
				{Key: "contactPrivacy", Value: bson.A{
					bson.D{
						{Key: "contactId", Value: contact},
						{Key: "hideFields", Value: bson.A{"personalBio"}},
						{Key: "showFields", Value: bson.A{}},
					},
				}},
			}}),
		)

		o, err := repo.UpdateContactOverride(context.Background(), owner, contact, models.OverrideChange{HideField: "personalBio"})
		require.NoError(t, err)
		assert.True(t, o.Hides("personalBio"))

		ensure := mt.GetStartedEvent()
		require.NotNil(t, ensure)
		assert.Equal(t, "update", ensure.CommandName)

		edit := mt.GetStartedEvent()
		require.NotNil(t, edit)
		assert.Equal(t, "findAndModify", edit.CommandName)
		assert.Equal(t, "personalBio", edit.Command.Lookup("update", "$addToSet", "contactPrivacy.$[o].hideFields").StringValue())
		assert.Equal(t, "personalBio", edit.Command.Lookup("update", "$pull", "contactPrivacy.$[o].showFields").StringValue())
		_, err = edit.Command.LookupErr("update", "$set", "contactPrivacy")
		assert.Error(t, err)

		filters, err := edit.Command.Lookup("arrayFilters").Array().Values()
		require.NoError(t, err)
		require.Len(t, filters, 1)
		assert.Equal(t, contact, filters[0].Document().Lookup("o.contactId").ObjectID())
	})

	mt.Run("override update for a missing profile is ErrNotFound", func(mt *mtest.T) {
		repo := NewProfileRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
		)

		_, err := repo.UpdateContactOverride(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), models.OverrideChange{ResetField: "skills"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOverrideUpdate(t *testing.T) {
	deny := true
	mode := models.NamePseudonym

	u := overrideUpdate(models.OverrideChange{AllowPersonalInfo: &deny, NameDisplayType: &mode}, 42)
	assert.Equal(t, bson.M{"$set": bson.M{
		"updatedAt": int64(42),
		"contactPrivacy.$[o].allowPersonalInfo": true,
		"contactPrivacy.$[o].nameDisplayType":   models.NamePseudonym,
	}}, u)

	u = overrideUpdate(models.OverrideChange{ShowField: "jobTitle"}, 42)
	assert.Equal(t, bson.M{"contactPrivacy.$[o].showFields": "jobTitle"}, u["$addToSet"])
	assert.Equal(t, bson.M{"contactPrivacy.$[o].hideFields": "jobTitle"}, u["$pull"])

	u = overrideUpdate(models.OverrideChange{ResetField: "jobTitle"}, 42)
	assert.NotContains(t, u, "$addToSet")
	assert.Equal(t, bson.M{
		"contactPrivacy.$[o].hideFields": "jobTitle",
		"contactPrivacy.$[o].showFields": "jobTitle",
	}, u["$pull"])
}

func TestRelationshipRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find", func(mt *mtest.T) {
		repo := NewRelationshipRepository(mt.DB)
		owner, contact := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "wizspeek.relationships", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "ownerId", Value: owner},
			{Key: "contactId", Value: contact},
			{Key: "relationshipType", Value: "both"},
			{Key: "profileVisibility", Value: "full"},
		}))

		rel, err := repo.Find(context.Background(), owner, contact)
		require.NoError(t, err)
		assert.Equal(t, models.RelationshipBoth, rel.RelationshipType)
		assert.Equal(t, models.VisibilityFull, rel.ProfileVisibility)
	})

	mt.Run("list by owner", func(mt *mtest.T) {
		repo := NewRelationshipRepository(mt.DB)
		owner := primitive.NewObjectID()

		first := mtest.CreateCursorResponse(1, "wizspeek.relationships", mtest.FirstBatch,
			bson.D{{Key: "ownerId", Value: owner}, {Key: "contactId", Value: primitive.NewObjectID()}, {Key: "relationshipType", Value: "personal"}},
		)
		next := mtest.CreateCursorResponse(0, "wizspeek.relationships", mtest.NextBatch,
			bson.D{{Key: "ownerId", Value: owner}, {Key: "contactId", Value: primitive.NewObjectID()}, {Key: "relationshipType", Value: "basic"}},
		)
		mt.AddMockResponses(first, next)

		rels, err := repo.ListByOwner(context.Background(), owner)
		require.NoError(t, err)
		require.Len(t, rels, 2)
		assert.Equal(t, models.RelationshipPersonal, rels[0].RelationshipType)
		assert.Equal(t, models.RelationshipBasic, rels[1].RelationshipType)
	})

	mt.Run("delete missing is ErrNotFound", func(mt *mtest.T) {
		repo := NewRelationshipRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestInvitationRepository_MarkAcceptedAlreadyTaken(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no matching document", func(mt *mtest.T) {
		repo := NewInvitationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.MarkAccepted(context.Background(), "code", primitive.NewObjectID(), 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	mt.Run("release only clears the caller's claim", func(mt *mtest.T) {
		repo := NewInvitationRepository(mt.DB)
		accepter := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		require.NoError(t, repo.ReleaseAcceptance(context.Background(), "code", accepter))

		evt := mt.GetStartedEvent()
		require.NotNil(t, evt)
		stmt := evt.Command.Lookup("updates").Array().Index(0).Value().Document()
		assert.Equal(t, "code", stmt.Lookup("q", "code").StringValue())
		assert.Equal(t, accepter, stmt.Lookup("q", "acceptedBy").ObjectID())
		_, err := stmt.LookupErr("u", "$unset", "acceptedBy")
		assert.NoError(t, err)
	})
}

func TestUserRepository_UpdateStatusUnknownUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no match", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.UpdateStatus(context.Background(), primitive.NewObjectID(), models.StatusBusy)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
