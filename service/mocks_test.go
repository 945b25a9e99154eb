package service

import (
	"context"
	"sync"

	"wizspeek/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).(map[primitive.ObjectID]*models.User)
	return users, args.Error(1)
}

func (m *mockUserStore) UpdateAccount(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	args := m.Called(ctx, id, fields)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockProfileStore struct{ mock.Mock }

func (m *mockProfileStore) Create(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileStore) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *mockProfileStore) FindByUserIDs(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]*models.Profile, error) {
	args := m.Called(ctx, userIDs)
	profiles, _ := args.Get(0).(map[primitive.ObjectID]*models.Profile)
	return profiles, args.Error(1)
}

func (m *mockProfileStore) Save(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	args := m.Called(ctx, profile)
	saved, _ := args.Get(0).(*models.Profile)
	return saved, args.Error(1)
}

func (m *mockProfileStore) UpdateContactOverride(ctx context.Context, ownerID, contactID primitive.ObjectID, ch models.OverrideChange) (*models.ContactOverride, error) {
	args := m.Called(ctx, ownerID, contactID, ch)
	o, _ := args.Get(0).(*models.ContactOverride)
	return o, args.Error(1)
}

func (m *mockProfileStore) RemoveContactOverride(ctx context.Context, ownerID, contactID primitive.ObjectID) error {
	return m.Called(ctx, ownerID, contactID).Error(0)
}

type mockRelationshipStore struct{ mock.Mock }

func (m *mockRelationshipStore) Create(ctx context.Context, rel *models.Relationship) error {
	return m.Called(ctx, rel).Error(0)
}

func (m *mockRelationshipStore) Find(ctx context.Context, ownerID, contactID primitive.ObjectID) (*models.Relationship, error) {
	args := m.Called(ctx, ownerID, contactID)
	rel, _ := args.Get(0).(*models.Relationship)
	return rel, args.Error(1)
}

func (m *mockRelationshipStore) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Relationship, error) {
	args := m.Called(ctx, ownerID)
	rels, _ := args.Get(0).([]*models.Relationship)
	return rels, args.Error(1)
}

func (m *mockRelationshipStore) Update(ctx context.Context, ownerID, contactID primitive.ObjectID, relType models.RelationshipType, visibility models.ProfileVisibility) (*models.Relationship, error) {
	args := m.Called(ctx, ownerID, contactID, relType, visibility)
	rel, _ := args.Get(0).(*models.Relationship)
	return rel, args.Error(1)
}

func (m *mockRelationshipStore) Delete(ctx context.Context, ownerID, contactID primitive.ObjectID) error {
	return m.Called(ctx, ownerID, contactID).Error(0)
}

type mockInvitationStore struct{ mock.Mock }

func (m *mockInvitationStore) Create(ctx context.Context, inv *models.Invitation) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *mockInvitationStore) FindByCode(ctx context.Context, code string) (*models.Invitation, error) {
	args := m.Called(ctx, code)
	inv, _ := args.Get(0).(*models.Invitation)
	return inv, args.Error(1)
}

func (m *mockInvitationStore) MarkAccepted(ctx context.Context, code string, accepterID primitive.ObjectID, at int64) (*models.Invitation, error) {
	args := m.Called(ctx, code, accepterID, at)
	inv, _ := args.Get(0).(*models.Invitation)
	return inv, args.Error(1)
}

func (m *mockInvitationStore) ReleaseAcceptance(ctx context.Context, code string, accepterID primitive.ObjectID) error {
	return m.Called(ctx, code, accepterID).Error(0)
}

type sentNotification struct {
	to primitive.ObjectID
	n  models.Notification
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (r *recordingNotifier) Notify(userID primitive.ObjectID, n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentNotification{to: userID, n: n})
}

type stubTokens struct{}

func (stubTokens) Generate(userID string) (string, error) { return "token-" + userID, nil }
