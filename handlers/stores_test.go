package handlers_test

import (
	"context"
	"sync"

	"wizspeek/database"
	"wizspeek/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore keeps every collection in memory and behaves like the Mongo
// repositories for the errors the services inspect.
type memStore struct {
	mu            sync.Mutex
	users         map[primitive.ObjectID]*models.User
	profiles      map[primitive.ObjectID]*models.Profile
	relationships []*models.Relationship
	invitations   map[string]*models.Invitation
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[primitive.ObjectID]*models.User{},
		profiles:    map[primitive.ObjectID]*models.Profile{},
		invitations: map[string]*models.Invitation{},
	}
}

type memUsers struct{ *memStore }

func (s memUsers) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return database.ErrDuplicate
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s memUsers) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[primitive.ObjectID]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			cp := *u
			out[id] = &cp
		}
	}
	return out, nil
}

func (s memUsers) UpdateAccount(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		u.Name = v
	}
	if v, ok := fields["username"].(string); ok {
		u.Username = v
	}
	if v, ok := fields["avatar"].(string); ok {
		u.Avatar = v
	}
	cp := *u
	return &cp, nil
}

func (s memUsers) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return database.ErrNotFound
	}
	u.Status = status
	return nil
}

type memProfiles struct{ *memStore }

func cloneProfile(p *models.Profile) *models.Profile {
	cp := *p
	cp.ContactPrivacy = make([]models.ContactOverride, len(p.ContactPrivacy))
	for i, o := range p.ContactPrivacy {
		o.HideFields = append([]string{}, o.HideFields...)
		o.ShowFields = append([]string{}, o.ShowFields...)
		cp.ContactPrivacy[i] = o
	}
	return &cp
}

func (s memProfiles) Create(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.UserID]; ok {
		return database.ErrDuplicate
	}
	s.profiles[profile.UserID] = cloneProfile(profile)
	return nil
}

func (s memProfiles) FindByUserID(_ context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (s memProfiles) FindByUserIDs(_ context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[primitive.ObjectID]*models.Profile, len(userIDs))
	for _, id := range userIDs {
		if p, ok := s.profiles[id]; ok {
			out[id] = cloneProfile(p)
		}
	}
	return out, nil
}

func (s memProfiles) Save(_ context.Context, profile *models.Profile) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.profiles[profile.UserID]
	if !ok {
		return nil, database.ErrNotFound
	}
	next := cloneProfile(profile)
	next.ContactPrivacy = stored.ContactPrivacy
	s.profiles[profile.UserID] = next
	return cloneProfile(next), nil
}

func (s memProfiles) UpdateContactOverride(_ context.Context, ownerID, contactID primitive.ObjectID, ch models.OverrideChange) (*models.ContactOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[ownerID]
	if !ok {
		return nil, database.ErrNotFound
	}
	p.EnsureOverride(contactID).Apply(ch)
	return cloneProfile(p).OverrideFor(contactID), nil
}

func (s memProfiles) RemoveContactOverride(_ context.Context, ownerID, contactID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[ownerID]; ok {
		p.RemoveOverride(contactID)
	}
	return nil
}

type memRelationships struct{ *memStore }

func (s memRelationships) findLocked(ownerID, contactID primitive.ObjectID) int {
	for i, rel := range s.relationships {
		if rel.OwnerID == ownerID && rel.ContactID == contactID {
			return i
		}
	}
	return -1
}

func (s memRelationships) Create(_ context.Context, rel *models.Relationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findLocked(rel.OwnerID, rel.ContactID) >= 0 {
		return database.ErrDuplicate
	}
	cp := *rel
	s.relationships = append(s.relationships, &cp)
	return nil
}

func (s memRelationships) Find(_ context.Context, ownerID, contactID primitive.ObjectID) (*models.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findLocked(ownerID, contactID)
	if i < 0 {
		return nil, database.ErrNotFound
	}
	cp := *s.relationships[i]
	return &cp, nil
}

func (s memRelationships) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]*models.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Relationship
	for _, rel := range s.relationships {
		if rel.OwnerID == ownerID {
			cp := *rel
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s memRelationships) Update(_ context.Context, ownerID, contactID primitive.ObjectID, relType models.RelationshipType, visibility models.ProfileVisibility) (*models.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findLocked(ownerID, contactID)
	if i < 0 {
		return nil, database.ErrNotFound
	}
	s.relationships[i].RelationshipType = relType
	if visibility != "" {
		s.relationships[i].ProfileVisibility = visibility
	}
	cp := *s.relationships[i]
	return &cp, nil
}

func (s memRelationships) Delete(_ context.Context, ownerID, contactID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findLocked(ownerID, contactID)
	if i < 0 {
		return database.ErrNotFound
	}
	s.relationships = append(s.relationships[:i], s.relationships[i+1:]...)
	return nil
}

type memInvitations struct{ *memStore }

func (s memInvitations) Create(_ context.Context, inv *models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *inv
	s.invitations[inv.Code] = &cp
	return nil
}

func (s memInvitations) FindByCode(_ context.Context, code string) (*models.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invitations[code]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (s memInvitations) MarkAccepted(_ context.Context, code string, accepterID primitive.ObjectID, at int64) (*models.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invitations[code]
	if !ok || inv.AcceptedBy != nil {
		return nil, database.ErrNotFound
	}
	id := accepterID
	inv.AcceptedBy = &id
	inv.AcceptedAt = at
	cp := *inv
	return &cp, nil
}

func (s memInvitations) ReleaseAcceptance(_ context.Context, code string, accepterID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv, ok := s.invitations[code]; ok && inv.AcceptedBy != nil && *inv.AcceptedBy == accepterID {
		inv.AcceptedBy = nil
		inv.AcceptedAt = 0
	}
	return nil
}
