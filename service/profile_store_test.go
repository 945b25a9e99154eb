package service

import (
	"context"
	"sync"

	"wizspeek/database"
	"wizspeek/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memProfiles hands out copies and writes the way ProfileRepository does:
// Save leaves contactPrivacy alone and override edits touch one entry.
type memProfiles struct {
	mu       sync.Mutex
	profiles map[primitive.ObjectID]*models.Profile
}

func newMemProfiles(ps ...*models.Profile) *memProfiles {
	m := &memProfiles{profiles: map[primitive.ObjectID]*models.Profile{}}
	for _, p := range ps {
		m.profiles[p.UserID] = cloneProfile(p)
	}
	return m
}

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

func (m *memProfiles) Create(_ context.Context, profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UserID] = cloneProfile(profile)
	return nil
}

func (m *memProfiles) FindByUserID(_ context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (m *memProfiles) FindByUserIDs(ctx context.Context, userIDs []primitive.ObjectID) (map[primitive.ObjectID]*models.Profile, error) {
	out := map[primitive.ObjectID]*models.Profile{}
	for _, id := range userIDs {
		if p, err := m.FindByUserID(ctx, id); err == nil {
			out[id] = p
		}
	}
	return out, nil
}

func (m *memProfiles) Save(_ context.Context, profile *models.Profile) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.profiles[profile.UserID]
	if !ok {
		return nil, database.ErrNotFound
	}
	next := cloneProfile(profile)
	next.ContactPrivacy = stored.ContactPrivacy
	m.profiles[profile.UserID] = next
	return cloneProfile(next), nil
}

func (m *memProfiles) UpdateContactOverride(_ context.Context, ownerID, contactID primitive.ObjectID, ch models.OverrideChange) (*models.ContactOverride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[ownerID]
	if !ok {
		return nil, database.ErrNotFound
	}
	o := p.EnsureOverride(contactID)
	o.Apply(ch)
	return cloneProfile(p).OverrideFor(contactID), nil
}

func (m *memProfiles) RemoveContactOverride(_ context.Context, ownerID, contactID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[ownerID]; ok {
		p.RemoveOverride(contactID)
	}
	return nil
}

func (m *memProfiles) stored(userID primitive.ObjectID) *models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneProfile(m.profiles[userID])
}
