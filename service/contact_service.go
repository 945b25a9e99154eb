package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"wizspeek/database"
	"wizspeek/models"
	"wizspeek/privacy"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactService struct {
	relationships RelationshipStore
	profiles      ProfileStore
	users         UserStore
	invitations   InvitationStore
	notifier      Notifier
	invitationTTL time.Duration
	now           func() time.Time
}

func NewContactService(relationships RelationshipStore, profiles ProfileStore, users UserStore, invitations InvitationStore, notifier Notifier, invitationTTL time.Duration) *ContactService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &ContactService{
		relationships: relationships,
		profiles:      profiles,
		users:         users,
		invitations:   invitations,
		notifier:      notifier,
		invitationTTL: invitationTTL,
		now:           time.Now,
	}
}

// Contact is one entry of the owner's contact list, named the way the
// contact presents themselves to the owner.
type Contact struct {
	UserID            string                   `json:"userId"`
	DisplayName       string                   `json:"displayName"`
	Avatar            string                   `json:"avatar"`
	Status            string                   `json:"status"`
	RelationshipType  models.RelationshipType  `json:"relationshipType"`
	ProfileVisibility models.ProfileVisibility `json:"profileVisibility"`
	Since             int64                    `json:"since"`
}

func normalizeType(t models.RelationshipType) (models.RelationshipType, error) {
	switch {
	case t == "" || t == models.RelationshipNone:
		return models.RelationshipBasic, nil
	case t.IsValid():
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRelationshipType, t)
}

func (s *ContactService) AddContact(ctx context.Context, ownerID, contactID primitive.ObjectID, relType models.RelationshipType) (*models.Relationship, error) {
	if ownerID == contactID {
		return nil, ErrSelfContact
	}
	relType, err := normalizeType(relType)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, contactID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load contact: %w", err)
	}

	rel := &models.Relationship{
		OwnerID:           ownerID,
		ContactID:         contactID,
		RelationshipType:  relType,
		ProfileVisibility: models.VisibilityBasic,
	}
	if err := s.relationships.Create(ctx, rel); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrAlreadyContact
		}
		return nil, err
	}

	s.notifier.Notify(contactID, models.Notification{
		Type:    models.EventContactAdded,
		Title:   "New contact",
		Body:    s.nameAsSeenBy(ctx, ownerID, contactID) + " added you as a contact",
		Payload: map[string]interface{}{"userId": ownerID.Hex()},
	})
	return rel, nil
}

// RemoveContact deletes the owner's relationship and any per-contact settings.
func (s *ContactService) RemoveContact(ctx context.Context, ownerID, contactID primitive.ObjectID) error {
	if err := s.relationships.Delete(ctx, ownerID, contactID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrContactNotFound
		}
		return err
	}
	if err := s.profiles.RemoveContactOverride(ctx, ownerID, contactID); err != nil {
		log.Printf("[ContactService] failed to clear overrides for %s: %v", contactID.Hex(), err)
	}

	s.notifier.Notify(contactID, models.Notification{
		Type:    models.EventVisibilityChanged,
		Payload: map[string]interface{}{"userId": ownerID.Hex()},
	})
	return nil
}

func (s *ContactService) UpdateRelationship(ctx context.Context, ownerID, contactID primitive.ObjectID, relType models.RelationshipType, visibility models.ProfileVisibility) (*models.Relationship, error) {
	relType, err := normalizeType(relType)
	if err != nil {
		return nil, err
	}
	if visibility != "" && !visibility.IsValid() {
		return nil, fmt.Errorf("%w: profileVisibility %q", ErrInvalidProfile, visibility)
	}

	rel, err := s.relationships.Update(ctx, ownerID, contactID, relType, visibility)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(contactID, models.Notification{
		Type:    models.EventVisibilityChanged,
		Payload: map[string]interface{}{"userId": ownerID.Hex()},
	})
	return rel, nil
}

func (s *ContactService) ListContacts(ctx context.Context, ownerID primitive.ObjectID) ([]Contact, error) {
	rels, err := s.relationships.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(rels))
	for _, rel := range rels {
		ids = append(ids, rel.ContactID)
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	profiles, err := s.profiles.FindByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	contacts := make([]Contact, 0, len(rels))
	for _, rel := range rels {
		c := Contact{
			UserID:            rel.ContactID.Hex(),
			RelationshipType:  rel.RelationshipType,
			ProfileVisibility: rel.ProfileVisibility,
			Since:             rel.CreatedAt,
		}
		if u, ok := users[rel.ContactID]; ok {
			p := profiles[rel.ContactID]
			c.DisplayName = privacy.DisplayNameFor(u.Name, p, p.OverrideFor(ownerID), u.Username)
			c.Avatar = u.Avatar
			c.Status = u.Status
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

func (s *ContactService) CreateInvitation(ctx context.Context, inviterID primitive.ObjectID, relType models.RelationshipType) (*models.Invitation, error) {
	relType, err := normalizeType(relType)
	if err != nil {
		return nil, err
	}

	now := s.now()
	inv := &models.Invitation{
		Code:             uuid.NewString(),
		InviterID:        inviterID,
		RelationshipType: relType,
		CreatedAt:        now.Unix(),
		ExpiresAt:        now.Add(s.invitationTTL).Unix(),
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// AcceptInvitation connects inviter and accepter in both directions. The
// inviter shares under the invitation's type; the accepter starts at basic.
func (s *ContactService) AcceptInvitation(ctx context.Context, code string, accepterID primitive.ObjectID) (*models.Invitation, error) {
	inv, err := s.invitations.FindByCode(ctx, code)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvitationNotFound
	}
	if err != nil {
		return nil, err
	}

	now := s.now().Unix()
	switch {
	case inv.InviterID == accepterID:
		return nil, ErrSelfContact
	case inv.Accepted():
		return nil, ErrInvitationNotFound
	case inv.Expired(now):
		return nil, ErrInvitationExpired
	}

	inv, err = s.invitations.MarkAccepted(ctx, code, accepterID, now)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvitationNotFound
	}
	if err != nil {
		return nil, err
	}

	pairs := []*models.Relationship{
		{OwnerID: inv.InviterID, ContactID: accepterID, RelationshipType: inv.RelationshipType, ProfileVisibility: models.VisibilityBasic},
		{OwnerID: accepterID, ContactID: inv.InviterID, RelationshipType: models.RelationshipBasic, ProfileVisibility: models.VisibilityBasic},
	}
	var created []*models.Relationship
	for _, rel := range pairs {
		err := s.relationships.Create(ctx, rel)
		if err == nil {
			created = append(created, rel)
			continue
		}
		if !errors.Is(err, database.ErrDuplicate) {
			s.rollbackAcceptance(ctx, code, accepterID, created)
			return nil, fmt.Errorf("failed to create relationship: %w", err)
		}
	}

	s.notifier.Notify(inv.InviterID, models.Notification{
		Type:    models.EventInvitationAccepted,
		Title:   "Invitation accepted",
		Body:    s.nameAsSeenBy(ctx, accepterID, inv.InviterID) + " accepted your invitation",
		Payload: map[string]interface{}{"userId": accepterID.Hex()},
	})
	return inv, nil
}

// rollbackAcceptance removes what a failed accept created and frees the
// code so the same accepter can retry.
func (s *ContactService) rollbackAcceptance(ctx context.Context, code string, accepterID primitive.ObjectID, created []*models.Relationship) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	for _, rel := range created {
		if err := s.relationships.Delete(ctx, rel.OwnerID, rel.ContactID); err != nil {
			log.Printf("[ContactService] rollback of relationship %s->%s failed: %v", rel.OwnerID.Hex(), rel.ContactID.Hex(), err)
		}
	}
	if err := s.invitations.ReleaseAcceptance(ctx, code, accepterID); err != nil {
		log.Printf("[ContactService] failed to release invitation %s: %v", code, err)
	}
}

// nameAsSeenBy renders subject's name the way viewer is allowed to see it.
func (s *ContactService) nameAsSeenBy(ctx context.Context, subjectID, viewerID primitive.ObjectID) string {
	user, err := s.users.FindByID(ctx, subjectID)
	if err != nil {
		return "Someone"
	}
	profile, err := s.profiles.FindByUserID(ctx, subjectID)
	if err != nil {
		profile = nil
	}
	name := privacy.DisplayNameFor(user.Name, profile, profile.OverrideFor(viewerID), user.Username)
	if name == "" {
		return "Someone"
	}
	return name
}
