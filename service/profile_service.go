package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"wizspeek/database"
	"wizspeek/metrics"
	"wizspeek/models"
	"wizspeek/privacy"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProfileService struct {
	profiles      ProfileStore
	relationships RelationshipStore
	users         UserStore
	notifier      Notifier
	metrics       *metrics.Metrics
}

func NewProfileService(profiles ProfileStore, relationships RelationshipStore, users UserStore, notifier Notifier, m *metrics.Metrics) *ProfileService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &ProfileService{
		profiles:      profiles,
		relationships: relationships,
		users:         users,
		notifier:      notifier,
		metrics:       m,
	}
}

// GetVisibleProfile loads the target's current profile and relationship and
// projects it for the viewer. Nothing is cached between calls.
func (s *ProfileService) GetVisibleProfile(ctx context.Context, viewerID, targetID primitive.ObjectID) (*privacy.VisibleProfile, error) {
	profile, err := s.profiles.FindByUserID(ctx, targetID)
	if errors.Is(err, database.ErrNotFound) {
		s.metrics.IncProfileNotFound()
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	fullName, username := s.identity(ctx, targetID)

	if viewerID == targetID {
		s.metrics.ObserveProjection("self")
		return privacy.SelfProjection(profile, fullName), nil
	}

	rel, err := s.relationships.Find(ctx, targetID, viewerID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to load relationship: %w", err)
	}

	view := privacy.ResolveVisibleProfile(privacy.Input{
		ViewerID:          viewerID,
		Profile:           profile,
		Relationship:      rel,
		FullName:          fullName,
		FallbackPseudonym: username,
	})
	s.metrics.ObserveProjection(view.AccessLabel())
	return view, nil
}

// PreviewAsContact shows owners what one of their contacts currently sees,
// with the rule that decided each field.
func (s *ProfileService) PreviewAsContact(ctx context.Context, ownerID, contactID primitive.ObjectID) (*privacy.VisibleProfile, map[privacy.Field]string, error) {
	profile, err := s.profiles.FindByUserID(ctx, ownerID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}

	rel, err := s.relationships.Find(ctx, ownerID, contactID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, nil, fmt.Errorf("failed to load relationship: %w", err)
	}

	fullName, username := s.identity(ctx, ownerID)
	in := privacy.Input{
		ViewerID:          contactID,
		Profile:           profile,
		Relationship:      rel,
		FullName:          fullName,
		FallbackPseudonym: username,
	}
	return privacy.ResolveVisibleProfile(in), privacy.Explain(in), nil
}

// identity returns the full name and username of a user; a missing user
// yields empty strings rather than failing the projection.
func (s *ProfileService) identity(ctx context.Context, userID primitive.ObjectID) (string, string) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			log.Printf("[ProfileService] failed to load user %s: %v", userID.Hex(), err)
		}
		return "", ""
	}
	return user.Name, user.Username
}

func (s *ProfileService) GetOwnProfile(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

// ProfileUpdate replaces whole sections; nil sections are left as they are.
type ProfileUpdate struct {
	General      *models.GeneralInfo      `json:"general"`
	Personal     *models.PersonalInfo     `json:"personal"`
	Professional *models.ProfessionalInfo `json:"professional"`
}

func (s *ProfileService) UpdateOwnProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*models.Profile, error) {
	if err := validateProfileUpdate(update); err != nil {
		return nil, err
	}

	profile, err := s.GetOwnProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.General != nil {
		profile.General = *update.General
	}
	if update.Personal != nil {
		profile.Personal = *update.Personal
		if profile.Personal.AgeDisclosure == "" {
			profile.Personal.AgeDisclosure = models.AgePrivate
		}
	}
	if update.Professional != nil {
		profile.Professional = *update.Professional
	}

	saved, err := s.profiles.Save(ctx, profile)
	if err != nil {
		return nil, err
	}

	s.notifyAllContacts(ctx, userID)
	return saved, nil
}

func validateProfileUpdate(u ProfileUpdate) error {
	if u.Personal != nil {
		if u.Personal.AgeDisclosure != "" && !u.Personal.AgeDisclosure.IsValid() {
			return fmt.Errorf("%w: ageDisclosure %q", ErrInvalidProfile, u.Personal.AgeDisclosure)
		}
		if u.Personal.Age < 0 {
			return fmt.Errorf("%w: age must not be negative", ErrInvalidProfile)
		}
		if !primaryInRange(u.Personal.PrimaryPicture, len(u.Personal.Pictures)) {
			return fmt.Errorf("%w: primary personal picture out of range", ErrInvalidProfile)
		}
	}
	if u.Professional != nil && !primaryInRange(u.Professional.PrimaryPicture, len(u.Professional.Pictures)) {
		return fmt.Errorf("%w: primary professional picture out of range", ErrInvalidProfile)
	}
	return nil
}

func primaryInRange(idx, n int) bool {
	if n == 0 {
		return idx == 0
	}
	return idx >= 0 && idx < n
}

// OverrideUpdate is a partial update of one contact's settings.
type OverrideUpdate struct {
	AllowPersonalInfo     *bool                   `json:"allowPersonalInfo"`
	AllowProfessionalInfo *bool                   `json:"allowProfessionalInfo"`
	NameDisplayType       *models.NameDisplayType `json:"nameDisplayType"`
	CustomPseudonym       *string                 `json:"customPseudonym"`
}

func (s *ProfileService) SetContactOverride(ctx context.Context, ownerID, contactID primitive.ObjectID, update OverrideUpdate) (*models.ContactOverride, error) {
	if update.NameDisplayType != nil && *update.NameDisplayType != "" && !update.NameDisplayType.IsValid() {
		return nil, fmt.Errorf("%w: nameDisplayType %q", ErrInvalidProfile, *update.NameDisplayType)
	}

	return s.mutateOverride(ctx, ownerID, contactID, models.OverrideChange{
		AllowPersonalInfo:     update.AllowPersonalInfo,
		AllowProfessionalInfo: update.AllowProfessionalInfo,
		NameDisplayType:       update.NameDisplayType,
		CustomPseudonym:       update.CustomPseudonym,
	})
}

type FieldAction string

const (
	FieldHide    FieldAction = "hide"
	FieldShow    FieldAction = "show"
	FieldDefault FieldAction = "default"
)

// SetFieldVisibility hides, force-shows or resets one field for one contact.
// The hide and show lists never share a field after this call.
func (s *ProfileService) SetFieldVisibility(ctx context.Context, ownerID, contactID primitive.ObjectID, field string, action FieldAction) (*models.ContactOverride, error) {
	if _, ok := privacy.Lookup(field); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	var ch models.OverrideChange
	switch action {
	case FieldHide:
		ch.HideField = field
	case FieldShow:
		ch.ShowField = field
	case FieldDefault:
		ch.ResetField = field
	default:
		return nil, fmt.Errorf("%w: action %q", ErrInvalidProfile, action)
	}

	return s.mutateOverride(ctx, ownerID, contactID, ch)
}

// mutateOverride writes one contact's entry in place. The rest of the
// profile is never rewritten, so concurrent edits for other contacts and
// section edits are not lost.
func (s *ProfileService) mutateOverride(ctx context.Context, ownerID, contactID primitive.ObjectID, ch models.OverrideChange) (*models.ContactOverride, error) {
	if err := s.requireContact(ctx, ownerID, contactID); err != nil {
		return nil, err
	}

	override, err := s.profiles.UpdateContactOverride(ctx, ownerID, contactID, ch)
	if errors.Is(err, database.ErrNotFound) {
		if err := s.requireContact(ctx, ownerID, contactID); err != nil {
			return nil, err
		}
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	// RemoveContact may have run since the check; its settings must not outlive it.
	if err := s.requireContact(ctx, ownerID, contactID); errors.Is(err, ErrContactNotFound) {
		if rmErr := s.profiles.RemoveContactOverride(ctx, ownerID, contactID); rmErr != nil {
			log.Printf("[ProfileService] failed to drop override of removed contact %s: %v", contactID.Hex(), rmErr)
		}
		return nil, err
	}

	s.notifyVisibilityChanged(ownerID, contactID)
	return override, nil
}

func (s *ProfileService) requireContact(ctx context.Context, ownerID, contactID primitive.ObjectID) error {
	if _, err := s.relationships.Find(ctx, ownerID, contactID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to load relationship: %w", err)
	}
	return nil
}

func (s *ProfileService) SetNameDisplayDefaults(ctx context.Context, userID primitive.ObjectID, mode models.NameDisplayType, pseudonym string) (*models.Profile, error) {
	if mode != "" && !mode.IsValid() {
		return nil, fmt.Errorf("%w: nameDisplayType %q", ErrInvalidProfile, mode)
	}

	profile, err := s.GetOwnProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.DefaultNameDisplay = mode
	profile.DefaultPseudonym = pseudonym

	saved, err := s.profiles.Save(ctx, profile)
	if err != nil {
		return nil, err
	}
	s.notifyAllContacts(ctx, userID)
	return saved, nil
}

// PreviewDisplayName renders a name without persisting anything.
func (s *ProfileService) PreviewDisplayName(fullName string, mode models.NameDisplayType, pseudonym string) string {
	return privacy.ResolveDisplayName(fullName, mode, pseudonym)
}

func (s *ProfileService) notifyVisibilityChanged(ownerID, contactID primitive.ObjectID) {
	s.notifier.Notify(contactID, models.Notification{
		Type:    models.EventVisibilityChanged,
		Payload: map[string]interface{}{"userId": ownerID.Hex()},
	})
}

func (s *ProfileService) notifyAllContacts(ctx context.Context, ownerID primitive.ObjectID) {
	rels, err := s.relationships.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Printf("[ProfileService] failed to list contacts of %s: %v", ownerID.Hex(), err)
		return
	}
	for _, rel := range rels {
		s.notifyVisibilityChanged(ownerID, rel.ContactID)
	}
}
