package privacy

import (
	"wizspeek/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Input is everything needed to project one profile for one viewer.
// Profile must be non-nil; a missing profile is handled by the caller.
type Input struct {
	ViewerID          primitive.ObjectID
	Profile           *models.Profile
	Relationship      *models.Relationship // nil when the two users are not connected
	FullName          string
	FallbackPseudonym string
}

// VisibleProfile is the viewer-specific projection. Only granted members are set.
type VisibleProfile struct {
	UserID        string  `json:"userId"`
	DisplayName   string  `json:"displayName"`
	VisibleFields []Field `json:"visibleFields"`

	Education      *string  `json:"education,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Achievements   []string `json:"achievements,omitempty"`

	Interests              []string             `json:"interests,omitempty"`
	PersonalBio            *string              `json:"personalBio,omitempty"`
	PersonalWebsite        *string              `json:"personalWebsite,omitempty"`
	RelationshipStatus     *string              `json:"relationshipStatus,omitempty"`
	PersonalPictures       []string             `json:"personalPictures,omitempty"`
	PrimaryPersonalPicture *int                 `json:"primaryPersonalPicture,omitempty"`
	Gender                 *string              `json:"gender,omitempty"`
	Age                    *int                 `json:"age,omitempty"`
	AgeCategory            string               `json:"ageCategory,omitempty"`
	AgeDisclosure          models.AgeDisclosure `json:"ageDisclosure,omitempty"`

	JobTitle                   *string                   `json:"jobTitle,omitempty"`
	Company                    *string                   `json:"company,omitempty"`
	ProfessionalBio            *string                   `json:"professionalBio,omitempty"`
	Experience                 *string                   `json:"experience,omitempty"`
	ProfessionalWebsites       []string                  `json:"professionalWebsites,omitempty"`
	ProfessionalPictures       []string                  `json:"professionalPictures,omitempty"`
	PrimaryProfessionalPicture *int                      `json:"primaryProfessionalPicture,omitempty"`
	WorkHistory                []models.WorkHistoryEntry `json:"workHistory,omitempty"`

	access access
}

// Has reports whether field was granted.
func (v *VisibleProfile) Has(f Field) bool {
	for _, g := range v.VisibleFields {
		if g == f {
			return true
		}
	}
	return false
}

// AccessLabel summarizes which gated categories the viewer could see by default.
func (v *VisibleProfile) AccessLabel() string {
	switch {
	case v.access.personal && v.access.professional:
		return "both"
	case v.access.personal:
		return "personal"
	case v.access.professional:
		return "professional"
	}
	return "general"
}

// ResolveVisibleProfile decides, field by field, what the viewer may see.
// It does no I/O and never mutates its input.
func ResolveVisibleProfile(in Input) *VisibleProfile {
	p := in.Profile
	override := p.OverrideFor(in.ViewerID)

	out := &VisibleProfile{
		UserID:        p.UserID.Hex(),
		DisplayName:   DisplayNameFor(in.FullName, p, override, in.FallbackPseudonym),
		VisibleFields: []Field{},
		access:        categoryAccess(in.Relationship, override),
	}

	for i := range fieldTable {
		spec := &fieldTable[i]
		d, _ := decide(fieldInput{
			spec:     spec,
			profile:  p,
			override: override,
			access:   out.access,
		})
		if d != shown {
			continue
		}
		spec.emit(p, out)
		out.VisibleFields = append(out.VisibleFields, spec.field)
	}
	return out
}

// SelfProjection is what owners see of their own profile: every field, full name.
func SelfProjection(p *models.Profile, fullName string) *VisibleProfile {
	out := &VisibleProfile{
		UserID:        p.UserID.Hex(),
		DisplayName:   fullName,
		VisibleFields: make([]Field, 0, len(fieldTable)),
		access:        access{personal: true, professional: true},
	}
	for i := range fieldTable {
		fieldTable[i].emit(p, out)
		out.VisibleFields = append(out.VisibleFields, fieldTable[i].field)
	}
	return out
}

// Explain reports the decision and deciding rule for every field. Used by the
// owner-side preview of what a given contact sees.
func Explain(in Input) map[Field]string {
	p := in.Profile
	override := p.OverrideFor(in.ViewerID)
	acc := categoryAccess(in.Relationship, override)

	out := make(map[Field]string, len(fieldTable))
	for i := range fieldTable {
		d, by := decide(fieldInput{spec: &fieldTable[i], profile: p, override: override, access: acc})
		verdict := "hidden"
		if d == shown {
			verdict = "shown"
		}
		out[fieldTable[i].field] = verdict + " (" + by + ")"
	}
	return out
}
