package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NameDisplayType selects how a user's full name is rendered to a viewer.
type NameDisplayType string

const (
	NameFull             NameDisplayType = "full"
	NameFirstInitialLast NameDisplayType = "first_initial_last"
	NameFirstLastInitial NameDisplayType = "first_last_initial"
	NamePseudonym        NameDisplayType = "pseudonym"
)

func (t NameDisplayType) IsValid() bool {
	switch t {
	case NameFull, NameFirstInitialLast, NameFirstLastInitial, NamePseudonym:
		return true
	}
	return false
}

// AgeDisclosure controls how much of the age survives once demographics are shown.
type AgeDisclosure string

const (
	AgeSpecific   AgeDisclosure = "specific"
	AgeAdultMinor AgeDisclosure = "adult_minor"
	AgePrivate    AgeDisclosure = "private"
)

func (a AgeDisclosure) IsValid() bool {
	switch a {
	case AgeSpecific, AgeAdultMinor, AgePrivate:
		return true
	}
	return false
}

type Profile struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`

	General      GeneralInfo      `bson:"general" json:"general"`
	Personal     PersonalInfo     `bson:"personal" json:"personal"`
	Professional ProfessionalInfo `bson:"professional" json:"professional"`

	DefaultNameDisplay NameDisplayType `bson:"defaultNameDisplay,omitempty" json:"defaultNameDisplay,omitempty"`
	DefaultPseudonym   string          `bson:"defaultPseudonym,omitempty" json:"defaultPseudonym,omitempty"`

	ContactPrivacy []ContactOverride `bson:"contactPrivacy" json:"contactPrivacy"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64 `bson:"updatedAt" json:"updatedAt"`
}

type GeneralInfo struct {
	Education      string   `bson:"education" json:"education"`
	Skills         []string `bson:"skills" json:"skills"`
	Languages      []string `bson:"languages" json:"languages"`
	Location       string   `bson:"location" json:"location"`
	Certifications []string `bson:"certifications" json:"certifications"`
	Achievements   []string `bson:"achievements" json:"achievements"`

	ShowEducation      bool `bson:"showEducation" json:"showEducation"`
	ShowSkills         bool `bson:"showSkills" json:"showSkills"`
	ShowLanguages      bool `bson:"showLanguages" json:"showLanguages"`
	ShowLocation       bool `bson:"showLocation" json:"showLocation"`
	ShowCertifications bool `bson:"showCertifications" json:"showCertifications"`
	ShowAchievements   bool `bson:"showAchievements" json:"showAchievements"`
}

type PersonalInfo struct {
	Interests          []string      `bson:"interests" json:"interests"`
	Bio                string        `bson:"bio" json:"bio"`
	Website            string        `bson:"website" json:"website"`
	RelationshipStatus string        `bson:"relationshipStatus" json:"relationshipStatus"`
	Pictures           []string      `bson:"pictures" json:"pictures"`
	PrimaryPicture     int           `bson:"primaryPicture" json:"primaryPicture"`
	Gender             string        `bson:"gender" json:"gender"`
	Age                int           `bson:"age" json:"age"`
	AgeDisclosure      AgeDisclosure `bson:"ageDisclosure" json:"ageDisclosure"`

	ShowInterests          bool `bson:"showInterests" json:"showInterests"`
	ShowBio                bool `bson:"showBio" json:"showBio"`
	ShowWebsite            bool `bson:"showWebsite" json:"showWebsite"`
	ShowRelationshipStatus bool `bson:"showRelationshipStatus" json:"showRelationshipStatus"`
	ShowPictures           bool `bson:"showPictures" json:"showPictures"`
	ShowDemographics       bool `bson:"showDemographics" json:"showDemographics"`
}

type ProfessionalInfo struct {
	JobTitle       string             `bson:"jobTitle" json:"jobTitle"`
	Company        string             `bson:"company" json:"company"`
	Bio            string             `bson:"bio" json:"bio"`
	Experience     string             `bson:"experience" json:"experience"`
	Websites       []string           `bson:"websites" json:"websites"`
	Pictures       []string           `bson:"pictures" json:"pictures"`
	PrimaryPicture int                `bson:"primaryPicture" json:"primaryPicture"`
	WorkHistory    []WorkHistoryEntry `bson:"workHistory" json:"workHistory"`

	ShowJobTitle    bool `bson:"showJobTitle" json:"showJobTitle"`
	ShowCompany     bool `bson:"showCompany" json:"showCompany"`
	ShowBio         bool `bson:"showBio" json:"showBio"`
	ShowExperience  bool `bson:"showExperience" json:"showExperience"`
	ShowWebsites    bool `bson:"showWebsites" json:"showWebsites"`
	ShowPictures    bool `bson:"showPictures" json:"showPictures"`
	ShowWorkHistory bool `bson:"showWorkHistory" json:"showWorkHistory"`
}

type WorkHistoryEntry struct {
	Company     string `bson:"company" json:"company"`
	Title       string `bson:"title" json:"title"`
	StartDate   string `bson:"startDate" json:"startDate"`
	EndDate     string `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Current     bool   `bson:"current" json:"current"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// NewDefaultProfile is the profile created alongside a new account: general
// fields visible, everything gated by category starts hidden.
func NewDefaultProfile(userID primitive.ObjectID, now int64) *Profile {
	return &Profile{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		General: GeneralInfo{
			Skills:             []string{},
			Languages:          []string{},
			Certifications:     []string{},
			Achievements:       []string{},
			ShowEducation:      true,
			ShowSkills:         true,
			ShowLanguages:      true,
			ShowLocation:       true,
			ShowCertifications: true,
			ShowAchievements:   true,
		},
		Personal: PersonalInfo{
			Interests:     []string{},
			Pictures:      []string{},
			AgeDisclosure: AgePrivate,
		},
		Professional: ProfessionalInfo{
			Websites:    []string{},
			Pictures:    []string{},
			WorkHistory: []WorkHistoryEntry{},
		},
		DefaultNameDisplay: NameFull,
		ContactPrivacy:     []ContactOverride{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// OverrideFor returns the owner's settings for one viewer, or nil.
func (p *Profile) OverrideFor(viewerID primitive.ObjectID) *ContactOverride {
	if p == nil {
		return nil
	}
	for i := range p.ContactPrivacy {
		if p.ContactPrivacy[i].ContactID == viewerID {
			return &p.ContactPrivacy[i]
		}
	}
	return nil
}

// EnsureOverride returns the record for contactID, appending an empty one if needed.
func (p *Profile) EnsureOverride(contactID primitive.ObjectID) *ContactOverride {
	if o := p.OverrideFor(contactID); o != nil {
		return o
	}
	p.ContactPrivacy = append(p.ContactPrivacy, ContactOverride{
		ContactID:  contactID,
		HideFields: []string{},
		ShowFields: []string{},
	})
	return &p.ContactPrivacy[len(p.ContactPrivacy)-1]
}

// RemoveOverride drops the record for contactID. Reports whether one existed.
func (p *Profile) RemoveOverride(contactID primitive.ObjectID) bool {
	for i := range p.ContactPrivacy {
		if p.ContactPrivacy[i].ContactID == contactID {
			p.ContactPrivacy = append(p.ContactPrivacy[:i], p.ContactPrivacy[i+1:]...)
			return true
		}
	}
	return false
}
