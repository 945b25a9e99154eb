package privacy

import "wizspeek/models"

// Category partitions profile fields. A field belongs to exactly one.
type Category int

const (
	General Category = iota
	Personal
	Professional
)

func (c Category) String() string {
	switch c {
	case General:
		return "general"
	case Personal:
		return "personal"
	case Professional:
		return "professional"
	}
	return "unknown"
}

// Field is the key used in override hide/show lists and in the projection.
type Field string

const (
	FieldEducation      Field = "education"
	FieldSkills         Field = "skills"
	FieldLanguages      Field = "languages"
	FieldLocation       Field = "location"
	FieldCertifications Field = "certifications"
	FieldAchievements   Field = "achievements"

	FieldInterests          Field = "interests"
	FieldPersonalBio        Field = "personalBio"
	FieldPersonalWebsite    Field = "personalWebsite"
	FieldRelationshipStatus Field = "relationshipStatus"
	FieldPersonalPictures   Field = "personalPictures"
	FieldDemographics       Field = "demographics"

	FieldJobTitle             Field = "jobTitle"
	FieldCompany              Field = "company"
	FieldProfessionalBio      Field = "professionalBio"
	FieldExperience           Field = "experience"
	FieldProfessionalWebsites Field = "professionalWebsites"
	FieldProfessionalPictures Field = "professionalPictures"
	FieldWorkHistory          Field = "workHistory"
)

// fieldSpec binds a field to its category, the owner's toggle, and the
// projection writer. Composite fields (pictures, work history, demographics)
// write all their members in one emit so they can't be split.
type fieldSpec struct {
	field    Field
	category Category
	toggle   func(p *models.Profile) bool
	emit     func(p *models.Profile, out *VisibleProfile)
}

var fieldTable = []fieldSpec{
	{FieldEducation, General,
		func(p *models.Profile) bool { return p.General.ShowEducation },
		func(p *models.Profile, out *VisibleProfile) { out.Education = ptr(p.General.Education) }},
	{FieldSkills, General,
		func(p *models.Profile) bool { return p.General.ShowSkills },
		func(p *models.Profile, out *VisibleProfile) { out.Skills = p.General.Skills }},
	{FieldLanguages, General,
		func(p *models.Profile) bool { return p.General.ShowLanguages },
		func(p *models.Profile, out *VisibleProfile) { out.Languages = p.General.Languages }},
	{FieldLocation, General,
		func(p *models.Profile) bool { return p.General.ShowLocation },
		func(p *models.Profile, out *VisibleProfile) { out.Location = ptr(p.General.Location) }},
	{FieldCertifications, General,
		func(p *models.Profile) bool { return p.General.ShowCertifications },
		func(p *models.Profile, out *VisibleProfile) { out.Certifications = p.General.Certifications }},
	{FieldAchievements, General,
		func(p *models.Profile) bool { return p.General.ShowAchievements },
		func(p *models.Profile, out *VisibleProfile) { out.Achievements = p.General.Achievements }},

	{FieldInterests, Personal,
		func(p *models.Profile) bool { return p.Personal.ShowInterests },
		func(p *models.Profile, out *VisibleProfile) { out.Interests = p.Personal.Interests }},
	{FieldPersonalBio, Personal,
		func(p *models.Profile) bool { return p.Personal.ShowBio },
		func(p *models.Profile, out *VisibleProfile) { out.PersonalBio = ptr(p.Personal.Bio) }},
	{FieldPersonalWebsite, Personal,
		func(p *models.Profile) bool { return p.Personal.ShowWebsite },
		func(p *models.Profile, out *VisibleProfile) { out.PersonalWebsite = ptr(p.Personal.Website) }},
	{FieldRelationshipStatus, Personal,
		func(p *models.Profile) bool { return p.Personal.ShowRelationshipStatus },
		func(p *models.Profile, out *VisibleProfile) {
			out.RelationshipStatus = ptr(p.Personal.RelationshipStatus)
		}},
	{FieldPersonalPictures, Personal,
		func(p *models.Profile) bool { return p.Personal.ShowPictures },
		func(p *models.Profile, out *VisibleProfile) {
			out.PersonalPictures = p.Personal.Pictures
			out.PrimaryPersonalPicture = ptr(p.Personal.PrimaryPicture)
		}},
	{FieldDemographics, Personal,
		func(p *models.Profile) bool { return p.Personal.ShowDemographics },
		emitDemographics},

	{FieldJobTitle, Professional,
		func(p *models.Profile) bool { return p.Professional.ShowJobTitle },
		func(p *models.Profile, out *VisibleProfile) { out.JobTitle = ptr(p.Professional.JobTitle) }},
	{FieldCompany, Professional,
		func(p *models.Profile) bool { return p.Professional.ShowCompany },
		func(p *models.Profile, out *VisibleProfile) { out.Company = ptr(p.Professional.Company) }},
	{FieldProfessionalBio, Professional,
		func(p *models.Profile) bool { return p.Professional.ShowBio },
		func(p *models.Profile, out *VisibleProfile) { out.ProfessionalBio = ptr(p.Professional.Bio) }},
	{FieldExperience, Professional,
		func(p *models.Profile) bool { return p.Professional.ShowExperience },
		func(p *models.Profile, out *VisibleProfile) { out.Experience = ptr(p.Professional.Experience) }},
	{FieldProfessionalWebsites, Professional,
		func(p *models.Profile) bool { return p.Professional.ShowWebsites },
		func(p *models.Profile, out *VisibleProfile) { out.ProfessionalWebsites = p.Professional.Websites }},
	{FieldProfessionalPictures, Professional,
		func(p *models.Profile) bool { return p.Professional.ShowPictures },
		func(p *models.Profile, out *VisibleProfile) {
			out.ProfessionalPictures = p.Professional.Pictures
			out.PrimaryProfessionalPicture = ptr(p.Professional.PrimaryPicture)
		}},
	{FieldWorkHistory, Professional,
		func(p *models.Profile) bool { return p.Professional.ShowWorkHistory },
		func(p *models.Profile, out *VisibleProfile) { out.WorkHistory = p.Professional.WorkHistory }},
}

var fieldIndex = func() map[Field]*fieldSpec {
	idx := make(map[Field]*fieldSpec, len(fieldTable))
	for i := range fieldTable {
		idx[fieldTable[i].field] = &fieldTable[i]
	}
	return idx
}()

// Lookup returns the category of a field key, or false if the key is unknown.
func Lookup(name string) (Category, bool) {
	spec, ok := fieldIndex[Field(name)]
	if !ok {
		return 0, false
	}
	return spec.category, true
}

// FieldsOf lists the fields of one category in projection order.
func FieldsOf(c Category) []Field {
	var out []Field
	for _, spec := range fieldTable {
		if spec.category == c {
			out = append(out, spec.field)
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
