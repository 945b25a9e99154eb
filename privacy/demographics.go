package privacy

import "wizspeek/models"

const adultAge = 18

// emitDemographics writes gender and exactly one age representation.
func emitDemographics(p *models.Profile, out *VisibleProfile) {
	out.Gender = ptr(p.Personal.Gender)

	switch p.Personal.AgeDisclosure {
	case models.AgeSpecific:
		out.Age = ptr(p.Personal.Age)
		out.AgeDisclosure = models.AgeSpecific
	case models.AgeAdultMinor:
		out.AgeCategory = AgeCategory(p.Personal.Age)
		out.AgeDisclosure = models.AgeAdultMinor
	default:
		out.AgeDisclosure = models.AgePrivate
	}
}

func AgeCategory(age int) string {
	if age >= adultAge {
		return "adult"
	}
	return "minor"
}
