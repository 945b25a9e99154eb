package privacy

import "wizspeek/models"

// access is the category gate computed once per resolution.
type access struct {
	personal     bool
	professional bool
}

func categoryAccess(rel *models.Relationship, o *models.ContactOverride) access {
	t := rel.Type()
	return access{
		personal:     !o.PersonalDenied() && t.GrantsPersonal(),
		professional: !o.ProfessionalDenied() && t.GrantsProfessional(),
	}
}

func (a access) allows(c Category) bool {
	switch c {
	case General:
		return true
	case Personal:
		return a.personal
	case Professional:
		return a.professional
	}
	return false
}

type decision int

const (
	undecided decision = iota
	hidden
	shown
)

type fieldInput struct {
	spec     *fieldSpec
	profile  *models.Profile
	override *models.ContactOverride
	access   access
}

type rule struct {
	name   string
	decide func(in fieldInput) decision
}

// fieldRules are evaluated in order; the first non-undecided result wins.
// A field listed in both hideFields and showFields is shown.
var fieldRules = []rule{
	{"hide", func(in fieldInput) decision {
		f := string(in.spec.field)
		if in.override.Hides(f) && !in.override.Shows(f) {
			return hidden
		}
		return undecided
	}},
	{"force-show", func(in fieldInput) decision {
		if in.override.Shows(string(in.spec.field)) {
			return shown
		}
		return undecided
	}},
	{"category-default", func(in fieldInput) decision {
		if in.access.allows(in.spec.category) && in.spec.toggle(in.profile) {
			return shown
		}
		return hidden
	}},
}

func decide(in fieldInput) (decision, string) {
	for _, r := range fieldRules {
		if d := r.decide(in); d != undecided {
			return d, r.name
		}
	}
	return hidden, ""
}
