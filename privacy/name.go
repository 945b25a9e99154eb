package privacy

import (
	"strings"
	"unicode/utf8"

	"wizspeek/models"
)

// EffectiveNameMode picks the viewer override, then the profile default, then full.
func EffectiveNameMode(p *models.Profile, o *models.ContactOverride) models.NameDisplayType {
	if o != nil && o.NameDisplayType != "" {
		return o.NameDisplayType
	}
	if p != nil && p.DefaultNameDisplay != "" {
		return p.DefaultNameDisplay
	}
	return models.NameFull
}

// PseudonymFor walks viewer pseudonym, profile default, then fallback.
// An empty result means the full name should be used.
func PseudonymFor(p *models.Profile, o *models.ContactOverride, fallback string) string {
	if o != nil && strings.TrimSpace(o.CustomPseudonym) != "" {
		return o.CustomPseudonym
	}
	if p != nil && strings.TrimSpace(p.DefaultPseudonym) != "" {
		return p.DefaultPseudonym
	}
	return strings.TrimSpace(fallback)
}

// DisplayNameFor runs the whole name pipeline for one viewer.
func DisplayNameFor(fullName string, p *models.Profile, o *models.ContactOverride, fallback string) string {
	return ResolveDisplayName(fullName, EffectiveNameMode(p, o), PseudonymFor(p, o, fallback))
}

// ResolveDisplayName renders fullName under mode. Names with fewer than two
// parts are returned unchanged by the initial-based modes; unknown modes
// behave like full.
func ResolveDisplayName(fullName string, mode models.NameDisplayType, pseudonym string) string {
	switch mode {
	case models.NameFirstInitialLast:
		parts := strings.Fields(fullName)
		if len(parts) < 2 {
			return fullName
		}
		return initial(parts[0]) + ". " + parts[len(parts)-1]
	case models.NameFirstLastInitial:
		parts := strings.Fields(fullName)
		if len(parts) < 2 {
			return fullName
		}
		return parts[0] + " " + initial(parts[len(parts)-1]) + "."
	case models.NamePseudonym:
		if strings.TrimSpace(pseudonym) != "" {
			return pseudonym
		}
		return fullName
	default:
		return fullName
	}
}

func initial(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return string(r)
}
