package models

import (
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactOverride is what a profile owner configured for one specific viewer.
// The allow flags are tri-state: nil means "not overridden".
type ContactOverride struct {
	ContactID             primitive.ObjectID `bson:"contactId" json:"contactId"`
	AllowPersonalInfo     *bool              `bson:"allowPersonalInfo,omitempty" json:"allowPersonalInfo,omitempty"`
	AllowProfessionalInfo *bool              `bson:"allowProfessionalInfo,omitempty" json:"allowProfessionalInfo,omitempty"`
	HideFields            []string           `bson:"hideFields" json:"hideFields"`
	ShowFields            []string           `bson:"showFields" json:"showFields"`
	NameDisplayType       NameDisplayType    `bson:"nameDisplayType,omitempty" json:"nameDisplayType,omitempty"`
	CustomPseudonym       string             `bson:"customPseudonym,omitempty" json:"customPseudonym,omitempty"`
}

// PersonalDenied reports an explicit allowPersonalInfo=false.
func (o *ContactOverride) PersonalDenied() bool {
	return o != nil && o.AllowPersonalInfo != nil && !*o.AllowPersonalInfo
}

// ProfessionalDenied reports an explicit allowProfessionalInfo=false.
func (o *ContactOverride) ProfessionalDenied() bool {
	return o != nil && o.AllowProfessionalInfo != nil && !*o.AllowProfessionalInfo
}

func (o *ContactOverride) Hides(field string) bool {
	return o != nil && slices.Contains(o.HideFields, field)
}

func (o *ContactOverride) Shows(field string) bool {
	return o != nil && slices.Contains(o.ShowFields, field)
}

// HideField moves field into the hide list, removing it from the show list.
func (o *ContactOverride) HideField(field string) {
	o.ShowFields = without(o.ShowFields, field)
	if !slices.Contains(o.HideFields, field) {
		o.HideFields = append(o.HideFields, field)
	}
}

// ShowField moves field into the show list, removing it from the hide list.
func (o *ContactOverride) ShowField(field string) {
	o.HideFields = without(o.HideFields, field)
	if !slices.Contains(o.ShowFields, field) {
		o.ShowFields = append(o.ShowFields, field)
	}
}

// ResetField returns field to its category default for this contact.
func (o *ContactOverride) ResetField(field string) {
	o.HideFields = without(o.HideFields, field)
	o.ShowFields = without(o.ShowFields, field)
}

func without(list []string, field string) []string {
	out := make([]string, 0, len(list))
	for _, f := range list {
		if f != field {
			out = append(out, f)
		}
	}
	return out
}

// OverrideChange is a partial edit of one contact's override. Nil pointers
// and empty field names leave the stored value alone.
type OverrideChange struct {
	AllowPersonalInfo     *bool
	AllowProfessionalInfo *bool
	NameDisplayType       *NameDisplayType
	CustomPseudonym       *string

	HideField  string
	ShowField  string
	ResetField string
}

// Apply performs the change in memory, with the same result the stored
// update produces.
func (o *ContactOverride) Apply(ch OverrideChange) {
	if ch.AllowPersonalInfo != nil {
		v := *ch.AllowPersonalInfo
		o.AllowPersonalInfo = &v
	}
	if ch.AllowProfessionalInfo != nil {
		v := *ch.AllowProfessionalInfo
		o.AllowProfessionalInfo = &v
	}
	if ch.NameDisplayType != nil {
		o.NameDisplayType = *ch.NameDisplayType
	}
	if ch.CustomPseudonym != nil {
		o.CustomPseudonym = *ch.CustomPseudonym
	}
	if ch.HideField != "" {
		o.HideField(ch.HideField)
	}
	if ch.ShowField != "" {
		o.ShowField(ch.ShowField)
	}
	if ch.ResetField != "" {
		o.ResetField(ch.ResetField)
	}
}
