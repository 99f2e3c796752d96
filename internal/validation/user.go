package validation

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	apperrors "volunteerhub/internal/errors"
	"volunteerhub/internal/model"
)

// UserProfile holds the optional profile fields shared by the create view.
type UserProfile struct {
	Name                     *string    `json:"name,omitempty" validate:"omitempty,max=255"`
	Image                    *string    `json:"image,omitempty" validate:"omitempty,max=1024"`
	Gender                   *string    `json:"gender,omitempty" validate:"omitempty,max=50"`
	MaritalStatus            *string    `json:"maritalStatus,omitempty" validate:"omitempty,max=50"`
	PreferredName            *string    `json:"preferredName,omitempty" validate:"omitempty,max=255"`
	PreferredCommunication   *string    `json:"preferredCommunication,omitempty" validate:"omitempty,max=50"`
	PreferredStartDate       *time.Time `json:"preferredStartDate,omitempty"`
	BirthYear                *int       `json:"birthYear,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	ResidentialDistrict      *string    `json:"residentialDistrict,omitempty" validate:"omitempty,max=255"`
	EmergencyContactName     *string    `json:"emergencyContactName,omitempty" validate:"omitempty,max=255"`
	EmergencyContactRelation *string    `json:"emergencyContactRelationship,omitempty" validate:"omitempty,max=100"`
	EmergencyContactPhone    *string    `json:"emergencyContactPhone,omitempty" validate:"omitempty,max=50"`
}

// NormalizeEmail is the stored form of an email address. Users are keyed
// on it, whichever path created them.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserCreateInput is the create view of a user.
type UserCreateInput struct {
	Email string   `json:"email" validate:"required,email,max=255"`
	Roles []string `json:"roles,omitempty" validate:"omitempty,dive,required,max=50"`
	UserProfile
}

// Model builds the record to insert.
func (in UserCreateInput) Model() *model.User {
	p := in.UserProfile
	roles := datatypes.JSONSlice[string]{}
	roles = append(roles, in.Roles...)
	return &model.User{
		Email:                    NormalizeEmail(in.Email),
		Roles:                    roles,
		Name:                     p.Name,
		Image:                    p.Image,
		Gender:                   p.Gender,
		MaritalStatus:            p.MaritalStatus,
		PreferredName:            p.PreferredName,
		PreferredCommunication:   p.PreferredCommunication,
		PreferredStartDate:       utcPtr(p.PreferredStartDate),
		BirthYear:                p.BirthYear,
		ResidentialDistrict:      p.ResidentialDistrict,
		EmergencyContactName:     p.EmergencyContactName,
		EmergencyContactRelation: p.EmergencyContactRelation,
		EmergencyContactPhone:    p.EmergencyContactPhone,
	}
}

// UserUpdateInput is the update view of a user. Profile fields can be
// cleared with an explicit null; roles accept a list or {set|push}.
type UserUpdateInput struct {
	Email                    *string           `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Name                     Nullable[string]  `json:"name" validate:"omitempty,max=255"`
	Image                    Nullable[string]  `json:"image" validate:"omitempty,max=1024"`
	Gender                   Nullable[string]  `json:"gender" validate:"omitempty,max=50"`
	MaritalStatus            Nullable[string]  `json:"maritalStatus" validate:"omitempty,max=50"`
	PreferredName            Nullable[string]  `json:"preferredName" validate:"omitempty,max=255"`
	PreferredCommunication   Nullable[string]  `json:"preferredCommunication" validate:"omitempty,max=50"`
	PreferredStartDate       *time.Time        `json:"preferredStartDate,omitempty"`
	BirthYear                Nullable[int]     `json:"birthYear" validate:"omitempty,gte=1900,lte=2100"`
	ResidentialDistrict      Nullable[string]  `json:"residentialDistrict" validate:"omitempty,max=255"`
	EmergencyContactName     Nullable[string]  `json:"emergencyContactName" validate:"omitempty,max=255"`
	EmergencyContactRelation Nullable[string]  `json:"emergencyContactRelationship" validate:"omitempty,max=100"`
	EmergencyContactPhone    Nullable[string]  `json:"emergencyContactPhone" validate:"omitempty,max=50"`
	Roles                    *StringListUpdate `json:"roles,omitempty"`
}

// Apply writes the update onto u.
func (in UserUpdateInput) Apply(u *model.User) {
	if in.Email != nil {
		u.Email = NormalizeEmail(*in.Email)
	}
	in.Name.applyTo(&u.Name)
	in.Image.applyTo(&u.Image)
	in.Gender.applyTo(&u.Gender)
	in.MaritalStatus.applyTo(&u.MaritalStatus)
	in.PreferredName.applyTo(&u.PreferredName)
	in.PreferredCommunication.applyTo(&u.PreferredCommunication)
	if in.PreferredStartDate != nil {
		u.PreferredStartDate = utcPtr(in.PreferredStartDate)
	}
	in.BirthYear.applyTo(&u.BirthYear)
	in.ResidentialDistrict.applyTo(&u.ResidentialDistrict)
	in.EmergencyContactName.applyTo(&u.EmergencyContactName)
	in.EmergencyContactRelation.applyTo(&u.EmergencyContactRelation)
	in.EmergencyContactPhone.applyTo(&u.EmergencyContactPhone)
	if in.Roles != nil {
		u.Roles = in.Roles.Apply(u.Roles)
	}
}

func (in UserUpdateInput) rules() []apperrors.Issue {
	if in.Roles == nil {
		return nil
	}
	for _, r := range append(append([]string{}, in.Roles.Set...), in.Roles.Push...) {
		if len(r) > 50 {
			return []apperrors.Issue{{Field: "roles", Rule: "max", Message: "must be at most 50"}}
		}
	}
	return nil
}

// UserExistsInput looks a user up by email.
type UserExistsInput struct {
	Email string `json:"email" validate:"required,email"`
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
