package validation

import "volunteerhub/internal/model"

// SkillCreateInput is the create view of a skill. A skill may be unassigned.
type SkillCreateInput struct {
	Name   string  `json:"name" validate:"required,max=255"`
	UserID *string `json:"userId,omitempty" validate:"omitempty,uuid"`
}

// Model builds the record to insert.
func (in SkillCreateInput) Model() *model.Skill {
	return &model.Skill{Name: in.Name, UserID: in.UserID}
}

// SkillByUserInput selects the skills of one user.
type SkillByUserInput struct {
	UserID string `json:"userId" validate:"required,uuid"`
}
