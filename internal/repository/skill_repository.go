package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteerhub/internal/model"
)

const resourceSkill = "skill"

// SkillRepository defines skill persistence operations.
type SkillRepository interface {
	Create(ctx context.Context, skill *model.Skill) error
	FindByID(ctx context.Context, id uint) (*model.Skill, error)
	FindByUser(ctx context.Context, userID string) ([]model.Skill, error)
	Delete(ctx context.Context, id uint) error
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new skill repository.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, skill *model.Skill) error {
	return classify(resourceSkill, r.db.WithContext(ctx).Omit(clause.Associations).Create(skill).Error)
}

func (r *skillRepository) FindByID(ctx context.Context, id uint) (*model.Skill, error) {
	var skill model.Skill
	if err := r.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		return nil, classify(resourceSkill, err)
	}
	return &skill, nil
}

func (r *skillRepository) FindByUser(ctx context.Context, userID string) ([]model.Skill, error) {
	skills := make([]model.Skill, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *skillRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Skill{}, id)
	if res.Error != nil {
		return classifyDelete(resourceSkill, res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(resourceSkill, gorm.ErrRecordNotFound)
	}
	return nil
}
