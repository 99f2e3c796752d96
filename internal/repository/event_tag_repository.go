package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteerhub/internal/model"
)

const resourceEventTag = "event tag"

// EventTagRepository defines tag persistence operations. Tags are keyed by
// (eventId, name).
type EventTagRepository interface {
	Create(ctx context.Context, tag *model.EventTag) error
	// CreateMany inserts all tags or none of them.
	CreateMany(ctx context.Context, tags []model.EventTag) error
	FindByKey(ctx context.Context, eventID, name string) (*model.EventTag, error)
	FindByEvent(ctx context.Context, eventID string) ([]model.EventTag, error)
	Delete(ctx context.Context, eventID, name string) error
}

type eventTagRepository struct {
	db *gorm.DB
}

// NewEventTagRepository creates a new tag repository.
func NewEventTagRepository(db *gorm.DB) EventTagRepository {
	return &eventTagRepository{db: db}
}

func (r *eventTagRepository) Create(ctx context.Context, tag *model.EventTag) error {
	return classify(resourceEventTag, r.db.WithContext(ctx).Omit(clause.Associations).Create(tag).Error)
}

func (r *eventTagRepository) CreateMany(ctx context.Context, tags []model.EventTag) error {
	if len(tags) == 0 {
		return nil
	}
	return classify(resourceEventTag, r.db.WithContext(ctx).Omit(clause.Associations).Create(&tags).Error)
}

func (r *eventTagRepository) FindByKey(ctx context.Context, eventID, name string) (*model.EventTag, error) {
	var tag model.EventTag
	if err := r.db.WithContext(ctx).Where("event_id = ? AND name = ?", eventID, name).First(&tag).Error; err != nil {
		return nil, classify(resourceEventTag, err)
	}
	return &tag, nil
}

func (r *eventTagRepository) FindByEvent(ctx context.Context, eventID string) ([]model.EventTag, error) {
	tags := make([]model.EventTag, 0)
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *eventTagRepository) Delete(ctx context.Context, eventID, name string) error {
	res := r.db.WithContext(ctx).Where("event_id = ? AND name = ?", eventID, name).Delete(&model.EventTag{})
	if res.Error != nil {
		return classifyDelete(resourceEventTag, res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(resourceEventTag, gorm.ErrRecordNotFound)
	}
	return nil
}
