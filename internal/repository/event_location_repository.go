package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteerhub/internal/model"
	"volunteerhub/internal/validation"
)

const resourceEventLocation = "event location"

// EventLocationRepository defines location persistence operations.
type EventLocationRepository interface {
	Create(ctx context.Context, location *model.EventLocation) error
	FindByID(ctx context.Context, id uint) (*model.EventLocation, error)
	FindMany(ctx context.Context, args validation.EventLocationFindManyArgs) ([]model.EventLocation, error)
	Update(ctx context.Context, id uint, fn func(*model.EventLocation) error) (*model.EventLocation, error)
	Delete(ctx context.Context, id uint) error
}

type eventLocationRepository struct {
	db *gorm.DB
}

// NewEventLocationRepository creates a new location repository.
func NewEventLocationRepository(db *gorm.DB) EventLocationRepository {
	return &eventLocationRepository{db: db}
}

func (r *eventLocationRepository) Create(ctx context.Context, location *model.EventLocation) error {
	return classify(resourceEventLocation, r.db.WithContext(ctx).Omit(clause.Associations).Create(location).Error)
}

func (r *eventLocationRepository) FindByID(ctx context.Context, id uint) (*model.EventLocation, error) {
	var location model.EventLocation
	if err := r.db.WithContext(ctx).First(&location, id).Error; err != nil {
		return nil, classify(resourceEventLocation, err)
	}
	return &location, nil
}

func (r *eventLocationRepository) FindMany(ctx context.Context, args validation.EventLocationFindManyArgs) ([]model.EventLocation, error) {
	q := applyWhere(r.db.WithContext(ctx).Model(&model.EventLocation{}), eventLocationWhere(args.Where))
	q = page(q, args, validation.EventLocationSortable, "id")

	locations := make([]model.EventLocation, 0)
	if err := q.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *eventLocationRepository) Update(ctx context.Context, id uint, fn func(*model.EventLocation) error) (*model.EventLocation, error) {
	var location model.EventLocation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&location, id).Error; err != nil {
			return err
		}
		if err := fn(&location); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&location).Error
	})
	if err != nil {
		return nil, classify(resourceEventLocation, err)
	}
	return &location, nil
}

func (r *eventLocationRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.EventLocation{}, id)
	if res.Error != nil {
		return classifyDelete(resourceEventLocation, res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(resourceEventLocation, gorm.ErrRecordNotFound)
	}
	return nil
}

func eventLocationWhere(w *validation.EventLocationWhereInput) clause.Expression {
	if w == nil {
		return nil
	}
	var c conditions
	c.add(
		valueFilter("id", w.ID),
		stringFilter("name", w.Name),
		valueFilter("latitude", w.Latitude),
		valueFilter("longitude", w.Longitude),
		stringFilter("description", w.Description),
	)
	c.add(combine(w.AND, w.OR, w.NOT, eventLocationWhere)...)
	return c.and()
}
