package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteerhub/internal/model"
	"volunteerhub/internal/validation"
)

const resourceEvent = "event"

// EventRepository defines event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	FindMany(ctx context.Context, args validation.EventFindManyArgs) ([]model.Event, error)
	// List returns every event matching where, soonest first, without paging.
	List(ctx context.Context, where *validation.EventWhereInput) ([]model.Event, error)
	// Update locks the event, applies fn to it and saves the result.
	Update(ctx context.Context, id string, fn func(*model.Event) error) (*model.Event, error)
	// UpdateMany applies fn to every event matching where and returns the
	// number of events written.
	UpdateMany(ctx context.Context, where *validation.EventWhereInput, fn func(*model.Event) error) (int64, error)
	Delete(ctx context.Context, id string) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return classify(resourceEvent, r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error)
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("EventLocation").
		Preload("Tags").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, classify(resourceEvent, err)
	}
	return &event, nil
}

func (r *eventRepository) FindMany(ctx context.Context, args validation.EventFindManyArgs) ([]model.Event, error) {
	q := r.db.WithContext(ctx).Model(&model.Event{}).Preload("EventLocation").Preload("Tags")
	q = applyWhere(q, eventWhere(args.Where))
	q = page(q, args, validation.EventSortable, "id")

	events := make([]model.Event, 0)
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) List(ctx context.Context, where *validation.EventWhereInput) ([]model.Event, error) {
	q := r.db.WithContext(ctx).Model(&model.Event{}).Preload("EventLocation").Preload("Tags")
	q = applyWhere(q, eventWhere(where))

	events := make([]model.Event, 0)
	if err := q.Order("timestamp").Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, fn func(*model.Event) error) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&event).Error; err != nil {
			return err
		}
		if err := fn(&event); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&event).Error
	})
	if err != nil {
		return nil, classify(resourceEvent, err)
	}
	return &event, nil
}

func (r *eventRepository) UpdateMany(ctx context.Context, where *validation.EventWhereInput, fn func(*model.Event) error) (int64, error) {
	var written int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var events []model.Event
		q := applyWhere(tx.Clauses(clause.Locking{Strength: "UPDATE"}), eventWhere(where))
		if err := q.Order("id").Find(&events).Error; err != nil {
			return err
		}
		for i := range events {
			if err := fn(&events[i]); err != nil {
				return err
			}
			if err := tx.Omit(clause.Associations).Save(&events[i]).Error; err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, classify(resourceEvent, err)
	}
	return written, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Event{})
	if res.Error != nil {
		return classifyDelete(resourceEvent, res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(resourceEvent, gorm.ErrRecordNotFound)
	}
	return nil
}

func eventWhere(w *validation.EventWhereInput) clause.Expression {
	if w == nil {
		return nil
	}
	var c conditions
	c.add(
		stringFilter("id", w.ID),
		stringFilter("name", w.Name),
		valueFilter("timestamp", w.Timestamp),
		valueFilter("duration", w.Duration),
		stringFilter("details", w.Details),
		valueFilter("approval_status", w.ApprovalStatus),
		stringFilter("image", w.Image),
		valueFilter("event_location_id", w.EventLocationID),
		stringFilter("user_id", w.UserID),
		valueFilter("created_at", w.CreatedAt),
		valueFilter("updated_at", w.UpdatedAt),
	)
	c.add(combine(w.AND, w.OR, w.NOT, eventWhere)...)
	return c.and()
}
