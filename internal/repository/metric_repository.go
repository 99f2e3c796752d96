package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteerhub/internal/model"
	"volunteerhub/internal/validation"
)

const resourceMetric = "metric"

// MetricRepository defines metric persistence operations.
type MetricRepository interface {
	Create(ctx context.Context, metric *model.Metric) error
	CreateMany(ctx context.Context, metrics []model.Metric) error
	FindByID(ctx context.Context, id uint) (*model.Metric, error)
	FindMany(ctx context.Context, args validation.MetricFindManyArgs) ([]model.Metric, error)
	FindByEvent(ctx context.Context, eventID string) ([]model.Metric, error)
	Update(ctx context.Context, id uint, fn func(*model.Metric) error) (*model.Metric, error)
	Delete(ctx context.Context, id uint) error
}

type metricRepository struct {
	db *gorm.DB
}

// NewMetricRepository creates a new metric repository.
func NewMetricRepository(db *gorm.DB) MetricRepository {
	return &metricRepository{db: db}
}

func (r *metricRepository) Create(ctx context.Context, metric *model.Metric) error {
	return classify(resourceMetric, r.db.WithContext(ctx).Omit(clause.Associations).Create(metric).Error)
}

func (r *metricRepository) CreateMany(ctx context.Context, metrics []model.Metric) error {
	if len(metrics) == 0 {
		return nil
	}
	return classify(resourceMetric, r.db.WithContext(ctx).Omit(clause.Associations).Create(&metrics).Error)
}

func (r *metricRepository) FindByID(ctx context.Context, id uint) (*model.Metric, error) {
	var metric model.Metric
	if err := r.db.WithContext(ctx).First(&metric, id).Error; err != nil {
		return nil, classify(resourceMetric, err)
	}
	return &metric, nil
}

func (r *metricRepository) FindMany(ctx context.Context, args validation.MetricFindManyArgs) ([]model.Metric, error) {
	q := applyWhere(r.db.WithContext(ctx).Model(&model.Metric{}), metricWhere(args.Where))
	q = page(q, args, validation.MetricSortable, "id")

	metrics := make([]model.Metric, 0)
	if err := q.Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *metricRepository) FindByEvent(ctx context.Context, eventID string) ([]model.Metric, error) {
	metrics := make([]model.Metric, 0)
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("id").Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *metricRepository) Update(ctx context.Context, id uint, fn func(*model.Metric) error) (*model.Metric, error) {
	var metric model.Metric
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&metric, id).Error; err != nil {
			return err
		}
		if err := fn(&metric); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&metric).Error
	})
	if err != nil {
		return nil, classify(resourceMetric, err)
	}
	return &metric, nil
}

func (r *metricRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Metric{}, id)
	if res.Error != nil {
		return classifyDelete(resourceMetric, res.Error)
	}
	if res.RowsAffected == 0 {
		return classify(resourceMetric, gorm.ErrRecordNotFound)
	}
	return nil
}

func metricWhere(w *validation.MetricWhereInput) clause.Expression {
	if w == nil {
		return nil
	}
	var c conditions
	c.add(
		valueFilter("id", w.ID),
		stringFilter("type", w.Type),
		stringFilter("unit", w.Unit),
		valueFilter("value", w.Value),
		stringFilter("event_id", w.EventID),
	)
	c.add(combine(w.AND, w.OR, w.NOT, metricWhere)...)
	return c.and()
}
