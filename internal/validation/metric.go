package validation

import (
	"github.com/shopspring/decimal"

	"volunteerhub/internal/model"
)

// MetricSortable are the columns metrics can be ordered by.
var MetricSortable = Sortable{
	"id":      "id",
	"type":    "type",
	"unit":    "unit",
	"value":   "value",
	"eventId": "event_id",
}

// MetricCreateInput is the create view of a metric.
type MetricCreateInput struct {
	Type    string           `json:"type" validate:"required,max=100"`
	Unit    *string          `json:"unit,omitempty" validate:"omitempty,max=50"`
	Value   *decimal.Decimal `json:"value" validate:"required"`
	EventID *string          `json:"eventId,omitempty" validate:"omitempty,uuid"`
}

// Model builds the record to insert.
func (in MetricCreateInput) Model() *model.Metric {
	return &model.Metric{
		Type:    in.Type,
		Unit:    in.Unit,
		Value:   *in.Value,
		EventID: in.EventID,
	}
}

// MetricCreateManyInput is the create-many view of metrics.
type MetricCreateManyInput struct {
	Items []MetricCreateInput `json:"items" validate:"required,min=1,max=100,dive"`
}

// MetricUpdateInput is the update view of a metric.
type MetricUpdateInput struct {
	Type    *string          `json:"type,omitempty" validate:"omitempty,min=1,max=100"`
	Unit    Nullable[string] `json:"unit" validate:"omitempty,max=50"`
	Value   *DecimalUpdate   `json:"value,omitempty"`
	EventID Nullable[string] `json:"eventId" validate:"omitempty,uuid"`
}

// Apply writes the update onto m.
func (in MetricUpdateInput) Apply(m *model.Metric) error {
	if in.Type != nil {
		m.Type = *in.Type
	}
	in.Unit.applyTo(&m.Unit)
	if in.Value != nil {
		v, err := in.Value.Apply(m.Value)
		if err != nil {
			return err
		}
		m.Value = v
	}
	in.EventID.applyTo(&m.EventID)
	return nil
}

// MetricWhereInput is the filter view of a metric.
type MetricWhereInput struct {
	AND []MetricWhereInput `json:"AND,omitempty" validate:"omitempty,dive"`
	OR  []MetricWhereInput `json:"OR,omitempty" validate:"omitempty,dive"`
	NOT []MetricWhereInput `json:"NOT,omitempty" validate:"omitempty,dive"`

	ID      *Filter[uint]            `json:"id,omitempty"`
	Type    *StringFilter            `json:"type,omitempty"`
	Unit    *StringFilter            `json:"unit,omitempty"`
	Value   *Filter[decimal.Decimal] `json:"value,omitempty"`
	EventID *StringFilter            `json:"eventId,omitempty"`
}

// MetricFindManyArgs is the list view of metrics.
type MetricFindManyArgs = FindManyArgs[MetricWhereInput]
