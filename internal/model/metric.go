package model

import "github.com/shopspring/decimal"

// Metric is a contribution ledger entry. EventID is nil for entries that
// are not tied to an event.
type Metric struct {
	ID      uint            `json:"id" gorm:"primaryKey"`
	Type    string          `json:"type" gorm:"size:100;not null;index"`
	Unit    *string         `json:"unit" gorm:"size:50"`
	Value   decimal.Decimal `json:"value" gorm:"type:decimal(20,4);not null"`
	EventID *string         `json:"eventId" gorm:"type:varchar(36);index"`

	Event *Event `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:SET NULL"`
}

// TableName pins the table name; the aggregate is called Metrics.
func (Metric) TableName() string {
	return "metrics"
}
