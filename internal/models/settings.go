package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings are per-user preferences. CostPerMile feeds the expense estimate
// shown next to mileage on the dashboard.
type Settings struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      string          `gorm:"size:64;uniqueIndex;not null"`
	CostPerMile decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
