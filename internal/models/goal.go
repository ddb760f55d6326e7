package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Timeframe is the closed set of calendar windows the app understands.
type Timeframe string

const (
	TimeframeToday     Timeframe = "TODAY"
	TimeframeYesterday Timeframe = "YESTERDAY"
	TimeframeThisWeek  Timeframe = "THIS_WEEK"
	TimeframeLast7Days Timeframe = "LAST_7_DAYS"
	TimeframeThisMonth Timeframe = "THIS_MONTH"
	TimeframeLastMonth Timeframe = "LAST_MONTH"
)

func (t Timeframe) Valid() bool {
	switch t {
	case TimeframeToday, TimeframeYesterday, TimeframeThisWeek,
		TimeframeLast7Days, TimeframeThisMonth, TimeframeLastMonth:
		return true
	}
	return false
}

// Goal is a target profit for one user and one timeframe. At most one goal
// exists per (user, timeframe). A TODAY goal is kept in sync automatically
// whenever the THIS_MONTH goal changes.
type Goal struct {
	ID           uint            `gorm:"primaryKey"`
	UserID       string          `gorm:"size:64;index;not null;uniqueIndex:uq_user_timeframe"`
	Timeframe    Timeframe       `gorm:"size:16;not null;uniqueIndex:uq_user_timeframe"`
	TargetProfit decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Name         string          `gorm:"size:128;default:Savings Goal"`

	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
