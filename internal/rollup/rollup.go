// Package rollup aggregates ledger entries over a resolved time window into
// the financial summary the dashboard renders. Aggregation is a pure read
// projection: no caching, no writes, identical inputs over unchanged data
// yield identical results.
package rollup

import (
	"errors"
	"fmt"
	"time"

	"gigledger/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Result is the transient summary for one window. Expenses carries its
// natural (non-positive) sign so that Profit = Revenue + Expenses holds.
type Result struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`

	Miles float64 `json:"miles"`
	Hours float64 `json:"hours"`

	DollarsPerMile    decimal.Decimal `json:"dollars_per_mile"`
	DollarsPerHour    decimal.Decimal `json:"dollars_per_hour"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`

	ByType map[models.EntryType]decimal.Decimal `json:"by_type"`
	ByApp  map[models.AppType]decimal.Decimal   `json:"by_app"`

	Goal         *GoalSummary     `json:"goal,omitempty"`
	GoalProgress *decimal.Decimal `json:"goal_progress,omitempty"`
}

// GoalSummary is the part of a goal the rollup exposes.
type GoalSummary struct {
	Timeframe    models.Timeframe `json:"timeframe"`
	Name         string           `json:"name"`
	TargetProfit decimal.Decimal  `json:"target_profit"`
}

// Aggregate computes the summary for userID's entries with timestamps in
// [start, end], both ends inclusive. When timeframe names one of the goal
// timeframes, the matching goal is joined read-only and progress is
// profit / target. Zero miles, hours or order count are expected steady
// states and produce zero ratios, never an error.
func Aggregate(db *gorm.DB, userID string, start, end time.Time, timeframe models.Timeframe) (Result, error) {
	var entries []models.Entry
	if err := db.
		Where("user_id = ? AND timestamp >= ? AND timestamp <= ?", userID, start, end).
		Find(&entries).Error; err != nil {
		return Result{}, fmt.Errorf("query entries: %w", err)
	}

	res := Result{
		ByType: make(map[models.EntryType]decimal.Decimal),
		ByApp:  make(map[models.AppType]decimal.Decimal),
	}

	var minutes int
	var orderCount int64
	for i := range entries {
		e := &entries[i]

		if e.Type.Negative() {
			res.Expenses = res.Expenses.Add(e.Amount)
		} else {
			res.Revenue = res.Revenue.Add(e.Amount)
		}
		if e.Type == models.EntryOrder {
			orderCount++
		}

		res.ByType[e.Type] = res.ByType[e.Type].Add(e.Amount)
		res.ByApp[e.App] = res.ByApp[e.App].Add(e.Amount)

		res.Miles += e.DistanceMiles
		minutes += e.DurationMinutes
	}

	// expenses are non-positive, so this is revenue minus cost
	res.Profit = res.Revenue.Add(res.Expenses)
	res.Hours = float64(minutes) / 60.0

	if res.Miles > 0 {
		res.DollarsPerMile = res.Profit.Div(decimal.NewFromFloat(res.Miles)).Round(2)
	}
	if res.Hours > 0 {
		res.DollarsPerHour = res.Profit.Div(decimal.NewFromFloat(res.Hours)).Round(2)
	}
	if orderCount > 0 {
		res.AverageOrderValue = res.Revenue.Div(decimal.NewFromInt(orderCount)).Round(2)
	}

	if timeframe.Valid() {
		if err := attachGoal(db, userID, timeframe, &res); err != nil {
			return Result{}, err
		}
	}

	return res, nil
}

// attachGoal joins the (user, timeframe) goal into the result. The rollup
// never creates or mutates goals.
func attachGoal(db *gorm.DB, userID string, timeframe models.Timeframe, res *Result) error {
	var goal models.Goal
	err := db.Where("user_id = ? AND timeframe = ?", userID, timeframe).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("query goal: %w", err)
	}

	res.Goal = &GoalSummary{
		Timeframe:    goal.Timeframe,
		Name:         goal.Name,
		TargetProfit: goal.TargetProfit,
	}
	if goal.TargetProfit.IsPositive() {
		progress := res.Profit.Div(goal.TargetProfit).Round(4)
		res.GoalProgress = &progress
	}
	return nil
}
