// Package period resolves the app's named timeframes into absolute UTC
// bounds. Calendar arithmetic (which day "today" is, where the week and
// month start) happens in the reference timezone the product is defined in
// (US Eastern); only the resulting boundary instants are converted to UTC,
// because stored timestamps are compared as UTC values. Collapsing this to
// single-zone math shifts day boundaries by several hours for entries made
// near midnight.
package period

import (
	"errors"
	"time"

	"gigledger/internal/models"
)

// ErrUnknownTimeframe is returned for tags outside the closed enumeration.
var ErrUnknownTimeframe = errors.New("unknown timeframe")

var reference = mustLoadReference()

func mustLoadReference() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic("load reference timezone: " + err.Error())
	}
	return loc
}

// Reference returns the timezone in which day/week/month boundaries are
// defined for users.
func Reference() *time.Location {
	return reference
}

// Resolve maps a timeframe to [start, end] UTC instants, evaluated at now.
// Results are never cached: a stale bound would misclassify entries across
// a day boundary.
func Resolve(tf models.Timeframe, now time.Time) (start, end time.Time, err error) {
	local := now.In(reference)

	switch tf {
	case models.TimeframeToday:
		start, end = dayBounds(local)
	case models.TimeframeYesterday:
		start, end = dayBounds(local.AddDate(0, 0, -1))
	case models.TimeframeThisWeek:
		// week starts Monday regardless of locale
		back := (int(local.Weekday()) + 6) % 7
		start, _ = dayBounds(local.AddDate(0, 0, -back))
		_, end = dayBounds(local)
	case models.TimeframeLast7Days:
		// inclusive 7-day window ending today
		start, _ = dayBounds(local.AddDate(0, 0, -6))
		_, end = dayBounds(local)
	case models.TimeframeThisMonth:
		first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, reference)
		start = first.UTC()
		_, end = dayBounds(local)
	case models.TimeframeLastMonth:
		firstOfThis := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, reference)
		lastOfPrev := firstOfThis.AddDate(0, 0, -1)
		start = time.Date(lastOfPrev.Year(), lastOfPrev.Month(), 1, 0, 0, 0, 0, reference).UTC()
		_, end = dayBounds(lastOfPrev)
	default:
		return time.Time{}, time.Time{}, ErrUnknownTimeframe
	}
	return start, end, nil
}

// DayOffset returns the bounds of a single reference-timezone day relative
// to now: 0 = today, -1 = yesterday, 1 = tomorrow. Offsets roll over month
// and year boundaries by plain date arithmetic.
func DayOffset(offset int, now time.Time) (start, end time.Time) {
	return dayBounds(now.In(reference).AddDate(0, 0, offset))
}

// dayBounds returns [00:00:00, 23:59:59] of t's calendar day in UTC. The
// end bound is 23:59:59, not 24:00:00: entries at exactly the end instant
// are included and the final sub-second remains unaddressable. That
// one-second gap is part of the contract.
func dayBounds(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, reference).UTC()
	end = time.Date(y, m, d, 23, 59, 59, 0, reference).UTC()
	return start, end
}

// DaysInMonth reports the length of now's calendar month in the reference
// timezone. Used to derive a daily goal from a monthly one.
func DaysInMonth(now time.Time) int {
	local := now.In(reference)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, reference)
	return first.AddDate(0, 1, -1).Day()
}
