package period

import (
	"testing"
	"time"

	"gigledger/internal/models"
)

// pin "now" to a known instant: 2025-06-18 21:30 UTC = 17:30 Wednesday in
// New York (EDT, UTC-4).
var wednesday = time.Date(2025, time.June, 18, 21, 30, 0, 0, time.UTC)

func resolveOrFail(t *testing.T, tf models.Timeframe, now time.Time) (time.Time, time.Time) {
	t.Helper()
	start, end, err := Resolve(tf, now)
	if err != nil {
		t.Fatalf("Resolve(%s) error = %v, want nil", tf, err)
	}
	return start, end
}

func TestResolveToday(t *testing.T) {
	start, end := resolveOrFail(t, models.TimeframeToday, wednesday)

	// Eastern midnight = 04:00 UTC during DST
	wantStart := time.Date(2025, time.June, 18, 4, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, time.June, 19, 3, 59, 59, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}
	if !start.Before(end) {
		t.Errorf("start %v not before end %v", start, end)
	}
}

func TestResolveTodayCrossesUTCDate(t *testing.T) {
	// 01:30 UTC on June 19 is still 21:30 June 18 in New York; "today" must
	// mean the Eastern day, not the UTC one.
	lateEvening := time.Date(2025, time.June, 19, 1, 30, 0, 0, time.UTC)
	start, _ := resolveOrFail(t, models.TimeframeToday, lateEvening)

	wantStart := time.Date(2025, time.June, 18, 4, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
}

func TestResolveYesterdayMatchesDayOffset(t *testing.T) {
	start, end := resolveOrFail(t, models.TimeframeYesterday, wednesday)
	offStart, offEnd := DayOffset(-1, wednesday)

	if !start.Equal(offStart) || !end.Equal(offEnd) {
		t.Errorf("YESTERDAY = [%v, %v], DayOffset(-1) = [%v, %v]", start, end, offStart, offEnd)
	}
	if got := start.In(Reference()).Day(); got != 17 {
		t.Errorf("yesterday starts on day %d, want 17", got)
	}
}

func TestDayOffsetRollsOverMonth(t *testing.T) {
	// June 1 in New York; -1 must land on May 31.
	firstOfMonth := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	start, _ := DayOffset(-1, firstOfMonth)

	local := start.In(Reference())
	if local.Month() != time.May || local.Day() != 31 {
		t.Errorf("offset -1 from June 1 = %v, want May 31", local)
	}
}

func TestDayOffsetRollsOverYear(t *testing.T) {
	newYear := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	start, _ := DayOffset(-1, newYear)

	local := start.In(Reference())
	if local.Year() != 2024 || local.Month() != time.December || local.Day() != 31 {
		t.Errorf("offset -1 from Jan 1 = %v, want Dec 31 2024", local)
	}
}

func TestResolveThisWeekStartsMonday(t *testing.T) {
	start, end := resolveOrFail(t, models.TimeframeThisWeek, wednesday)

	local := start.In(Reference())
	if local.Weekday() != time.Monday || local.Day() != 16 {
		t.Errorf("week start = %v, want Monday June 16", local)
	}
	// truncates at today, not end of week
	if got := end.In(Reference()).Day(); got != 18 {
		t.Errorf("week end day = %d, want 18", got)
	}
}

func TestResolveThisWeekOnMonday(t *testing.T) {
	monday := time.Date(2025, time.June, 16, 15, 0, 0, 0, time.UTC)
	start, end := resolveOrFail(t, models.TimeframeThisWeek, monday)

	if sd, ed := start.In(Reference()).Day(), end.In(Reference()).Day(); sd != 16 || ed != 16 {
		t.Errorf("monday week = days [%d, %d], want [16, 16]", sd, ed)
	}
}

func TestResolveLast7Days(t *testing.T) {
	start, end := resolveOrFail(t, models.TimeframeLast7Days, wednesday)

	if got := start.In(Reference()).Day(); got != 12 {
		t.Errorf("window start day = %d, want 12 (7 days inclusive of today)", got)
	}
	if got := end.In(Reference()).Day(); got != 18 {
		t.Errorf("window end day = %d, want 18", got)
	}
}

func TestResolveThisMonthTruncatesAtNow(t *testing.T) {
	start, end := resolveOrFail(t, models.TimeframeThisMonth, wednesday)

	ls, le := start.In(Reference()), end.In(Reference())
	if ls.Day() != 1 || ls.Month() != time.June {
		t.Errorf("month start = %v, want June 1", ls)
	}
	if le.Day() != 18 {
		t.Errorf("month end day = %d, want 18 (truncated at now)", le.Day())
	}
}

func TestResolveLastMonthIsEntireMonth(t *testing.T) {
	start, end := resolveOrFail(t, models.TimeframeLastMonth, wednesday)

	ls, le := start.In(Reference()), end.In(Reference())
	if ls.Month() != time.May || ls.Day() != 1 {
		t.Errorf("last month start = %v, want May 1", ls)
	}
	if le.Month() != time.May || le.Day() != 31 {
		t.Errorf("last month end = %v, want May 31", le)
	}
	if le.Hour() != 23 || le.Minute() != 59 || le.Second() != 59 {
		t.Errorf("last month end clock = %v, want 23:59:59", le)
	}
}

func TestResolveLastMonthFebruaryLengths(t *testing.T) {
	cases := []struct {
		now     time.Time
		wantDay int
	}{
		// March 2024: previous February is a leap February
		{time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC), 29},
		// March 2025: ordinary February
		{time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC), 28},
	}
	for _, tc := range cases {
		_, end := resolveOrFail(t, models.TimeframeLastMonth, tc.now)
		if got := end.In(Reference()).Day(); got != tc.wantDay {
			t.Errorf("LAST_MONTH at %v ends on day %d, want %d", tc.now, got, tc.wantDay)
		}
	}
}

func TestResolveUnknownTimeframe(t *testing.T) {
	_, _, err := Resolve(models.Timeframe("LAST_YEAR"), wednesday)
	if err != ErrUnknownTimeframe {
		t.Errorf("Resolve(LAST_YEAR) error = %v, want ErrUnknownTimeframe", err)
	}
	_, _, err = Resolve(models.Timeframe(""), wednesday)
	if err != ErrUnknownTimeframe {
		t.Errorf("Resolve(\"\") error = %v, want ErrUnknownTimeframe", err)
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC), 30},
		{time.Date(2025, time.July, 18, 12, 0, 0, 0, time.UTC), 31},
		{time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC), 29},
		{time.Date(2025, time.February, 10, 12, 0, 0, 0, time.UTC), 28},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.now); got != tc.want {
			t.Errorf("DaysInMonth(%v) = %d, want %d", tc.now, got, tc.want)
		}
	}
}

func TestDaysInMonthUsesEasternMonth(t *testing.T) {
	// 03:00 UTC on July 1 is still June 30 in New York.
	utcJuly := time.Date(2025, time.July, 1, 3, 0, 0, 0, time.UTC)
	if got := DaysInMonth(utcJuly); got != 30 {
		t.Errorf("DaysInMonth = %d, want 30 (June in reference zone)", got)
	}
}
