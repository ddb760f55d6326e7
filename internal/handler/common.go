package handler

import (
	"strconv"
	"time"

	"gigledger/internal/models"
	"gigledger/internal/period"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user placed by the auth middleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// window is a resolved query range plus the timeframe label (empty when the
// caller used an explicit from/to override).
type window struct {
	start     time.Time
	end       time.Time
	timeframe models.Timeframe
}

// resolveWindow interprets the timeframe / day_offset / from / to query
// parameters. A missing timeframe defaults to TODAY here, at the caller
// boundary; the resolver itself rejects unknown tags.
func resolveWindow(c *gin.Context, now time.Time) (window, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")

	// explicit range overrides the timeframe vocabulary (backward compat)
	if fromStr != "" || toStr != "" {
		w := window{}
		w.start, w.end = time.Time{}, time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
		if fromStr != "" {
			t, err := time.Parse(time.RFC3339, fromStr)
			if err != nil {
				return window{}, err
			}
			w.start = t.UTC()
		}
		if toStr != "" {
			t, err := time.Parse(time.RFC3339, toStr)
			if err != nil {
				return window{}, err
			}
			w.end = t.UTC()
		}
		return w, nil
	}

	tf := models.Timeframe(c.DefaultQuery("timeframe", string(models.TimeframeToday)))

	// day_offset navigates single days relative to today
	if tf == models.TimeframeToday {
		if offStr := c.Query("day_offset"); offStr != "" {
			off, err := strconv.Atoi(offStr)
			if err != nil {
				return window{}, err
			}
			start, end := period.DayOffset(off, now)
			return window{start: start, end: end, timeframe: tf}, nil
		}
	}

	start, end, err := period.Resolve(tf, now)
	if err != nil {
		return window{}, err
	}
	return window{start: start, end: end, timeframe: tf}, nil
}
