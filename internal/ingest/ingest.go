// Package ingest normalizes raw entry submissions before they touch the
// store. Two invariants live here and only here: the amount's sign is
// derived from the entry type, and the canonical timestamp is built from
// reference-timezone date/time components when the caller supplies them.
package ingest

import (
	"fmt"
	"time"

	"gigledger/internal/models"
	"gigledger/internal/period"

	"github.com/shopspring/decimal"
)

// Submission is a raw create request. Date/Time are optional calendar
// components ("2006-01-02", "15:04") interpreted in the reference timezone;
// they exist only to construct Timestamp and are never persisted.
type Submission struct {
	Type            models.EntryType
	App             models.AppType
	OrderID         string
	Amount          decimal.Decimal
	DistanceMiles   float64
	DurationMinutes int
	Category        models.ExpenseCategory
	Note            string
	ReceiptURL      string
	Timestamp       *time.Time
	Date            string
	Time            string
}

// Patch is a raw update request; nil fields are left untouched.
type Patch struct {
	Type            *models.EntryType
	App             *models.AppType
	OrderID         *string
	Amount          *decimal.Decimal
	DistanceMiles   *float64
	DurationMinutes *int
	Category        *models.ExpenseCategory
	Note            *string
	ReceiptURL      *string
	Timestamp       *time.Time
	Date            string
	Time            string
}

// signedAmount applies the sign convention: EXPENSE and CANCELLATION are
// stored non-positive, everything else non-negative, whatever sign the
// caller submitted.
func signedAmount(t models.EntryType, amount decimal.Decimal) decimal.Decimal {
	if t.Negative() {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// resolveTimestamp builds the canonical UTC timestamp. Preference order:
// date+time components (reference timezone), then the raw timestamp, then
// now. A malformed component pair is treated as absent, not as an error;
// the fallback is always an acceptable substitute.
func resolveTimestamp(date, clock string, raw *time.Time, now time.Time) time.Time {
	if date != "" && clock != "" {
		if t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, period.Reference()); err == nil {
			return t.UTC()
		}
	}
	if raw != nil {
		return raw.UTC()
	}
	return now.UTC()
}

// Normalize validates a submission and produces the entry to persist.
func Normalize(userID string, sub Submission, now time.Time) (models.Entry, error) {
	if !sub.Type.Valid() {
		return models.Entry{}, fmt.Errorf("invalid entry type %q", sub.Type)
	}
	if !sub.App.Valid() {
		return models.Entry{}, fmt.Errorf("invalid app %q", sub.App)
	}
	if sub.Category != "" && !sub.Category.Valid() {
		return models.Entry{}, fmt.Errorf("invalid category %q", sub.Category)
	}
	if sub.DistanceMiles < 0 {
		return models.Entry{}, fmt.Errorf("distance must be non-negative")
	}
	if sub.DurationMinutes < 0 {
		return models.Entry{}, fmt.Errorf("duration must be non-negative")
	}

	return models.Entry{
		UserID:          userID,
		Timestamp:       resolveTimestamp(sub.Date, sub.Time, sub.Timestamp, now),
		Type:            sub.Type,
		App:             sub.App,
		OrderID:         sub.OrderID,
		Amount:          signedAmount(sub.Type, sub.Amount),
		DistanceMiles:   sub.DistanceMiles,
		DurationMinutes: sub.DurationMinutes,
		Category:        sub.Category,
		Note:            sub.Note,
		ReceiptURL:      sub.ReceiptURL,
	}, nil
}

// ApplyPatch returns a new entry value with the patch applied. The sign
// convention is re-applied whenever type or amount changes: a new amount is
// signed by the effective type, and a type change alone re-signs the stored
// magnitude.
func ApplyPatch(e models.Entry, p Patch, now time.Time) (models.Entry, error) {
	if p.Type != nil {
		if !p.Type.Valid() {
			return models.Entry{}, fmt.Errorf("invalid entry type %q", *p.Type)
		}
		e.Type = *p.Type
	}
	if p.App != nil {
		if !p.App.Valid() {
			return models.Entry{}, fmt.Errorf("invalid app %q", *p.App)
		}
		e.App = *p.App
	}
	if p.Category != nil {
		if *p.Category != "" && !p.Category.Valid() {
			return models.Entry{}, fmt.Errorf("invalid category %q", *p.Category)
		}
		e.Category = *p.Category
	}
	if p.OrderID != nil {
		e.OrderID = *p.OrderID
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	if p.ReceiptURL != nil {
		e.ReceiptURL = *p.ReceiptURL
	}
	if p.DistanceMiles != nil {
		if *p.DistanceMiles < 0 {
			return models.Entry{}, fmt.Errorf("distance must be non-negative")
		}
		e.DistanceMiles = *p.DistanceMiles
	}
	if p.DurationMinutes != nil {
		if *p.DurationMinutes < 0 {
			return models.Entry{}, fmt.Errorf("duration must be non-negative")
		}
		e.DurationMinutes = *p.DurationMinutes
	}

	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Amount != nil || p.Type != nil {
		e.Amount = signedAmount(e.Type, e.Amount)
	}

	if p.Date != "" && p.Time != "" {
		if t, err := time.ParseInLocation("2006-01-02 15:04", p.Date+" "+p.Time, period.Reference()); err == nil {
			e.Timestamp = t.UTC()
		}
		// malformed components leave the stored timestamp alone
	} else if p.Timestamp != nil {
		e.Timestamp = p.Timestamp.UTC()
	}

	e.UpdatedAt = now.UTC()
	return e, nil
}
