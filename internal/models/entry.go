package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tags what kind of financial event an entry records.
// The sign of Entry.Amount is derived from this tag, never from input.
type EntryType string

const (
	EntryOrder        EntryType = "ORDER"
	EntryBonus        EntryType = "BONUS"
	EntryExpense      EntryType = "EXPENSE"
	EntryCancellation EntryType = "CANCELLATION"
)

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	switch t {
	case EntryOrder, EntryBonus, EntryExpense, EntryCancellation:
		return true
	}
	return false
}

// Negative reports whether entries of this type are stored with a
// non-positive amount.
func (t EntryType) Negative() bool {
	return t == EntryExpense || t == EntryCancellation
}

// AppType identifies the gig platform an entry originated from.
type AppType string

const (
	AppDoorDash  AppType = "DOORDASH"
	AppUberEats  AppType = "UBEREATS"
	AppInstacart AppType = "INSTACART"
	AppGrubhub   AppType = "GRUBHUB"
	AppShipt     AppType = "SHIPT"
	AppOther     AppType = "OTHER"
)

func (a AppType) Valid() bool {
	switch a {
	case AppDoorDash, AppUberEats, AppInstacart, AppGrubhub, AppShipt, AppOther:
		return true
	}
	return false
}

// ExpenseCategory is meaningful only on EXPENSE entries.
type ExpenseCategory string

const (
	CategoryGas          ExpenseCategory = "GAS"
	CategoryParking      ExpenseCategory = "PARKING"
	CategoryTolls        ExpenseCategory = "TOLLS"
	CategoryMaintenance  ExpenseCategory = "MAINTENANCE"
	CategoryPhone        ExpenseCategory = "PHONE"
	CategorySubscription ExpenseCategory = "SUBSCRIPTION"
	CategoryFood         ExpenseCategory = "FOOD"
	CategoryLeisure      ExpenseCategory = "LEISURE"
	CategoryOther        ExpenseCategory = "OTHER"
)

func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryGas, CategoryParking, CategoryTolls, CategoryMaintenance,
		CategoryPhone, CategorySubscription, CategoryFood, CategoryLeisure,
		CategoryOther:
		return true
	}
	return false
}

// Entry is one earnings or expense event. Timestamp is stored in UTC and
// means "when the event occurred", not when it was recorded. Amounts are
// exact decimals; EXPENSE and CANCELLATION rows are always non-positive,
// ORDER and BONUS always non-negative.
type Entry struct {
	ID              uint            `gorm:"primaryKey"`
	UserID          string          `gorm:"size:64;index;not null"`
	Timestamp       time.Time       `gorm:"index;not null"`
	Type            EntryType       `gorm:"size:16;not null"`
	App             AppType         `gorm:"size:16;not null"`
	OrderID         string          `gorm:"size:128"`
	Amount          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DistanceMiles   float64         `gorm:"default:0"`
	DurationMinutes int             `gorm:"default:0"`
	Category        ExpenseCategory `gorm:"size:16"`
	Note            string          `gorm:"type:text"`
	ReceiptURL      string          `gorm:"size:512"`

	IsBusinessExpense   bool `gorm:"default:false"`
	DuringBusinessHours bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
