package util

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// amounts above this are assumed to be input mistakes
var maxAmount = decimal.NewFromInt(1_000_000)

// ValidateAmount checks a submitted amount's magnitude. Sign is not checked
// here: ingestion derives it from the entry type.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Abs().GreaterThan(maxAmount) {
		return fmt.Errorf("amount too large: %s", amount)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD calendar date component.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}

// ValidateEmail checks the shape of an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	if len(email) > 255 || !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// IsStrongPassword reports whether pwd is 8-32 chars with upper, lower and
// digit.
func IsStrongPassword(pwd string) bool {
	if len(pwd) < 8 || len(pwd) > 32 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, ch := range pwd {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
