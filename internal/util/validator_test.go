package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	ok := []string{"0", "0.01", "18.50", "-15.00", "999999.99"}
	for _, s := range ok {
		d, _ := decimal.NewFromString(s)
		if err := ValidateAmount(d); err != nil {
			t.Errorf("ValidateAmount(%s) error = %v, want nil", s, err)
		}
	}

	bad := []string{"1000001", "-1000001"}
	for _, s := range bad {
		d, _ := decimal.NewFromString(s)
		if err := ValidateAmount(d); err == nil {
			t.Errorf("ValidateAmount(%s) error = nil, want error", s)
		}
	}
}

func TestValidateDate(t *testing.T) {
	ok := []string{"2024-01-01", "2024-12-31", "2025-06-15"}
	for _, date := range ok {
		if err := ValidateDate(date); err != nil {
			t.Errorf("ValidateDate(%q) error = %v, want nil", date, err)
		}
	}

	bad := []string{
		"",
		"2024/01/01",
		"01-01-2024",
		"2024-1-1",
		"not-a-date",
		"2024-13-01",
		"2024-01-32",
	}
	for _, date := range bad {
		if err := ValidateDate(date); err == nil {
			t.Errorf("ValidateDate(%q) error = nil, want error", date)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	ok := []string{"driver@example.com", "a.b+c@mail.co"}
	for _, email := range ok {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) error = %v, want nil", email, err)
		}
	}

	bad := []string{"", "no-at-sign", "two@@signs.com", "@nouser.com", "nodomain@"}
	for _, email := range bad {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) error = nil, want error", email)
		}
	}
}

func TestIsStrongPassword(t *testing.T) {
	ok := []string{"Abcdefg1", "DriverPass99"}
	for _, pwd := range ok {
		if !IsStrongPassword(pwd) {
			t.Errorf("IsStrongPassword(%q) = false, want true", pwd)
		}
	}

	bad := []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"}
	for _, pwd := range bad {
		if IsStrongPassword(pwd) {
			t.Errorf("IsStrongPassword(%q) = true, want false", pwd)
		}
	}
}
