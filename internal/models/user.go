package models

import "time"

// User represents a driver account. IDs are opaque strings (UUIDs) so that
// tokens issued elsewhere can carry the same subject.
type User struct {
	ID              string `gorm:"primaryKey;size:64"`
	Email           string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash    string `gorm:"size:255;not null"`
	FirstName       string `gorm:"size:64"`
	LastName        string `gorm:"size:64"`
	ProfileImageURL string `gorm:"size:512"`

	FailedLoginAttempts int        `gorm:"default:0"`
	LockedUntil         *time.Time `gorm:"index"`
	LastLoginAt         *time.Time
	LastLoginIP         string `gorm:"size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
