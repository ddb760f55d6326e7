package models

import "time"

// DriverProfile holds the gamification counters for one user: lifetime
// points, the current daily streak and the last day the app was used.
type DriverProfile struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       string    `gorm:"size:64;uniqueIndex;not null"`
	TotalPoints  int       `gorm:"default:0;not null"`
	DailyStreak  int       `gorm:"default:0;not null"`
	LastUsedDate string    `gorm:"size:10"` // YYYY-MM-DD in the reference timezone
	SignupDate   time.Time `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

// DailyCheckIn records one check-in per user per day so the daily bonus
// cannot be claimed twice.
type DailyCheckIn struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       string `gorm:"size:64;index;not null;uniqueIndex:uq_user_checkin_date"`
	UsageDate    string `gorm:"size:10;not null;uniqueIndex:uq_user_checkin_date"`
	PointsEarned int    `gorm:"default:10;not null"`

	CreatedAt time.Time
}
