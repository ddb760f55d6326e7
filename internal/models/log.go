package models

import "time"

// AuditLog records authenticated mutating requests for the activity view.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;index"`
	Method    string `gorm:"size:16"`
	Path      string `gorm:"size:255"`
	Status    int
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`

	CreatedAt time.Time
}
