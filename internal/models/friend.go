package models

import "time"

// Friend links two users for the leaderboard. Status is "pending" until the
// other side accepts.
type Friend struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   string `gorm:"size:64;index;not null;uniqueIndex:uq_user_friend"`
	FriendID string `gorm:"size:64;index;not null;uniqueIndex:uq_user_friend"`
	Status   string `gorm:"size:16;default:pending;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
