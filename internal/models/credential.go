package models

import "time"

// Platform names for API integrations that can sync orders automatically.
type Platform string

const (
	PlatformUber  Platform = "UBER"
	PlatformShipt Platform = "SHIPT"
)

func (p Platform) Valid() bool {
	return p == PlatformUber || p == PlatformShipt
}

// PlatformCredential stores OAuth tokens for a platform integration.
// Token columns hold AES-GCM ciphertext (base64), never plaintext.
type PlatformCredential struct {
	ID              uint     `gorm:"primaryKey"`
	UserID          string   `gorm:"size:64;index;not null;uniqueIndex:uq_user_platform"`
	Platform        Platform `gorm:"size:16;not null;uniqueIndex:uq_user_platform"`
	AccessTokenEnc  string   `gorm:"size:1024;not null"`
	RefreshTokenEnc string   `gorm:"size:1024"`
	TokenExpiresAt  *time.Time
	IsActive        bool `gorm:"default:true;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
