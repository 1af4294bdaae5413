package models

import "time"

// UserDevice is a registered push endpoint for one device. UserID is the
// identity provider uid, not a local row id.
type UserDevice struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      string `gorm:"size:64;index"`
	Platform    string `gorm:"size:16"` // "android" | "ios"
	TokenHash   string `gorm:"size:64"`
	EndpointARN string `gorm:"size:256"`
	Enabled     bool   `gorm:"default:true"`
	UpdatedAt   time.Time
	CreatedAt   time.Time
}
