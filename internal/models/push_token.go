package models

import "time"

type PushToken struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	BusinessID uint   `gorm:"index" json:"business_id"`
	UserID     uint   `gorm:"index" json:"user_id"`
	Token      string `gorm:"size:255;uniqueIndex;not null" json:"token"`
	Platform   string `gorm:"size:20" json:"platform"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
