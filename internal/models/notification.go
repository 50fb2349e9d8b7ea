package models

import "time"

type Notification struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	BusinessID    uint   `gorm:"index" json:"business_id"`
	AppointmentID uint   `gorm:"index" json:"appointment_id"`
	Reference     string `gorm:"size:36" json:"reference"`

	Kind       string `gorm:"size:50;not null" json:"kind"`
	FromStatus string `gorm:"size:20" json:"from_status"`
	ToStatus   string `gorm:"size:20" json:"to_status"`
	Payload    string `gorm:"type:text" json:"payload"`

	PublishedAt *time.Time `gorm:"index" json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
