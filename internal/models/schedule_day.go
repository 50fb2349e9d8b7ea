package models

import "time"

// ScheduleDay is one weekday of a weekly schedule. EmployeeID nil means the
// row belongs to the business schedule.
type ScheduleDay struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	BusinessID uint  `gorm:"index" json:"business_id"`
	EmployeeID *uint `gorm:"index" json:"employee_id"`

	Day     string `gorm:"size:10;not null" json:"day"`
	Enabled bool   `json:"enabled"`
	Start   string `gorm:"size:5" json:"start"`
	End     string `gorm:"size:5" json:"end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
