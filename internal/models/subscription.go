package models

import "time"

type Subscription struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"uniqueIndex" json:"business_id"`

	Provider         string     `gorm:"size:20" json:"provider"`
	CustomerRef      string     `gorm:"size:100" json:"customer_ref"`
	SubscriptionRef  string     `gorm:"size:100" json:"subscription_ref"`
	Plan             string     `gorm:"size:20" json:"plan"`
	Status           string     `gorm:"size:20" json:"status"`
	CurrentPeriodEnd *time.Time `json:"current_period_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentEvent records every processed webhook so replays are ignored.
type PaymentEvent struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Provider string `gorm:"size:20;uniqueIndex:idx_payment_events_provider_event" json:"provider"`
	EventID  string `gorm:"size:100;uniqueIndex:idx_payment_events_provider_event" json:"event_id"`
	Type     string `gorm:"size:100" json:"type"`
	Payload  string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
