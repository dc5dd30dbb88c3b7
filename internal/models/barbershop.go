package models

import "time"

type Barbershop struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Name             string `gorm:"size:100;not null" json:"name"`
	Slug             string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	SubscriptionPlan string `gorm:"size:50;default:'free'" json:"subscription_plan"`

	Timezone        string `gorm:"size:64" json:"timezone"`
	OpensAt         string `gorm:"size:5" json:"opens_at"`
	ClosesAt        string `gorm:"size:5" json:"closes_at"`
	SlotStepMinutes int    `json:"slot_step_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
