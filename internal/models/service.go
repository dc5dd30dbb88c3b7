package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a bookable offering of one shop.
type Service struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	BarbershopID uint        `gorm:"index;not null" json:"barbershop_id"`
	Barbershop   *Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name            string          `gorm:"size:100;not null" json:"name"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
