package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	BarbershopID uint        `gorm:"not null;uniqueIndex:idx_appointment_slot,where:status = 'pending'" json:"barbershop_id"`
	Barbershop   *Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClientID uint    `gorm:"index;not null" json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client,omitempty"`

	// Cleared when the service is deleted; the captured price survives.
	ServiceID *uint    `gorm:"index" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	Date      string `gorm:"size:10;not null;uniqueIndex:idx_appointment_slot,where:status = 'pending'" json:"date"`
	StartTime string `gorm:"size:5;not null;uniqueIndex:idx_appointment_slot,where:status = 'pending'" json:"start_time"`

	Status     string          `gorm:"size:20;not null;default:'pending';index" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
