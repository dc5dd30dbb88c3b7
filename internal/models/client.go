package models

import "time"

// Client is an end customer. Created on first booking and matched by phone
// afterwards; phone is stored in E.164 and is unique across the system.
type Client struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	BarbershopID uint        `gorm:"index;not null" json:"barbershop_id"`
	Barbershop   *Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Phone    *string `gorm:"size:20;uniqueIndex" json:"phone"`
	Nickname string  `gorm:"size:50" json:"nickname"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
