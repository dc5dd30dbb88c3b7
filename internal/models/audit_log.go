package models

import "time"

// AuditLog records one owner or booking action. Listing filters on shop,
// action and entity, newest first.
type AuditLog struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	BarbershopID uint  `gorm:"index:idx_audit_shop_created,priority:1;not null" json:"barbershop_id"`
	UserID       *uint `json:"user_id,omitempty"`

	Action   string `gorm:"size:50;not null;index" json:"action"`
	Entity   string `gorm:"size:50;index" json:"entity"`
	EntityID *uint  `json:"entity_id,omitempty"`
	Metadata string `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_audit_shop_created,priority:2" json:"created_at"`
}
