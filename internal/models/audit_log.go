package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uuid.UUID `gorm:"type:uuid" json:"user_id"`
	Action string     `gorm:"size:50;not null" json:"action"`

	Entity   string            `gorm:"size:50" json:"entity"`
	EntityID *uuid.UUID        `gorm:"type:uuid" json:"entity_id"`
	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
