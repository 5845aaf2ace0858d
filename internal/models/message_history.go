package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Único registro durável de tentativas de envio (sent / failed / skipped).
type MessageHistory struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID      uuid.UUID  `gorm:"type:uuid;index" json:"client_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid" json:"appointment_id"`

	Type    string `gorm:"size:40;not null" json:"type"`
	Channel string `gorm:"size:20;not null" json:"channel"`
	Content string `gorm:"type:text" json:"content"`
	Status  string `gorm:"size:20;not null" json:"status"`

	Provider   string            `gorm:"size:40" json:"provider"`
	ExternalID string            `gorm:"size:100" json:"external_id"`
	Error      string            `gorm:"type:text" json:"error"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`

	SentAt time.Time `gorm:"index" json:"sent_at"`
}

func (MessageHistory) TableName() string {
	return "message_history"
}

func (m *MessageHistory) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
