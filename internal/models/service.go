package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name            string          `gorm:"size:100;not null" json:"name"`
	Description     string          `gorm:"size:255" json:"description"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Active          bool            `gorm:"not null" json:"active"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
