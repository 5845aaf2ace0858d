package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashSession struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	OpeningAmount decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"opening_amount"`
	ClosingAmount *decimal.Decimal `gorm:"type:decimal(12,2)" json:"closing_amount"`

	OpenedBy string     `gorm:"size:100;not null" json:"opened_by"`
	ClosedBy *string    `gorm:"size:100" json:"closed_by"`
	OpenedAt time.Time  `json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at"`

	Status string `gorm:"size:20;not null;index" json:"status"`
}

func (c *CashSession) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
