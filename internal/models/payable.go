package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payable struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Description string          `gorm:"size:255;not null" json:"description"`
	Category    string          `gorm:"size:50" json:"category"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	DueDate     time.Time       `gorm:"type:date;not null" json:"due_date"`
	Status      string          `gorm:"size:20;not null" json:"status"`
	PaidAt      *time.Time      `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Payable) TableName() string {
	return "financial_payables"
}

func (p *Payable) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
