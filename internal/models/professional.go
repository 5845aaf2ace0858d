package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Professional struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	Specialties       pq.StringArray  `gorm:"type:text[]" json:"specialties"`
	CommissionPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"commission_percent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
