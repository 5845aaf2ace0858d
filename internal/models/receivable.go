package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receivable é uma conta a receber. O estado "overdue" nunca é gravado:
// é derivado de status pending + due_date no passado.
type Receivable struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id"`
	ClientID      *uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	Client        *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	ClientName  string `gorm:"size:100" json:"client_name"`
	ServiceName string `gorm:"size:100" json:"service_name"`
	Description string `gorm:"size:255" json:"description"`

	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	ServiceDate *time.Time      `gorm:"type:date" json:"service_date"`
	DueDate     time.Time       `gorm:"type:date;not null" json:"due_date"`

	Status        string     `gorm:"size:20;not null;index" json:"status"`
	PaymentMethod *string    `gorm:"size:20" json:"payment_method"`
	PaidAt        *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Receivable) TableName() string {
	return "financial_receivables"
}

func (r *Receivable) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
