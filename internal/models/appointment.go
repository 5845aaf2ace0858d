package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// Referenced rows may be gone; joins are optional and rendered with fallback labels.
	ClientID uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	ServiceID uuid.UUID `gorm:"type:uuid;index" json:"service_id"`
	Service   *Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	ProfessionalID uuid.UUID     `gorm:"type:uuid;index" json:"professional_id"`
	Professional   *Professional `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status              string `gorm:"size:20;not null" json:"status"`
	AttendanceConfirmed bool   `gorm:"not null" json:"attendance_confirmed"`

	PaymentStatus string     `gorm:"size:20;not null" json:"payment_status"`
	PaymentMethod *string    `gorm:"size:20" json:"payment_method"`
	PaidAt        *time.Time `json:"paid_at"`

	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Notes string          `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
