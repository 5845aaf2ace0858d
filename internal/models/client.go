package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente do salão; o ano de BirthDate é ignorado nas automações
type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name      string     `gorm:"size:100;not null" json:"name"`
	Phone     string     `gorm:"size:20" json:"phone"`
	Email     string     `gorm:"size:100" json:"email"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date"`
	Notes     string     `gorm:"type:text" json:"notes"`

	AcceptsMessages bool `gorm:"not null" json:"accepts_messages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
