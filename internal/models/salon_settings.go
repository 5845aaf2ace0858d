package models

import "time"

// Configuração de marca do salão (linha única, ID = 1)
type SalonSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonName     string `gorm:"size:100;not null" json:"salon_name"`
	ShowSalonName bool   `gorm:"not null" json:"show_salon_name"`
	LogoText      string `gorm:"size:10" json:"logo_text"`
	LogoURL       string `gorm:"size:255" json:"logo_url"`
	LogoSizePx    int    `gorm:"not null" json:"logo_size_px"`

	TextColor       string `gorm:"size:10" json:"text_color"`
	BackgroundColor string `gorm:"size:10" json:"background_color"`
	ButtonColor     string `gorm:"size:10" json:"button_color"`

	UpdatedAt time.Time `json:"updated_at"`
}

const SalonSettingsID = 1

func DefaultSalonSettings() SalonSettings {
	return SalonSettings{
		ID:              SalonSettingsID,
		SalonName:       "Salão Danny Miranda",
		ShowSalonName:   true,
		LogoText:        "SD",
		LogoSizePx:      56,
		TextColor:       "#f5f5f5",
		BackgroundColor: "#1f1a1c",
		ButtonColor:     "#d94678",
	}
}
