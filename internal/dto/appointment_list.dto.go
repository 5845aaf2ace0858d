package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/payment"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// Rótulos usados quando a referência foi apagada.
const (
	FallbackClient       = "Cliente"
	FallbackService      = "Serviço"
	FallbackProfessional = "Profissional"
)

type AppointmentListDTO struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status              string `json:"status"`
	StatusLabel         string `json:"status_label"`
	AttendanceConfirmed bool   `json:"attendance_confirmed"`

	ClientID         uuid.UUID `json:"client_id"`
	ClientName       string    `json:"client_name"`
	ClientPhone      string    `json:"client_phone"`
	ServiceName      string    `json:"service_name"`
	ProfessionalID   uuid.UUID `json:"professional_id"`
	ProfessionalName string    `json:"professional_name"`

	Price              decimal.Decimal `json:"price"`
	PaymentStatus      string          `json:"payment_status"`
	PaymentMethod      *string         `json:"payment_method"`
	PaymentMethodLabel string          `json:"payment_method_label"`
	PaidAt             *time.Time      `json:"paid_at"`
	Notes              string          `json:"notes"`
}

func ClientName(c *models.Client) string {
	if c == nil || c.Name == "" {
		return FallbackClient
	}
	return c.Name
}

func ServiceName(s *models.Service) string {
	if s == nil || s.Name == "" {
		return FallbackService
	}
	return s.Name
}

func ProfessionalName(p *models.Professional) string {
	if p == nil || p.Name == "" {
		return FallbackProfessional
	}
	return p.Name
}

func NewAppointmentListDTO(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:                  ap.ID,
		StartTime:           ap.StartTime,
		EndTime:             ap.EndTime,
		Status:              ap.Status,
		StatusLabel:         domain.Status(ap.Status).Label(),
		AttendanceConfirmed: ap.AttendanceConfirmed,
		ClientID:            ap.ClientID,
		ClientName:          ClientName(ap.Client),
		ServiceName:         ServiceName(ap.Service),
		ProfessionalID:      ap.ProfessionalID,
		ProfessionalName:    ProfessionalName(ap.Professional),
		Price:               ap.Price,
		PaymentStatus:       ap.PaymentStatus,
		PaymentMethod:       ap.PaymentMethod,
		PaidAt:              ap.PaidAt,
		Notes:               ap.Notes,
	}

	if ap.Client != nil {
		out.ClientPhone = ap.Client.Phone
	}
	if ap.PaymentMethod != nil {
		out.PaymentMethodLabel = payment.Label(*ap.PaymentMethod)
	}

	return out
}

func NewAppointmentList(apps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, NewAppointmentListDTO(ap))
	}
	return out
}
