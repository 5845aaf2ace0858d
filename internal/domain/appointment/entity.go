package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func New(
	client *models.Client,
	service *models.Service,
	professionalID uuid.UUID,
	start time.Time,
) *models.Appointment {
	return &models.Appointment{
		ClientID:            client.ID,
		ServiceID:           service.ID,
		ProfessionalID:      professionalID,
		StartTime:           start,
		EndTime:             EndTime(start, service.DurationMinutes),
		Status:              string(InitialStatus()),
		AttendanceConfirmed: false,
		PaymentStatus:       string(PaymentUnpaid),
		Price:               service.Price,
	}
}

func EndTime(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

func Reschedule(
	ap *models.Appointment,
	start time.Time,
	durationMinutes int,
	professionalID *uuid.UUID,
) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.StartTime = start
	ap.EndTime = EndTime(start, durationMinutes)
	if professionalID != nil && *professionalID != uuid.Nil {
		ap.ProfessionalID = *professionalID
	}
	ap.Status = string(StatusRescheduled)
	return nil
}

func ConfirmAttendance(ap *models.Appointment) error {
	if err := CanConfirmAttendance(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.AttendanceConfirmed = true
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.AttendanceConfirmed = true
	return nil
}

// Cancel é incondicional; depois dele nenhuma transição é válida.
func Cancel(ap *models.Appointment) {
	ap.Status = string(StatusCancelled)
}

func MarkNoShow(ap *models.Appointment) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}
