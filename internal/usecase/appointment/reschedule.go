package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/messaging"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

type RescheduleAppointmentInput struct {
	AppointmentID  uuid.UUID
	Date           string
	Time           string
	ProfessionalID *uuid.UUID
}

type RescheduleAppointment struct {
	repo      domain.Repository
	audit     *audit.Dispatcher
	messenger *messaging.Messenger
	clock
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	messenger *messaging.Messenger,
	loc *time.Location,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:      repo,
		audit:     audit,
		messenger: messenger,
		clock:     newClock(loc),
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	if in.Date == "" {
		return nil, httperr.ErrValidation("missing_field", "date")
	}
	if in.Time == "" {
		return nil, httperr.ErrValidation("missing_field", "time")
	}

	start, err := timezone.ParseDateTime(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time", "date")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	if in.ProfessionalID != nil && *in.ProfessionalID != uuid.Nil {
		prof, err := uc.repo.GetProfessional(ctx, *in.ProfessionalID)
		if err != nil {
			return nil, err
		}
		ap.Professional = prof
	}

	// serviço removido: mantém a duração anterior
	duration := int(ap.EndTime.Sub(ap.StartTime) / time.Minute)
	if ap.Service != nil {
		duration = ap.Service.DurationMinutes
	}

	previous := ap.StartTime

	if err := domain.Reschedule(ap, start, duration, in.ProfessionalID); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from": previous,
			"to":   ap.StartTime,
		},
	})

	notifyClient(ctx, uc.messenger, ap, ap.Client, ap.Service, ap.Professional,
		messaging.TypeRescheduleConfirmation, uc.clock)

	return ap, nil
}
