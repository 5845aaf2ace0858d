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

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID       uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	audit     *audit.Dispatcher
	messenger *messaging.Messenger
	clock
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	messenger *messaging.Messenger,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		audit:     audit,
		messenger: messenger,
		clock:     newClock(loc),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Campos obrigatórios
	// --------------------------------------------------
	switch {
	case in.ClientID == uuid.Nil:
		return nil, httperr.ErrValidation("missing_field", "client_id")
	case in.ServiceID == uuid.Nil:
		return nil, httperr.ErrValidation("missing_field", "service_id")
	case in.ProfessionalID == uuid.Nil:
		return nil, httperr.ErrValidation("missing_field", "professional_id")
	case in.Date == "":
		return nil, httperr.ErrValidation("missing_field", "date")
	case in.Time == "":
		return nil, httperr.ErrValidation("missing_field", "time")
	}

	count, err := uc.repo.CountProfessionals(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, httperr.ErrValidation("no_professionals", "professional_id")
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no fuso do salão
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time", "date")
	}

	// --------------------------------------------------
	// 3️⃣ Referências
	// --------------------------------------------------
	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	professional, err := uc.repo.GetProfessional(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Criação (status / preço centralizados no domínio)
	// --------------------------------------------------
	ap := domain.New(client, service, professional.ID, start)
	ap.Notes = in.Notes

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	ap.Client = client
	ap.Service = service
	ap.Professional = professional

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	// --------------------------------------------------
	// 6️⃣ Confirmação ao cliente (falha não desfaz o insert)
	// --------------------------------------------------
	notifyClient(ctx, uc.messenger, ap, client, service, professional,
		messaging.TypeAppointmentConfirmation, uc.clock)

	return ap, nil
}
