package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// ======================================================
// TRANSIÇÕES SIMPLES DE STATUS
// ======================================================
// Confirmar, concluir, cancelar e faltou: carregar, aplicar a regra de
// domínio, gravar e auditar. Pagamento e reagendamento têm use case próprio.

type transition struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	action string
	apply  func(ap *models.Appointment) error
}

func (t transition) Execute(
	ctx context.Context,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := t.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	from := ap.Status

	if err := t.apply(ap); err != nil {
		return nil, err
	}

	if err := t.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	t.audit.Dispatch(ctx, audit.Event{
		Action:   t.action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"from": from, "to": ap.Status},
	})

	return ap, nil
}

type ConfirmAttendance struct{ transition }

func NewConfirmAttendance(repo domain.Repository, audit *audit.Dispatcher) *ConfirmAttendance {
	return &ConfirmAttendance{transition{repo, audit, "appointment_attendance_confirmed", domain.ConfirmAttendance}}
}

type CompleteAppointment struct{ transition }

func NewCompleteAppointment(repo domain.Repository, audit *audit.Dispatcher) *CompleteAppointment {
	return &CompleteAppointment{transition{repo, audit, "appointment_completed", domain.Complete}}
}

// CancelAppointment: cancelado é terminal, mas cancelar de novo não é erro.
type CancelAppointment struct{ transition }

func NewCancelAppointment(repo domain.Repository, audit *audit.Dispatcher) *CancelAppointment {
	cancel := func(ap *models.Appointment) error {
		domain.Cancel(ap)
		return nil
	}
	return &CancelAppointment{transition{repo, audit, "appointment_cancelled", cancel}}
}

type MarkNoShow struct{ transition }

func NewMarkNoShow(repo domain.Repository, audit *audit.Dispatcher) *MarkNoShow {
	return &MarkNoShow{transition{repo, audit, "appointment_no_show", domain.MarkNoShow}}
}
