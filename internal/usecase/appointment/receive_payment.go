package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/payment"
	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

type ReceivePaymentInput struct {
	AppointmentID uuid.UUID
	Method        string
	// ExpectedDate (YYYY-MM-DD) é obrigatória para "account".
	ExpectedDate string
}

type ReceivePaymentResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Receivable  *models.Receivable  `json:"receivable"`
}

type ReceivePayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock
}

func NewReceivePayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
) *ReceivePayment {
	return &ReceivePayment{
		repo:  repo,
		audit: audit,
		clock: newClock(loc),
	}
}

// Execute grava conta a receber e agendamento na mesma transação.
func (uc *ReceivePayment) Execute(
	ctx context.Context,
	in ReceivePaymentInput,
) (*ReceivePaymentResult, error) {

	if in.Method == "" {
		return nil, httperr.ErrValidation("missing_field", "method")
	}
	if !payment.Valid(in.Method) {
		return nil, httperr.ErrValidation("invalid_payment_method", "method")
	}

	var expected *time.Time
	if in.ExpectedDate != "" {
		d, err := timezone.ParseDate(in.ExpectedDate, uc.loc)
		if err != nil {
			return nil, httperr.ErrValidation("invalid_date_or_time", "expected_date")
		}
		expected = &d
	}

	now := uc.Now()
	var result ReceivePaymentResult

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		ap, err := tx.GetAppointment(ctx, in.AppointmentID)
		if err != nil {
			return err
		}

		existing, err := tx.FindReceivableByAppointment(ctx, ap.ID)
		if err != nil {
			return err
		}

		rec, err := domain.PostPayment(ap, existing, domain.PaymentInput{
			Method:       payment.Method(in.Method),
			ExpectedDate: expected,
			ClientName:   dto.ClientName(ap.Client),
			ServiceName:  dto.ServiceName(ap.Service),
			Now:          now,
		})
		if err != nil {
			return err
		}

		if err := tx.SaveReceivable(ctx, rec); err != nil {
			return err
		}

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			return err
		}

		result.Appointment = ap
		result.Receivable = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "appointment_payment_received",
		Entity:   "appointment",
		EntityID: &result.Appointment.ID,
		Metadata: map[string]any{
			"method":         in.Method,
			"payment_status": result.Appointment.PaymentStatus,
			"receivable_id":  result.Receivable.ID.String(),
		},
	})

	return &result, nil
}
