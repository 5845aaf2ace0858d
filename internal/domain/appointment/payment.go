package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/domain/finance"
	"github.com/BruksfildServices01/salon-manager/internal/domain/payment"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

type PaymentInput struct {
	Method       payment.Method
	ExpectedDate *time.Time
	ClientName   string
	ServiceName  string
	Now          time.Time
}

// PostPayment aplica o recebimento ao agendamento e devolve a conta a receber
// correspondente: a existente (mesmo appointment_id) atualizada, ou uma nova.
func PostPayment(
	ap *models.Appointment,
	existing *models.Receivable,
	in PaymentInput,
) (*models.Receivable, error) {

	if err := CanReceivePayment(Status(ap.Status)); err != nil {
		return nil, err
	}

	if !payment.Valid(string(in.Method)) {
		return nil, httperr.ErrValidation("invalid_payment_method", "method")
	}

	rec := existing
	if rec == nil {
		rec = &models.Receivable{}
	}

	apID := ap.ID
	clientID := ap.ClientID
	serviceDate := timezone.DateOnly(ap.StartTime)
	method := string(in.Method)

	rec.AppointmentID = &apID
	rec.ClientID = &clientID
	rec.ClientName = in.ClientName
	rec.ServiceName = in.ServiceName
	rec.Description = fmt.Sprintf("%s - %s", in.ServiceName, in.ClientName)
	rec.Amount = ap.Price
	rec.ServiceDate = &serviceDate
	rec.PaymentMethod = &method

	if in.Method.IsOpenAccount() {
		if in.ExpectedDate == nil {
			return nil, httperr.ErrValidation("missing_expected_date", "expected_date")
		}

		due := timezone.DateOnly(*in.ExpectedDate)
		if !due.After(timezone.DateOnly(in.Now)) {
			return nil, httperr.ErrValidation("invalid_expected_date", "expected_date")
		}

		rec.DueDate = due
		rec.Status = string(finance.StatusPending)
		rec.PaidAt = nil

		ap.PaymentStatus = string(PaymentOpenAccount)
		ap.PaidAt = nil
	} else {
		paidAt := in.Now

		rec.DueDate = serviceDate
		rec.Status = string(finance.StatusPaid)
		rec.PaidAt = &paidAt

		ap.PaymentStatus = string(PaymentPaid)
		ap.PaidAt = &paidAt
	}

	ap.PaymentMethod = &method
	ap.Status = string(StatusCompleted)
	ap.AttendanceConfirmed = true

	return rec, nil
}
