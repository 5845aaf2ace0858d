package appointment

import "github.com/BruksfildServices01/salon-manager/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusConfirmed   Status = "confirmed"
	StatusRescheduled Status = "rescheduled"
	StatusCancelled   Status = "cancelled"
	StatusCompleted   Status = "completed"
	StatusNoShow      Status = "no_show"
)

// ===============================
// Payment Status
// ===============================

type PaymentStatus string

const (
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentPaid        PaymentStatus = "paid"
	PaymentOpenAccount PaymentStatus = "open_account"
)

// Status ainda elegíveis para lembrete de 24h
var UpcomingStatuses = []Status{StatusScheduled, StatusConfirmed, StatusRescheduled}

func (s Status) IsUpcoming() bool {
	for _, u := range UpcomingStatuses {
		if s == u {
			return true
		}
	}
	return false
}

// ===============================
// Validations
// ===============================

// InitialStatus de todo agendamento criado pelo salão
func InitialStatus() Status {
	return StatusConfirmed
}

// CanReschedule: cancelado é terminal e concluído já foi atendido
func CanReschedule(current Status) error {
	if current == StatusCancelled || current == StatusCompleted {
		return httperr.ErrInvalidState(string(current))
	}
	return nil
}

func CanConfirmAttendance(current Status) error {
	if !current.IsUpcoming() {
		return httperr.ErrInvalidState(string(current))
	}
	return nil
}

func CanComplete(current Status) error {
	if current == StatusCancelled || current == StatusCompleted {
		return httperr.ErrInvalidState(string(current))
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if !current.IsUpcoming() {
		return httperr.ErrInvalidState(string(current))
	}
	return nil
}

func CanReceivePayment(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrInvalidState(string(current))
	}
	return nil
}

var statusLabels = map[Status]string{
	StatusScheduled:   "Agendado",
	StatusConfirmed:   "Confirmado",
	StatusRescheduled: "Reagendado",
	StatusCancelled:   "Cancelado",
	StatusCompleted:   "Finalizado",
	StatusNoShow:      "Não compareceu",
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}
