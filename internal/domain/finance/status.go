package finance

import "time"

// Status gravado de contas a receber / pagar. "overdue" é apenas exibição.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// DisplayStatus deriva paid / pending / overdue sem nunca persistir o atraso.
func DisplayStatus(status string, dueDate time.Time, asOf time.Time) Status {
	if status == string(StatusPaid) {
		return StatusPaid
	}
	if IsOverdue(status, dueDate, asOf) {
		return StatusOverdue
	}
	return StatusPending
}

func IsOverdue(status string, dueDate time.Time, asOf time.Time) bool {
	if status == string(StatusPaid) || dueDate.IsZero() {
		return false
	}
	return civil(dueDate).Before(civil(asOf))
}
