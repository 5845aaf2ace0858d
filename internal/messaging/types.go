package messaging

// Type é gravado em message_history.type.
type Type string

const (
	TypeAppointmentConfirmation Type = "appointment_confirmation"
	TypeAppointmentReminder24h  Type = "appointment_reminder_24h"
	TypeBirthday                Type = "birthday"
	TypeOverdueInvoice          Type = "overdue_invoice"
	TypeRescheduleConfirmation  Type = "reschedule_confirmation"
	TypeGeneral                 Type = "general"

	// tipos usados pelas automações diárias
	TypeReminder Type = "reminder"
	TypeOverdue  Type = "overdue"
)

func (t Type) Valid() bool {
	switch t {
	case TypeAppointmentConfirmation,
		TypeAppointmentReminder24h,
		TypeBirthday,
		TypeOverdueInvoice,
		TypeRescheduleConfirmation,
		TypeGeneral,
		TypeReminder,
		TypeOverdue:
		return true
	}
	return false
}

type Status string

const (
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

const ChannelWhatsApp = "whatsapp"
