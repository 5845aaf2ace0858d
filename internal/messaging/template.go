package messaging

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04"
)

type TemplateData struct {
	ClientName   string
	Date         string
	Time         string
	Service      string
	Professional string
	OverdueDays  int
	PaymentLink  string
	Content      string
}

func Render(t Type, d TemplateData) string {
	var msg string

	switch t {
	case TypeAppointmentConfirmation:
		msg = fmt.Sprintf(
			"Olá %s! ✅ Seu agendamento foi confirmado para %s às %s. Serviço: %s. Profissional: %s. Qualquer dúvida, entre em contato!",
			d.ClientName, d.Date, d.Time, d.Service, d.Professional,
		)
	case TypeAppointmentReminder24h:
		msg = fmt.Sprintf(
			"Olá %s! ⏰ Lembrete: amanhã você tem um agendamento às %s. Serviço: %s. Te esperamos!",
			d.ClientName, d.Time, d.Service,
		)
	case TypeOverdueInvoice:
		msg = fmt.Sprintf(
			"Olá %s, notamos que há uma pendência financeira em aberto há mais de 30 dias. Por favor, entre em contato para regularizar. Obrigado! 💳",
			d.ClientName,
		)
	case TypeRescheduleConfirmation:
		msg = fmt.Sprintf(
			"Olá %s! 📅 Seu agendamento foi remarcado para %s às %s. Serviço: %s. Qualquer dúvida, entre em contato!",
			d.ClientName, d.Date, d.Time, d.Service,
		)
	case TypeReminder:
		msg = fmt.Sprintf("Olá %s! Lembrete: você tem atendimento em 24h.", d.ClientName)
	case TypeBirthday:
		msg = fmt.Sprintf("Parabéns, %s! 🎉 Equipe do salão deseja um dia incrível para você.", d.ClientName)
	case TypeOverdue:
		msg = fmt.Sprintf(
			"Olá %s, identificamos uma conta em aberto há %d dias. Podemos te ajudar com a regularização?",
			d.ClientName, d.OverdueDays,
		)
	default:
		msg = d.Content
	}

	if d.PaymentLink != "" && (t == TypeOverdue || t == TypeOverdueInvoice) {
		msg += " Pague por aqui: " + d.PaymentLink
	}
	return msg
}

const minPhoneDigits = 10

// NormalizePhone mantém apenas dígitos; menos de 10 dígitos é inválido.
func NormalizePhone(phone string) (string, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)

	return digits, len(digits) >= minPhoneDigits
}
