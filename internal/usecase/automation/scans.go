package automation

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/finance"
	"github.com/BruksfildServices01/salon-manager/internal/infra/payments"
	"github.com/BruksfildServices01/salon-manager/internal/messaging"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

const overdueMinDays = 30

var reminderStatuses = []string{
	string(appointment.StatusScheduled),
	string(appointment.StatusConfirmed),
	string(appointment.StatusRescheduled),
}

// ======================================================
// LEMBRETE 24H
// ======================================================

// Reminder24h envia lembrete para atendimentos com início em [now+24h, now+25h).
func (r *Runner) Reminder24h(ctx context.Context, now time.Time) (ScanReport, error) {
	rep := ScanReport{Scan: ScanReminder}

	from := now.Add(24 * time.Hour)
	to := now.Add(25 * time.Hour)

	aps, err := r.repo.ListAppointmentsStartingBetween(ctx, from, to, reminderStatuses)
	if err != nil {
		return rep, err
	}

	day := timezone.FormatDate(now.In(r.loc))
	var errs []error

	for i := range aps {
		ap := &aps[i]
		client := clientOf(ap.Client)
		if client == nil {
			continue
		}
		rep.Matched++

		apID := ap.ID
		err := r.send(ctx, &rep, messaging.TypeReminder, ap.ID, day, messaging.Outgoing{
			Client:        client,
			AppointmentID: &apID,
			Type:          messaging.TypeReminder,
			Body:          messaging.Render(messaging.TypeReminder, messaging.TemplateData{ClientName: client.Name}),
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	return rep, errors.Join(errs...)
}

// ======================================================
// ANIVERSÁRIO
// ======================================================

// Birthday felicita clientes cujo mês/dia de nascimento é hoje (ano ignorado).
func (r *Runner) Birthday(ctx context.Context, today time.Time) (ScanReport, error) {
	rep := ScanReport{Scan: ScanBirthday}

	clients, err := r.repo.ListClientsWithBirthDate(ctx)
	if err != nil {
		return rep, err
	}

	local := today.In(r.loc)
	day := timezone.FormatDate(local)
	var errs []error

	for i := range clients {
		c := &clients[i]
		if c.BirthDate == nil {
			continue
		}
		// birth_date é coluna date; mês/dia lidos sem conversão de fuso
		if c.BirthDate.Month() != local.Month() || c.BirthDate.Day() != local.Day() {
			continue
		}
		rep.Matched++

		err := r.send(ctx, &rep, messaging.TypeBirthday, c.ID, day, messaging.Outgoing{
			Client: c,
			Type:   messaging.TypeBirthday,
			Body:   messaging.Render(messaging.TypeBirthday, messaging.TemplateData{ClientName: c.Name}),
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	return rep, errors.Join(errs...)
}

// ======================================================
// ATRASO 30 DIAS
// ======================================================

// Overdue30 cobra contas não pagas com 30 dias ou mais de atraso.
func (r *Runner) Overdue30(ctx context.Context, now time.Time) (ScanReport, error) {
	rep := ScanReport{Scan: ScanOverdue}

	recs, err := r.repo.ListUnpaidReceivablesWithClient(ctx)
	if err != nil {
		return rep, err
	}

	local := now.In(r.loc)
	day := timezone.FormatDate(local)
	var errs []error

	for i := range recs {
		rec := &recs[i]
		days := finance.OverdueDays(rec.DueDate, local)
		if days < overdueMinDays {
			continue
		}
		client := clientOf(rec.Client)
		if client == nil {
			continue
		}
		rep.Matched++

		data := messaging.TemplateData{ClientName: client.Name, OverdueDays: days}
		if r.links != nil && client.AcceptsMessages {
			link, err := r.links.CreateLink(ctx, payments.LinkRequest{
				Reference: rec.ID.String(),
				Title:     rec.Description,
				Amount:    rec.Amount,
			})
			if err != nil {
				log.Println("automation payment link error:", err)
			}
			data.PaymentLink = link
		}

		err := r.send(ctx, &rep, messaging.TypeOverdue, rec.ID, day, messaging.Outgoing{
			Client: client,
			Type:   messaging.TypeOverdue,
			Body:   messaging.Render(messaging.TypeOverdue, data),
		})
		if err != nil {
			errs = append(errs, err)
		}
	}

	return rep, errors.Join(errs...)
}
