package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/domain/finance"
	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

const busyDayThreshold = 10

type Alert struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tone        string `json:"tone"`
}

type BirthdayClient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Dashboard struct {
	Date              string                   `json:"date"`
	MonthlyRevenue    decimal.Decimal          `json:"monthly_revenue"`
	OverdueCount      int                      `json:"overdue_count"`
	AppointmentsToday []dto.AppointmentListDTO `json:"appointments_today"`
	BirthdaysToday    []BirthdayClient         `json:"birthdays_today"`
	TopProfessional   string                   `json:"top_professional"`
	Alerts            []Alert                  `json:"alerts"`
}

type GetDashboard struct {
	repo Repository
	clock
}

func NewGetDashboard(repo Repository, loc *time.Location) *GetDashboard {
	return &GetDashboard{repo: repo, clock: newClock(loc)}
}

func (uc *GetDashboard) Execute(ctx context.Context) (*Dashboard, error) {
	now := uc.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)

	var (
		monthAps    []models.Appointment
		receivables []models.Receivable
		clients     []models.Client
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		monthAps, err = uc.repo.ListAppointmentsBetween(gctx, monthStart, monthStart.AddDate(0, 1, 0))
		return err
	})
	g.Go(func() error {
		var err error
		receivables, err = uc.repo.ListReceivables(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = uc.repo.ListClientsWithBirthDate(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return buildDashboard(now, monthAps, receivables, clients), nil
}

func buildDashboard(
	now time.Time,
	monthAps []models.Appointment,
	receivables []models.Receivable,
	clients []models.Client,
) *Dashboard {

	out := &Dashboard{
		Date:              timezone.FormatDate(now),
		MonthlyRevenue:    decimal.Zero,
		AppointmentsToday: []dto.AppointmentListDTO{},
		BirthdaysToday:    []BirthdayClient{},
		TopProfessional:   "-",
		Alerts:            []Alert{},
	}

	// agenda do dia e profissional destaque do mês
	today := timezone.FormatDate(now)
	var todays []models.Appointment
	revenueByProf := map[string]decimal.Decimal{}

	for _, ap := range monthAps {
		if timezone.FormatDate(ap.StartTime.In(now.Location())) == today {
			todays = append(todays, ap)
		}
		if ap.Status == string(appointment.StatusCompleted) {
			name := dto.ProfessionalName(ap.Professional)
			revenueByProf[name] = revenueByProf[name].Add(ap.Price)
		}
	}
	sort.Slice(todays, func(i, j int) bool { return todays[i].StartTime.Before(todays[j].StartTime) })
	out.AppointmentsToday = dto.NewAppointmentList(todays)

	best := decimal.Zero
	for name, total := range revenueByProf {
		if total.GreaterThan(best) || (total.Equal(best) && out.TopProfessional != "-" && name < out.TopProfessional) {
			best = total
			out.TopProfessional = name
		}
	}

	for _, c := range clients {
		if c.BirthDate == nil {
			continue
		}
		if c.BirthDate.Month() == now.Month() && c.BirthDate.Day() == now.Day() {
			out.BirthdaysToday = append(out.BirthdaysToday, BirthdayClient{
				ID:    c.ID.String(),
				Name:  c.Name,
				Phone: c.Phone,
			})
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for _, r := range receivables {
		if r.Status != string(finance.StatusPaid) {
			continue
		}
		paidAt := r.CreatedAt
		if r.PaidAt != nil {
			paidAt = *r.PaidAt
		}
		if !paidAt.Before(monthStart) {
			out.MonthlyRevenue = out.MonthlyRevenue.Add(r.Amount)
		}
	}
	out.OverdueCount = len(finance.ComputeOverdue(receivables, now).Receivables)

	out.Alerts = buildAlerts(out.OverdueCount, len(out.BirthdaysToday), len(out.AppointmentsToday))
	return out
}

func buildAlerts(overdue, birthdays, appointmentsToday int) []Alert {
	alerts := []Alert{}

	if overdue > 0 {
		alerts = append(alerts, Alert{
			ID:          "overdue",
			Title:       "Contas em atraso",
			Description: fmt.Sprintf("%d contas estão vencidas e precisam de atenção.", overdue),
			Tone:        "danger",
		})
	}

	if birthdays > 0 {
		alerts = append(alerts, Alert{
			ID:          "birthday",
			Title:       "Aniversariantes",
			Description: fmt.Sprintf("Hoje existem %d clientes aniversariantes.", birthdays),
			Tone:        "info",
		})
	}

	if appointmentsToday > busyDayThreshold {
		alerts = append(alerts, Alert{
			ID:          "busy-day",
			Title:       "Agenda intensa",
			Description: fmt.Sprintf("Você tem %d agendamentos para hoje.", appointmentsToday),
			Tone:        "warning",
		})
	}

	return alerts
}
