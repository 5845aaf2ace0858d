package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

type Mode string

const (
	ModeDay   Mode = "day"
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"

	topServicesLimit = 5
)

var hundred = decimal.NewFromInt(100)

type ProfessionalReport struct {
	ProfessionalID uuid.UUID       `json:"professional_id"`
	Name           string          `json:"name"`
	Appointments   int             `json:"appointments"`
	Revenue        decimal.Decimal `json:"revenue"`
	Commission     decimal.Decimal `json:"commission"`
}

type ServiceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type PeriodReport struct {
	Mode Mode   `json:"mode"`
	From string `json:"from"`
	To   string `json:"to"`

	TotalAppointments int             `json:"total_appointments"`
	Revenue           decimal.Decimal `json:"revenue"`

	Professionals []ProfessionalReport `json:"professionals"`
	TopServices   []ServiceCount       `json:"top_services"`
	PerDay        []DayCount           `json:"per_day"`
}

type GetPeriodReport struct {
	repo Repository
	clock
}

func NewGetPeriodReport(repo Repository, loc *time.Location) *GetPeriodReport {
	return &GetPeriodReport{repo: repo, clock: newClock(loc)}
}

// Period devolve [from, to) do filtro dia/mês/ano em volta de base.
func Period(mode Mode, base time.Time) (time.Time, time.Time, error) {
	switch mode {
	case ModeDay:
		from := timezone.DateOnly(base)
		return from, from.AddDate(0, 0, 1), nil
	case ModeMonth, "":
		from := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location())
		return from, from.AddDate(0, 1, 0), nil
	case ModeYear:
		from := time.Date(base.Year(), 1, 1, 0, 0, 0, 0, base.Location())
		return from, from.AddDate(1, 0, 0), nil
	}
	return time.Time{}, time.Time{}, httperr.ErrValidation("invalid_mode", "mode")
}

// Execute aceita date vazio como hoje.
func (uc *GetPeriodReport) Execute(ctx context.Context, mode Mode, date string) (*PeriodReport, error) {
	if mode == "" {
		mode = ModeMonth
	}
	base := uc.Now()
	if date != "" {
		var err error
		base, err = timezone.ParseDate(date, uc.loc)
		if err != nil {
			return nil, httperr.ErrValidation("invalid_date_or_time", "date")
		}
	}

	from, to, err := Period(mode, base)
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = ModeMonth
	}

	var (
		aps  []models.Appointment
		recs []models.Receivable
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		aps, err = uc.repo.ListAppointmentsBetween(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		recs, err = uc.repo.ListReceivablesDueBetween(gctx, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := buildPeriodReport(aps, recs, uc.loc)
	out.Mode = mode
	out.From = timezone.FormatDate(from)
	out.To = timezone.FormatDate(to.AddDate(0, 0, -1))
	return out, nil
}

func buildPeriodReport(aps []models.Appointment, recs []models.Receivable, loc *time.Location) *PeriodReport {
	out := &PeriodReport{
		TotalAppointments: len(aps),
		Revenue:           decimal.Zero,
		Professionals:     []ProfessionalReport{},
		TopServices:       []ServiceCount{},
		PerDay:            []DayCount{},
	}

	for _, r := range recs {
		out.Revenue = out.Revenue.Add(r.Amount)
	}

	profs := map[uuid.UUID]*ProfessionalReport{}
	services := map[string]int{}
	days := map[string]int{}

	for _, ap := range aps {
		services[dto.ServiceName(ap.Service)]++
		days[timezone.FormatDate(ap.StartTime.In(loc))]++

		// profissional removido não entra no relatório
		if ap.Professional == nil {
			continue
		}
		p, ok := profs[ap.ProfessionalID]
		if !ok {
			p = &ProfessionalReport{
				ProfessionalID: ap.ProfessionalID,
				Name:           ap.Professional.Name,
				Revenue:        decimal.Zero,
				Commission:     decimal.Zero,
			}
			profs[ap.ProfessionalID] = p
		}
		p.Appointments++

		if ap.Status == string(appointment.StatusCompleted) {
			p.Revenue = p.Revenue.Add(ap.Price)
			p.Commission = p.Commission.Add(ap.Price.Mul(ap.Professional.CommissionPercent).Div(hundred))
		}
	}

	for _, p := range profs {
		p.Commission = p.Commission.Round(2)
		out.Professionals = append(out.Professionals, *p)
	}
	sort.Slice(out.Professionals, func(i, j int) bool {
		a, b := out.Professionals[i], out.Professionals[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.Name < b.Name
	})

	for name, count := range services {
		out.TopServices = append(out.TopServices, ServiceCount{Name: name, Count: count})
	}
	sort.Slice(out.TopServices, func(i, j int) bool {
		if out.TopServices[i].Count != out.TopServices[j].Count {
			return out.TopServices[i].Count > out.TopServices[j].Count
		}
		return out.TopServices[i].Name < out.TopServices[j].Name
	})
	if len(out.TopServices) > topServicesLimit {
		out.TopServices = out.TopServices[:topServicesLimit]
	}

	for d, count := range days {
		out.PerDay = append(out.PerDay, DayCount{Date: d, Count: count})
	}
	sort.Slice(out.PerDay, func(i, j int) bool { return out.PerDay[i].Date < out.PerDay[j].Date })

	return out
}
