package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

// ======================================================
// LISTAGENS (agenda do dia e calendário do mês)
// ======================================================

type lister struct {
	repo domain.Repository
	clock
}

// period devolve [start, end) já convertido para DTO com rótulos de fallback.
func (l lister) period(ctx context.Context, start, end time.Time) ([]dto.AppointmentListDTO, error) {
	appointments, err := l.repo.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return dto.NewAppointmentList(appointments), nil
}

type ListAppointmentsByDate struct{ lister }

func NewListAppointmentsByDate(repo domain.Repository, loc *time.Location) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{lister{repo: repo, clock: newClock(loc)}}
}

// Execute lista o dia informado (YYYY-MM-DD); vazio = hoje.
func (uc *ListAppointmentsByDate) Execute(ctx context.Context, date string) ([]dto.AppointmentListDTO, error) {
	day := timezone.DateOnly(uc.Now())
	if date != "" {
		d, err := timezone.ParseDate(date, uc.loc)
		if err != nil {
			return nil, httperr.ErrValidation("invalid_date_or_time", "date")
		}
		day = d
	}
	return uc.period(ctx, day, day.AddDate(0, 0, 1))
}

type ListAppointmentsByMonth struct{ lister }

func NewListAppointmentsByMonth(repo domain.Repository, loc *time.Location) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{lister{repo: repo, clock: newClock(loc)}}
}

func (uc *ListAppointmentsByMonth) Execute(ctx context.Context, year, month int) ([]dto.AppointmentListDTO, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, httperr.ErrValidation("invalid_date_or_time", "month")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
	return uc.period(ctx, start, start.AddDate(0, 1, 0))
}
