package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type fakeRepo struct {
	appointments []models.Appointment
	receivables  []models.Receivable
	clients      []models.Client
	err          error
}

func (f *fakeRepo) ListAppointmentsBetween(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Appointment
	for _, ap := range f.appointments {
		if !ap.StartTime.Before(from) && ap.StartTime.Before(to) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListReceivables(context.Context) ([]models.Receivable, error) {
	return f.receivables, nil
}

func (f *fakeRepo) ListReceivablesDueBetween(_ context.Context, from, to time.Time) ([]models.Receivable, error) {
	var out []models.Receivable
	for _, r := range f.receivables {
		if !r.DueDate.Before(from) && r.DueDate.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListClientsWithBirthDate(context.Context) ([]models.Client, error) {
	return f.clients, nil
}

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestDashboardAlerts(t *testing.T) {
	now := at(2024, 6, 15, 8)
	dani := &models.Professional{ID: uuid.New(), Name: "Dani", CommissionPercent: decimal.NewFromInt(40)}
	corte := &models.Service{ID: uuid.New(), Name: "Corte"}

	var aps []models.Appointment
	for i := 0; i < 11; i++ {
		aps = append(aps, models.Appointment{
			ID:             uuid.New(),
			StartTime:      at(2024, 6, 15, 9+i%8),
			Status:         "confirmed",
			Service:        corte,
			Professional:   dani,
			ProfessionalID: dani.ID,
			Price:          decimal.NewFromInt(80),
		})
	}
	aps = append(aps, models.Appointment{
		ID:             uuid.New(),
		StartTime:      at(2024, 6, 3, 10),
		Status:         "completed",
		Professional:   dani,
		ProfessionalID: dani.ID,
		Price:          decimal.NewFromInt(120),
	})

	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	paidAt := at(2024, 6, 3, 12)

	repo := &fakeRepo{
		appointments: aps,
		clients:      []models.Client{{ID: uuid.New(), Name: "Ana", BirthDate: &birth}},
		receivables: []models.Receivable{
			{Amount: decimal.NewFromInt(120), Status: "paid", PaidAt: &paidAt, DueDate: at(2024, 6, 3, 0)},
			{Amount: decimal.NewFromInt(50), Status: "pending", DueDate: at(2024, 5, 1, 0)},
		},
	}

	uc := NewGetDashboard(repo, time.UTC)
	uc.now = func() time.Time { return now }

	d, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-06-15", d.Date)
	assert.Len(t, d.AppointmentsToday, 11)
	assert.Len(t, d.BirthdaysToday, 1)
	assert.Equal(t, 1, d.OverdueCount)
	assert.True(t, d.MonthlyRevenue.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, "Dani", d.TopProfessional)

	require.Len(t, d.Alerts, 3)
	assert.Equal(t, "danger", d.Alerts[0].Tone)
	assert.Equal(t, "info", d.Alerts[1].Tone)
	assert.Equal(t, "warning", d.Alerts[2].Tone)
}

func TestDashboardQuietDay(t *testing.T) {
	uc := NewGetDashboard(&fakeRepo{}, time.UTC)
	uc.now = func() time.Time { return at(2024, 6, 15, 8) }

	d, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Empty(t, d.Alerts)
	assert.Equal(t, "-", d.TopProfessional)
}

func TestDashboardPropagatesLoadError(t *testing.T) {
	uc := NewGetDashboard(&fakeRepo{err: errors.New("db down")}, time.UTC)

	_, err := uc.Execute(context.Background())
	assert.Error(t, err)
}

func TestPeriodReportCommission(t *testing.T) {
	dani := &models.Professional{ID: uuid.New(), Name: "Dani", CommissionPercent: decimal.NewFromInt(40)}
	leo := &models.Professional{ID: uuid.New(), Name: "Leo", CommissionPercent: decimal.NewFromFloat(12.5)}
	corte := &models.Service{Name: "Corte"}
	escova := &models.Service{Name: "Escova"}

	repo := &fakeRepo{
		appointments: []models.Appointment{
			{StartTime: at(2024, 6, 3, 10), Status: "completed", Service: corte, Professional: dani, ProfessionalID: dani.ID, Price: decimal.NewFromInt(80)},
			{StartTime: at(2024, 6, 3, 11), Status: "completed", Service: escova, Professional: leo, ProfessionalID: leo.ID, Price: decimal.NewFromInt(100)},
			{StartTime: at(2024, 6, 4, 11), Status: "cancelled", Service: corte, Professional: leo, ProfessionalID: leo.ID, Price: decimal.NewFromInt(80)},
			{StartTime: at(2024, 6, 5, 11), Status: "completed", ProfessionalID: uuid.New(), Price: decimal.NewFromInt(60)},
			{StartTime: at(2024, 7, 1, 11), Status: "completed", Service: corte, Professional: dani, ProfessionalID: dani.ID, Price: decimal.NewFromInt(80)},
		},
		receivables: []models.Receivable{
			{Amount: decimal.NewFromInt(80), DueDate: at(2024, 6, 3, 0)},
			{Amount: decimal.NewFromInt(100), DueDate: at(2024, 6, 30, 0)},
			{Amount: decimal.NewFromInt(999), DueDate: at(2024, 7, 1, 0)},
		},
	}

	rep, err := NewGetPeriodReport(repo, time.UTC).Execute(context.Background(), ModeMonth, "2024-06-10")
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", rep.From)
	assert.Equal(t, "2024-06-30", rep.To)
	assert.Equal(t, 4, rep.TotalAppointments)
	assert.True(t, rep.Revenue.Equal(decimal.NewFromInt(180)))

	require.Len(t, rep.Professionals, 2)
	assert.Equal(t, "Leo", rep.Professionals[0].Name)
	assert.Equal(t, 2, rep.Professionals[0].Appointments)
	assert.True(t, rep.Professionals[0].Commission.Equal(decimal.NewFromFloat(12.5)))
	assert.Equal(t, "Dani", rep.Professionals[1].Name)
	assert.True(t, rep.Professionals[1].Commission.Equal(decimal.NewFromInt(32)))

	require.NotEmpty(t, rep.TopServices)
	assert.Equal(t, ServiceCount{Name: "Corte", Count: 2}, rep.TopServices[0])

	assert.Equal(t, []DayCount{
		{Date: "2024-06-03", Count: 2},
		{Date: "2024-06-04", Count: 1},
		{Date: "2024-06-05", Count: 1},
	}, rep.PerDay)
}

func TestPeriodBounds(t *testing.T) {
	base := at(2024, 2, 10, 15)

	from, to, err := Period(ModeDay, base)
	require.NoError(t, err)
	assert.Equal(t, at(2024, 2, 10, 0), from)
	assert.Equal(t, at(2024, 2, 11, 0), to)

	from, to, err = Period(ModeYear, base)
	require.NoError(t, err)
	assert.Equal(t, at(2024, 1, 1, 0), from)
	assert.Equal(t, at(2025, 1, 1, 0), to)

	_, _, err = Period("week", base)
	assert.True(t, httperr.IsValidation(err))
}
