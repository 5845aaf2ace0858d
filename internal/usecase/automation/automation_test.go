package automation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-manager/internal/cache"
	"github.com/BruksfildServices01/salon-manager/internal/infra/payments"
	"github.com/BruksfildServices01/salon-manager/internal/messaging"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/notifier"
)

// --------------------------------------------------
// fakes
// --------------------------------------------------

type fakeRepo struct {
	appointments []models.Appointment
	clients      []models.Client
	receivables  []models.Receivable

	birthdayErr error
}

func (f *fakeRepo) ListAppointmentsStartingBetween(_ context.Context, from, to time.Time, statuses []string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.StartTime.Before(from) || !ap.StartTime.Before(to) {
			continue
		}
		for _, s := range statuses {
			if ap.Status == s {
				out = append(out, ap)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) ListClientsWithBirthDate(context.Context) ([]models.Client, error) {
	if f.birthdayErr != nil {
		return nil, f.birthdayErr
	}
	var out []models.Client
	for _, c := range f.clients {
		if c.BirthDate != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListUnpaidReceivablesWithClient(context.Context) ([]models.Receivable, error) {
	var out []models.Receivable
	for _, r := range f.receivables {
		if r.Status != "paid" && r.ClientID != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

type memoryStore struct {
	mu   sync.Mutex
	rows []models.MessageHistory
}

func (s *memoryStore) SaveMessage(_ context.Context, msg *models.MessageHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, *msg)
	return nil
}

func (s *memoryStore) byStatus(status string) []models.MessageHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.MessageHistory
	for _, r := range s.rows {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

type fakeLinks struct{}

func (fakeLinks) CreateLink(_ context.Context, req payments.LinkRequest) (string, error) {
	return "https://pay.example/" + req.Reference, nil
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newClient(name, phone string, accepts bool) models.Client {
	return models.Client{ID: uuid.New(), Name: name, Phone: phone, AcceptsMessages: accepts}
}

func setup(repo *fakeRepo, opts ...Option) (*Runner, *notifier.Mock, *memoryStore) {
	mock := notifier.NewMock()
	store := &memoryStore{}
	return NewRunner(repo, messaging.NewMessenger(mock, store), time.UTC, opts...), mock, store
}

// --------------------------------------------------
// testes
// --------------------------------------------------

func TestBirthdaySendsAndSkips(t *testing.T) {
	ana := newClient("Ana", "11999990000", true)
	ana.BirthDate = date(1990, 6, 15)
	bia := newClient("Bia", "11988880000", false)
	bia.BirthDate = date(1985, 6, 15)
	caio := newClient("Caio", "11977770000", true)
	caio.BirthDate = date(1990, 6, 16)

	r, mock, store := setup(&fakeRepo{clients: []models.Client{ana, bia, caio}})

	rep, err := r.Birthday(context.Background(), time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Matched)
	assert.Equal(t, 1, rep.Sent)
	assert.Equal(t, 1, rep.Skipped)

	sent := mock.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "11999990000", sent[0].To)
	assert.Contains(t, sent[0].Body, "Parabéns, Ana!")

	skipped := store.byStatus("skipped")
	require.Len(t, skipped, 1)
	assert.Equal(t, bia.ID, skipped[0].ClientID)
	assert.Equal(t, "birthday", skipped[0].Type)
}

func TestReminderWindow(t *testing.T) {
	now := time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)
	ana := newClient("Ana", "11999990000", true)

	inWindow := models.Appointment{ID: uuid.New(), Client: &ana, StartTime: now.Add(24*time.Hour + 30*time.Minute), Status: "confirmed"}
	edge := models.Appointment{ID: uuid.New(), Client: &ana, StartTime: now.Add(25 * time.Hour), Status: "scheduled"}
	cancelled := models.Appointment{ID: uuid.New(), Client: &ana, StartTime: now.Add(24 * time.Hour), Status: "cancelled"}

	r, mock, store := setup(&fakeRepo{appointments: []models.Appointment{inWindow, edge, cancelled}})

	rep, err := r.Reminder24h(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Sent)
	require.Len(t, mock.Sent(), 1)

	rows := store.byStatus("sent")
	require.Len(t, rows, 1)
	assert.Equal(t, "reminder", rows[0].Type)
	require.NotNil(t, rows[0].AppointmentID)
	assert.Equal(t, inWindow.ID, *rows[0].AppointmentID)
}

func TestOverdueThirtyDays(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	ana := newClient("Ana", "11999990000", true)
	bia := newClient("Bia", "", true)

	old := models.Receivable{ID: uuid.New(), ClientID: &ana.ID, Client: &ana, Amount: decimal.NewFromInt(80), DueDate: *date(2024, 1, 30), Status: "pending"}
	recent := models.Receivable{ID: uuid.New(), ClientID: &ana.ID, Client: &ana, Amount: decimal.NewFromInt(50), DueDate: *date(2024, 2, 10), Status: "pending"}
	noPhone := models.Receivable{ID: uuid.New(), ClientID: &bia.ID, Client: &bia, Amount: decimal.NewFromInt(50), DueDate: *date(2024, 1, 1), Status: "pending"}

	r, mock, store := setup(&fakeRepo{receivables: []models.Receivable{old, recent, noPhone}}, WithPaymentLinks(fakeLinks{}))

	rep, err := r.Overdue30(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Matched)
	assert.Equal(t, 1, rep.Sent)
	assert.Equal(t, 1, rep.Skipped)

	sent := mock.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "há 31 dias")
	assert.Contains(t, sent[0].Body, "https://pay.example/"+old.ID.String())

	assert.Len(t, store.byStatus("skipped"), 1)
}

func TestFailedSendIsLogged(t *testing.T) {
	ana := newClient("Ana", "11999990000", true)
	ana.BirthDate = date(1990, 6, 15)

	r, mock, store := setup(&fakeRepo{clients: []models.Client{ana}})
	mock.FailWith = errors.New("gateway down")

	rep, err := r.Birthday(context.Background(), time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Failed)
	failed := store.byStatus("failed")
	require.Len(t, failed, 1)
	assert.Equal(t, "gateway down", failed[0].Error)
}

func TestRerunResendsWithoutGuard(t *testing.T) {
	ana := newClient("Ana", "11999990000", true)
	ana.BirthDate = date(1990, 6, 15)
	today := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

	r, mock, _ := setup(&fakeRepo{clients: []models.Client{ana}})

	_, _ = r.Birthday(context.Background(), today)
	_, _ = r.Birthday(context.Background(), today)

	assert.Len(t, mock.Sent(), 2)
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestGuardDeduplicatesSameDay(t *testing.T) {
	rdb := newTestRedis(t)

	ana := newClient("Ana", "11999990000", true)
	ana.BirthDate = date(1990, 6, 15)
	today := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

	r, mock, _ := setup(&fakeRepo{clients: []models.Client{ana}}, WithGuard(cache.NewRedisGuard(rdb, "automation:")))

	_, _ = r.Birthday(context.Background(), today)
	rep, err := r.Birthday(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Guarded)
	assert.Len(t, mock.Sent(), 1)
}

func TestRunDailyKeepsGoingOnFailure(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	ana := newClient("Ana", "11999990000", true)
	old := models.Receivable{ID: uuid.New(), ClientID: &ana.ID, Client: &ana, Amount: decimal.NewFromInt(80), DueDate: *date(2024, 1, 30), Status: "pending"}

	repo := &fakeRepo{
		receivables: []models.Receivable{old},
		birthdayErr: errors.New("db down"),
	}
	r, mock, _ := setup(repo)

	report, err := r.RunDaily(context.Background(), now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")

	require.Len(t, report.Scans, 3)
	assert.Equal(t, ScanReminder, report.Scans[0].Scan)
	assert.Equal(t, "db down", report.Scans[1].Error)
	assert.Equal(t, 1, report.Scans[2].Sent)
	assert.Len(t, mock.Sent(), 1)
}

func TestRunScheduledLock(t *testing.T) {
	rdb := newTestRedis(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	r, _, _ := setup(&fakeRepo{}, WithDailyLock(cache.NewRedisGuard(rdb, "automation:")))

	first, err := r.RunScheduled(context.Background(), now)
	require.NoError(t, err)
	assert.False(t, first.AlreadyRan)
	assert.Equal(t, "2024-03-01", first.Date)

	second, err := r.RunScheduled(context.Background(), now)
	require.NoError(t, err)
	assert.True(t, second.AlreadyRan)
	assert.Empty(t, second.Scans)
}

func TestRunScheduledRetriesAfterFailure(t *testing.T) {
	rdb := newTestRedis(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	ana := newClient("Ana", "11999990000", true)
	ana.BirthDate = date(1990, 3, 1)
	repo := &fakeRepo{
		clients:     []models.Client{ana},
		birthdayErr: errors.New("db down"),
	}
	r, mock, _ := setup(repo, WithDailyLock(cache.NewRedisGuard(rdb, "automation:")))

	_, err := r.RunScheduled(context.Background(), now)
	require.Error(t, err)
	assert.Empty(t, mock.Sent())

	repo.birthdayErr = nil

	retry, err := r.RunScheduled(context.Background(), now)
	require.NoError(t, err)
	assert.False(t, retry.AlreadyRan)
	require.Len(t, retry.Scans, 3)
	assert.Equal(t, 1, retry.Scans[1].Sent)
	assert.Len(t, mock.Sent(), 1)
}

func TestRunDailyIgnoresLock(t *testing.T) {
	rdb := newTestRedis(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	ana := newClient("Ana", "11999990000", true)
	ana.BirthDate = date(1990, 3, 1)
	r, mock, _ := setup(&fakeRepo{clients: []models.Client{ana}}, WithDailyLock(cache.NewRedisGuard(rdb, "automation:")))

	_, err := r.RunScheduled(context.Background(), now)
	require.NoError(t, err)

	manual, err := r.RunDaily(context.Background(), now)
	require.NoError(t, err)
	assert.False(t, manual.AlreadyRan)
	assert.Len(t, mock.Sent(), 2)
}
