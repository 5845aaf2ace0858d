package finance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/finance"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/infra/payments"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 10, 0, 0, 0, time.UTC) }
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestListReceivablesDerivesOverdue(t *testing.T) {
	repo := newFakeRepo()
	client := uuid.New()

	_ = repo.SaveReceivable(context.Background(), &models.Receivable{ClientID: &client, Amount: decimal.NewFromInt(80), DueDate: day(2024, 1, 30), Status: "pending"})
	_ = repo.SaveReceivable(context.Background(), &models.Receivable{ClientID: &client, Amount: decimal.NewFromInt(50), DueDate: day(2024, 3, 20), Status: "pending"})
	_ = repo.SaveReceivable(context.Background(), &models.Receivable{Amount: decimal.NewFromInt(30), DueDate: day(2024, 1, 1), Status: "paid"})

	uc := NewListReceivables(repo, time.UTC)
	uc.now = fixedNow(2024, 3, 1)

	all, err := uc.Execute(context.Background(), domain.ReceivableFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, domain.StatusPaid, all[0].DisplayStatus)
	assert.Equal(t, domain.StatusOverdue, all[1].DisplayStatus)
	assert.Equal(t, 31, all[1].OverdueDays)
	assert.Equal(t, domain.SeverityDanger, all[1].Severity)
	assert.Equal(t, domain.StatusPending, all[2].DisplayStatus)

	// o valor gravado continua pending
	assert.Equal(t, "pending", all[1].Status)

	overdue, err := uc.Execute(context.Background(), domain.ReceivableFilter{Status: "overdue"})
	require.NoError(t, err)
	assert.Len(t, overdue, 1)
}

func TestSettleReceivableMarksAppointmentPaid(t *testing.T) {
	repo := newFakeRepo()
	apID := uuid.New()
	rec := &models.Receivable{AppointmentID: &apID, Amount: decimal.NewFromInt(80), DueDate: day(2024, 3, 1), Status: "pending"}
	require.NoError(t, repo.SaveReceivable(context.Background(), rec))

	uc := NewSettleReceivable(repo, nil, time.UTC)
	uc.now = fixedNow(2024, 3, 5)

	settled, err := uc.Execute(context.Background(), rec.ID, "cash")
	require.NoError(t, err)
	assert.Equal(t, "paid", settled.Status)

	mark, ok := repo.paid[apID]
	require.True(t, ok)
	require.NotNil(t, mark.method)
	assert.Equal(t, "cash", *mark.method)

	_, err = uc.Execute(context.Background(), rec.ID, "cash")
	assert.True(t, httperr.IsBusiness(err, "already_paid"))

	_, err = uc.Execute(context.Background(), uuid.New(), "cash")
	assert.True(t, httperr.IsNotFound(err))
}

func TestSettleOpenAccountReceivableRequiresMethod(t *testing.T) {
	repo := newFakeRepo()
	apID := uuid.New()
	account := "account"
	rec := &models.Receivable{AppointmentID: &apID, Amount: decimal.NewFromInt(80), DueDate: day(2024, 3, 1), Status: "pending", PaymentMethod: &account}
	require.NoError(t, repo.SaveReceivable(context.Background(), rec))

	uc := NewSettleReceivable(repo, nil, time.UTC)
	uc.now = fixedNow(2024, 3, 5)

	_, err := uc.Execute(context.Background(), rec.ID, "")
	assert.True(t, httperr.IsValidation(err))
	_, marked := repo.paid[apID]
	assert.False(t, marked)

	settled, err := uc.Execute(context.Background(), rec.ID, "pix")
	require.NoError(t, err)
	assert.Equal(t, "pix", *settled.PaymentMethod)
	assert.Equal(t, "pix", *repo.paid[apID].method)
}

func TestCreateReceivableAndPayable(t *testing.T) {
	repo := newFakeRepo()

	rec, err := NewCreateReceivable(repo, nil, time.UTC).Execute(context.Background(), CreateReceivableInput{
		ClientName:  "Ana",
		Description: "Pacote",
		Amount:      decimal.NewFromInt(200),
		DueDate:     "2024-04-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", rec.Status)

	_, err = NewCreateReceivable(repo, nil, time.UTC).Execute(context.Background(), CreateReceivableInput{
		Description: "Pacote",
		Amount:      decimal.NewFromInt(200),
	})
	assert.True(t, httperr.IsValidation(err))

	p, err := NewCreatePayable(repo, nil, time.UTC).Execute(context.Background(), CreatePayableInput{
		Description: "Aluguel",
		Amount:      decimal.NewFromInt(1500),
		DueDate:     "2024-04-05",
	})
	require.NoError(t, err)
	assert.Equal(t, "Geral", p.Category)

	paid, err := NewPayPayable(repo, nil, time.UTC).Execute(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)

	list, err := NewListPayables(repo, time.UTC).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StatusPaid, list[0].DisplayStatus)
}

func TestCashSessionSingleOpen(t *testing.T) {
	repo := newFakeRepo()
	open := NewOpenCashSession(repo, nil, time.UTC)

	s, err := open.Execute(context.Background(), "Danny", decimal.NewFromInt(100))
	require.NoError(t, err)

	_, err = open.Execute(context.Background(), "Danny", decimal.NewFromInt(50))
	assert.True(t, httperr.IsBusiness(err, "cash_session_open"))

	closed, err := NewCloseCashSession(repo, nil, time.UTC).Execute(context.Background(), uuid.Nil, "Danny", decimal.NewFromInt(420))
	require.NoError(t, err)
	assert.Equal(t, s.ID, closed.ID)
	assert.Equal(t, "closed", closed.Status)

	_, err = NewCloseCashSession(repo, nil, time.UTC).Execute(context.Background(), s.ID, "Danny", decimal.NewFromInt(420))
	assert.True(t, httperr.IsBusiness(err, "cash_session_closed"))

	_, err = NewCloseCashSession(repo, nil, time.UTC).Execute(context.Background(), uuid.Nil, "Danny", decimal.Zero)
	assert.True(t, httperr.IsNotFound(err))

	sessions, err := NewListCashSessions(repo).Execute(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestCashSessionConcurrentOpen(t *testing.T) {
	repo := newFakeRepo()
	open := NewOpenCashSession(repo, nil, time.UTC)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		opened int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := open.Execute(context.Background(), "Danny", decimal.NewFromInt(10)); err == nil {
				mu.Lock()
				opened++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, opened)
}

func TestOverview(t *testing.T) {
	repo := newFakeRepo()
	paidAt := time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)
	old := time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)

	_ = repo.SaveReceivable(context.Background(), &models.Receivable{Amount: decimal.NewFromInt(100), DueDate: day(2024, 3, 2), Status: "paid", PaidAt: &paidAt})
	_ = repo.SaveReceivable(context.Background(), &models.Receivable{Amount: decimal.NewFromInt(40), DueDate: day(2024, 2, 2), Status: "paid", PaidAt: &old})
	_ = repo.SaveReceivable(context.Background(), &models.Receivable{Amount: decimal.NewFromInt(60), DueDate: day(2024, 1, 30), Status: "pending"})
	_ = repo.SavePayable(context.Background(), &models.Payable{Amount: decimal.NewFromInt(30), DueDate: day(2024, 3, 1), Status: "paid"})
	_ = repo.SavePayable(context.Background(), &models.Payable{Amount: decimal.NewFromInt(500), DueDate: day(2024, 3, 30), Status: "pending"})

	uc := NewGetOverview(repo, time.UTC)
	uc.now = fixedNow(2024, 3, 15)

	ov, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, ov.MonthlyRevenue.Equal(decimal.NewFromInt(100)))
	assert.True(t, ov.Incomes.Equal(decimal.NewFromInt(200)))
	assert.True(t, ov.Expenses.Equal(decimal.NewFromInt(530)))
	assert.True(t, ov.Profit.Equal(decimal.NewFromInt(110)))
	assert.True(t, ov.PendingTotal.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, 1, ov.OverdueCount)
}

type fakeLinks struct {
	last payments.LinkRequest
}

func (f *fakeLinks) CreateLink(_ context.Context, req payments.LinkRequest) (string, error) {
	f.last = req
	return "https://pay.example/" + req.Reference, nil
}

func TestCreatePaymentLink(t *testing.T) {
	repo := newFakeRepo()
	rec := &models.Receivable{Description: "Corte - Ana", Amount: decimal.NewFromInt(80), DueDate: day(2024, 3, 1), Status: "pending"}
	require.NoError(t, repo.SaveReceivable(context.Background(), rec))

	_, err := NewCreatePaymentLink(repo, nil).Execute(context.Background(), rec.ID)
	assert.True(t, httperr.IsBusiness(err, "payment_link_disabled"))

	links := &fakeLinks{}
	url, err := NewCreatePaymentLink(repo, links).Execute(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/"+rec.ID.String(), url)
	assert.Equal(t, "Corte - Ana", links.last.Title)
}
