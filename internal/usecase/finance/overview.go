package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/finance"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type Overview struct {
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	OverdueCount   int             `json:"overdue_count"`

	Incomes      decimal.Decimal `json:"incomes"`
	Expenses     decimal.Decimal `json:"expenses"`
	Profit       decimal.Decimal `json:"profit"`
	PendingTotal decimal.Decimal `json:"pending_total"`

	Debtors []domain.ReceivableOverdue `json:"debtors"`
}

type GetOverview struct {
	repo domain.Repository
	clock
}

func NewGetOverview(repo domain.Repository, loc *time.Location) *GetOverview {
	return &GetOverview{repo: repo, clock: newClock(loc)}
}

func (uc *GetOverview) Execute(ctx context.Context) (*Overview, error) {
	var (
		receivables []models.Receivable
		payables    []models.Payable
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		receivables, err = uc.repo.ListReceivables(gctx, domain.ReceivableFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		payables, err = uc.repo.ListPayables(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := uc.Now()
	return buildOverview(receivables, payables, now), nil
}

func buildOverview(receivables []models.Receivable, payables []models.Payable, now time.Time) *Overview {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	out := &Overview{
		MonthlyRevenue: decimal.Zero,
		Incomes:        decimal.Zero,
		Expenses:       decimal.Zero,
		PendingTotal:   decimal.Zero,
	}

	paidIncomes := decimal.Zero
	for _, r := range receivables {
		out.Incomes = out.Incomes.Add(r.Amount)

		if r.Status != string(domain.StatusPaid) {
			out.PendingTotal = out.PendingTotal.Add(r.Amount)
			continue
		}

		paidIncomes = paidIncomes.Add(r.Amount)

		paidAt := r.CreatedAt
		if r.PaidAt != nil {
			paidAt = *r.PaidAt
		}
		if !paidAt.Before(monthStart) {
			out.MonthlyRevenue = out.MonthlyRevenue.Add(r.Amount)
		}
	}

	paidExpenses := decimal.Zero
	for _, p := range payables {
		out.Expenses = out.Expenses.Add(p.Amount)
		if p.Status == string(domain.StatusPaid) {
			paidExpenses = paidExpenses.Add(p.Amount)
		}
	}

	out.Profit = paidIncomes.Sub(paidExpenses)

	report := domain.ComputeOverdue(receivables, now)
	out.OverdueCount = len(report.Receivables)
	out.Debtors = report.Receivables

	return out
}
