package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/finance"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

const defaultPayableCategory = "Geral"

type PayableView struct {
	models.Payable
	DisplayStatus domain.Status `json:"display_status"`
}

type ListPayables struct {
	repo domain.Repository
	clock
}

func NewListPayables(repo domain.Repository, loc *time.Location) *ListPayables {
	return &ListPayables{repo: repo, clock: newClock(loc)}
}

func (uc *ListPayables) Execute(ctx context.Context) ([]PayableView, error) {
	ps, err := uc.repo.ListPayables(ctx)
	if err != nil {
		return nil, err
	}

	asOf := uc.Now()
	out := make([]PayableView, 0, len(ps))
	for _, p := range ps {
		out = append(out, PayableView{
			Payable:       p,
			DisplayStatus: domain.DisplayStatus(p.Status, p.DueDate, asOf),
		})
	}
	return out, nil
}

type CreatePayableInput struct {
	Description string
	Category    string
	Amount      decimal.Decimal
	DueDate     string
}

type CreatePayable struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock
}

func NewCreatePayable(repo domain.Repository, audit *audit.Dispatcher, loc *time.Location) *CreatePayable {
	return &CreatePayable{repo: repo, audit: audit, clock: newClock(loc)}
}

func (uc *CreatePayable) Execute(ctx context.Context, in CreatePayableInput) (*models.Payable, error) {
	if in.DueDate == "" {
		return nil, httperr.ErrValidation("missing_field", "due_date")
	}
	due, err := timezone.ParseDate(in.DueDate, uc.loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time", "due_date")
	}

	category := in.Category
	if category == "" {
		category = defaultPayableCategory
	}

	p, err := domain.NewPayable(in.Description, category, in.Amount, due)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.SavePayable(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "payable_created",
		Entity:   "payable",
		EntityID: &p.ID,
	})

	return p, nil
}

type PayPayable struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock
}

func NewPayPayable(repo domain.Repository, audit *audit.Dispatcher, loc *time.Location) *PayPayable {
	return &PayPayable{repo: repo, audit: audit, clock: newClock(loc)}
}

func (uc *PayPayable) Execute(ctx context.Context, id uuid.UUID) (*models.Payable, error) {
	now := uc.Now()
	var p *models.Payable

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		var err error
		p, err = tx.GetPayable(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.PayPayable(p, now); err != nil {
			return err
		}
		return tx.SavePayable(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "payable_paid",
		Entity:   "payable",
		EntityID: &p.ID,
	})

	return p, nil
}
