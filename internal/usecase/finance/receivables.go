package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	domain "github.com/BruksfildServices01/salon-manager/internal/domain/finance"
	"github.com/BruksfildServices01/salon-manager/internal/domain/payment"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

// ReceivableView acrescenta o status de exibição (overdue é derivado).
type ReceivableView struct {
	models.Receivable
	DisplayStatus      domain.Status   `json:"display_status"`
	OverdueDays        int             `json:"overdue_days"`
	Severity           domain.Severity `json:"severity"`
	PaymentMethodLabel string          `json:"payment_method_label,omitempty"`
}

func newReceivableView(r models.Receivable, asOf time.Time) ReceivableView {
	v := ReceivableView{
		Receivable:    r,
		DisplayStatus: domain.DisplayStatus(r.Status, r.DueDate, asOf),
	}
	if v.DisplayStatus == domain.StatusOverdue {
		v.OverdueDays = domain.OverdueDays(r.DueDate, asOf)
		v.Severity = domain.Classify(v.OverdueDays)
	}
	if r.PaymentMethod != nil {
		v.PaymentMethodLabel = payment.Label(*r.PaymentMethod)
	}
	return v
}

// ======================================================
// LIST
// ======================================================

type ListReceivables struct {
	repo domain.Repository
	clock
}

func NewListReceivables(repo domain.Repository, loc *time.Location) *ListReceivables {
	return &ListReceivables{repo: repo, clock: newClock(loc)}
}

// Execute aceita status "overdue" como filtro derivado.
func (uc *ListReceivables) Execute(
	ctx context.Context,
	filter domain.ReceivableFilter,
) ([]ReceivableView, error) {

	wantOverdue := filter.Status == string(domain.StatusOverdue)
	if wantOverdue {
		filter.Status = string(domain.StatusPending)
	}

	recs, err := uc.repo.ListReceivables(ctx, filter)
	if err != nil {
		return nil, err
	}

	asOf := uc.Now()
	out := make([]ReceivableView, 0, len(recs))
	for _, r := range recs {
		v := newReceivableView(r, asOf)
		if wantOverdue && v.DisplayStatus != domain.StatusOverdue {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// ======================================================
// CREATE (lançamento avulso)
// ======================================================

type CreateReceivableInput struct {
	ClientID    *uuid.UUID
	ClientName  string
	Description string
	Amount      decimal.Decimal
	DueDate     string
}

type CreateReceivable struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock
}

func NewCreateReceivable(repo domain.Repository, audit *audit.Dispatcher, loc *time.Location) *CreateReceivable {
	return &CreateReceivable{repo: repo, audit: audit, clock: newClock(loc)}
}

func (uc *CreateReceivable) Execute(
	ctx context.Context,
	in CreateReceivableInput,
) (*models.Receivable, error) {

	if in.DueDate == "" {
		return nil, httperr.ErrValidation("missing_field", "due_date")
	}
	due, err := timezone.ParseDate(in.DueDate, uc.loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time", "due_date")
	}

	rec, err := domain.NewReceivable(in.Description, in.ClientName, in.Amount, due)
	if err != nil {
		return nil, err
	}
	rec.ClientID = in.ClientID

	if err := uc.repo.SaveReceivable(ctx, rec); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "receivable_created",
		Entity:   "receivable",
		EntityID: &rec.ID,
	})

	return rec, nil
}

// ======================================================
// SETTLE ("Receber")
// ======================================================

type SettleReceivable struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock
}

func NewSettleReceivable(repo domain.Repository, audit *audit.Dispatcher, loc *time.Location) *SettleReceivable {
	return &SettleReceivable{repo: repo, audit: audit, clock: newClock(loc)}
}

// Execute quita a conta e, se ligada a um agendamento, marca-o como pago.
func (uc *SettleReceivable) Execute(
	ctx context.Context,
	id uuid.UUID,
	method string,
) (*models.Receivable, error) {

	now := uc.Now()
	var rec *models.Receivable

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		var err error
		rec, err = tx.GetReceivable(ctx, id)
		if err != nil {
			return err
		}

		if err := domain.SettleReceivable(rec, payment.Method(method), now); err != nil {
			return err
		}

		if err := tx.SaveReceivable(ctx, rec); err != nil {
			return err
		}

		if rec.AppointmentID != nil {
			return tx.MarkAppointmentPaid(ctx, *rec.AppointmentID, rec.PaymentMethod, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "receivable_settled",
		Entity:   "receivable",
		EntityID: &rec.ID,
	})

	return rec, nil
}
