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
)

// ======================================================
// OPEN
// ======================================================

type OpenCashSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock
}

func NewOpenCashSession(repo domain.Repository, audit *audit.Dispatcher, loc *time.Location) *OpenCashSession {
	return &OpenCashSession{repo: repo, audit: audit, clock: newClock(loc)}
}

// Execute falha com cash_session_open se já houver caixa aberto.
func (uc *OpenCashSession) Execute(
	ctx context.Context,
	openedBy string,
	amount decimal.Decimal,
) (*models.CashSession, error) {

	now := uc.Now()
	var session *models.CashSession

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		current, err := tx.FindOpenCashSession(ctx)
		if err != nil {
			return err
		}

		session, err = domain.OpenCashSession(current, openedBy, amount, now)
		if err != nil {
			return err
		}

		return tx.SaveCashSession(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "cash_session_opened",
		Entity:   "cash_session",
		EntityID: &session.ID,
		Metadata: map[string]any{"opening_amount": amount.StringFixed(2)},
	})

	return session, nil
}

// ======================================================
// CLOSE
// ======================================================

type CloseCashSession struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock
}

func NewCloseCashSession(repo domain.Repository, audit *audit.Dispatcher, loc *time.Location) *CloseCashSession {
	return &CloseCashSession{repo: repo, audit: audit, clock: newClock(loc)}
}

// Execute fecha o caixa informado; uuid.Nil fecha o caixa aberto atual.
func (uc *CloseCashSession) Execute(
	ctx context.Context,
	id uuid.UUID,
	closedBy string,
	amount decimal.Decimal,
) (*models.CashSession, error) {

	now := uc.Now()
	var session *models.CashSession

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {
		var err error
		if id == uuid.Nil {
			session, err = tx.FindOpenCashSession(ctx)
			if err == nil && session == nil {
				err = httperr.ErrNotFound("cash_session")
			}
		} else {
			session, err = tx.GetCashSession(ctx, id)
		}
		if err != nil {
			return err
		}

		if err := domain.CloseCashSession(session, closedBy, amount, now); err != nil {
			return err
		}

		return tx.SaveCashSession(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   "cash_session_closed",
		Entity:   "cash_session",
		EntityID: &session.ID,
		Metadata: map[string]any{"closing_amount": amount.StringFixed(2)},
	})

	return session, nil
}

// ======================================================
// LIST
// ======================================================

type ListCashSessions struct {
	repo domain.Repository
}

func NewListCashSessions(repo domain.Repository) *ListCashSessions {
	return &ListCashSessions{repo: repo}
}

func (uc *ListCashSessions) Execute(ctx context.Context, limit int) ([]models.CashSession, error) {
	return uc.repo.ListCashSessions(ctx, limit)
}
