package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-manager/internal/domain/payment"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type CashSessionStatus string

const (
	CashSessionOpen   CashSessionStatus = "open"
	CashSessionClosed CashSessionStatus = "closed"
)

func NewReceivable(
	description string,
	clientName string,
	amount decimal.Decimal,
	dueDate time.Time,
) (*models.Receivable, error) {
	if description == "" {
		return nil, httperr.ErrValidation("missing_field", "description")
	}
	if !amount.IsPositive() {
		return nil, httperr.ErrValidation("invalid_amount", "amount")
	}
	if dueDate.IsZero() {
		return nil, httperr.ErrValidation("missing_field", "due_date")
	}

	return &models.Receivable{
		Description: description,
		ClientName:  clientName,
		Amount:      amount,
		DueDate:     dueDate,
		Status:      string(StatusPending),
	}, nil
}

// SettleReceivable marca a conta como paga (botão "Receber").
func SettleReceivable(rec *models.Receivable, method payment.Method, now time.Time) error {
	if rec.Status == string(StatusPaid) {
		return httperr.ErrBusiness("already_paid")
	}
	if method == "" {
		// conta aberta quitada precisa do meio efetivo
		if rec.PaymentMethod != nil && payment.Method(*rec.PaymentMethod).IsOpenAccount() {
			return httperr.ErrValidation("missing_field", "method")
		}
	} else {
		if !payment.Valid(string(method)) || method.IsOpenAccount() {
			return httperr.ErrValidation("invalid_payment_method", "method")
		}
		m := string(method)
		rec.PaymentMethod = &m
	}

	rec.Status = string(StatusPaid)
	rec.PaidAt = &now
	return nil
}

func NewPayable(
	description string,
	category string,
	amount decimal.Decimal,
	dueDate time.Time,
) (*models.Payable, error) {
	if description == "" {
		return nil, httperr.ErrValidation("missing_field", "description")
	}
	if !amount.IsPositive() {
		return nil, httperr.ErrValidation("invalid_amount", "amount")
	}
	if dueDate.IsZero() {
		return nil, httperr.ErrValidation("missing_field", "due_date")
	}

	return &models.Payable{
		Description: description,
		Category:    category,
		Amount:      amount,
		DueDate:     dueDate,
		Status:      string(StatusPending),
	}, nil
}

func PayPayable(p *models.Payable, now time.Time) error {
	if p.Status == string(StatusPaid) {
		return httperr.ErrBusiness("already_paid")
	}
	p.Status = string(StatusPaid)
	p.PaidAt = &now
	return nil
}

// OpenCashSession exige que nenhum outro caixa esteja aberto.
func OpenCashSession(
	current *models.CashSession,
	openedBy string,
	amount decimal.Decimal,
	now time.Time,
) (*models.CashSession, error) {
	if current != nil && current.Status == string(CashSessionOpen) {
		return nil, httperr.ErrBusiness("cash_session_open")
	}
	if openedBy == "" {
		return nil, httperr.ErrValidation("missing_field", "opened_by")
	}
	if amount.IsNegative() {
		return nil, httperr.ErrValidation("invalid_amount", "opening_amount")
	}

	return &models.CashSession{
		OpeningAmount: amount,
		OpenedBy:      openedBy,
		OpenedAt:      now,
		Status:        string(CashSessionOpen),
	}, nil
}

func CloseCashSession(
	s *models.CashSession,
	closedBy string,
	amount decimal.Decimal,
	now time.Time,
) error {
	if s.Status == string(CashSessionClosed) {
		return httperr.ErrBusiness("cash_session_closed")
	}
	if closedBy == "" {
		return httperr.ErrValidation("missing_field", "closed_by")
	}
	if amount.IsNegative() {
		return httperr.ErrValidation("invalid_amount", "closing_amount")
	}

	s.ClosingAmount = &amount
	s.ClosedBy = &closedBy
	s.ClosedAt = &now
	s.Status = string(CashSessionClosed)
	return nil
}
