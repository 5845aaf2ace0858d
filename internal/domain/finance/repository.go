package finance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type ReceivableFilter struct {
	ClientID *uuid.UUID
	Status   string
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	// -------- Receivables --------
	ListReceivables(
		ctx context.Context,
		filter ReceivableFilter,
	) ([]models.Receivable, error)

	GetReceivable(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Receivable, error)

	SaveReceivable(
		ctx context.Context,
		rec *models.Receivable,
	) error

	MarkAppointmentPaid(
		ctx context.Context,
		appointmentID uuid.UUID,
		method *string,
		paidAt time.Time,
	) error

	// -------- Payables --------
	ListPayables(
		ctx context.Context,
	) ([]models.Payable, error)

	GetPayable(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Payable, error)

	SavePayable(
		ctx context.Context,
		p *models.Payable,
	) error

	// -------- Cash sessions --------
	// FindOpenCashSession devolve (nil, nil) quando não há caixa aberto.
	FindOpenCashSession(
		ctx context.Context,
	) (*models.CashSession, error)

	GetCashSession(
		ctx context.Context,
		id uuid.UUID,
	) (*models.CashSession, error)

	SaveCashSession(
		ctx context.Context,
		s *models.CashSession,
	) error

	ListCashSessions(
		ctx context.Context,
		limit int,
	) ([]models.CashSession, error)

	InTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
