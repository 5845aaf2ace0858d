package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-manager/internal/domain/finance"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type FinanceGormRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewFinanceGormRepository(db *gorm.DB) *FinanceGormRepository {
	return &FinanceGormRepository{db: db}
}

func (r *FinanceGormRepository) locking(db *gorm.DB) *gorm.DB {
	if r.inTx {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

// --------------------------------------------------
// Receivables
// --------------------------------------------------

func (r *FinanceGormRepository) ListReceivables(
	ctx context.Context,
	filter finance.ReceivableFilter,
) ([]models.Receivable, error) {

	q := r.db.WithContext(ctx).Model(&models.Receivable{})

	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("due_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("due_date < ?", *filter.To)
	}

	var recs []models.Receivable
	if err := q.Order("due_date ASC").Find(&recs).Error; err != nil {
		return nil, httperr.ErrPersistence("list receivables", err)
	}
	return recs, nil
}

func (r *FinanceGormRepository) GetReceivable(
	ctx context.Context,
	id uuid.UUID,
) (*models.Receivable, error) {

	var rec models.Receivable
	if err := r.locking(r.db.WithContext(ctx)).
		First(&rec, "id = ?", id).Error; err != nil {
		return nil, loadErr(err, "receivable")
	}
	return &rec, nil
}

func (r *FinanceGormRepository) SaveReceivable(
	ctx context.Context,
	rec *models.Receivable,
) error {
	return httperr.ErrPersistence(
		"save receivable",
		r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error,
	)
}

func (r *FinanceGormRepository) MarkAppointmentPaid(
	ctx context.Context,
	appointmentID uuid.UUID,
	method *string,
	paidAt time.Time,
) error {
	updates := map[string]any{
		"payment_status": "paid",
		"paid_at":        paidAt,
	}
	if method != nil {
		updates["payment_method"] = *method
	}

	return httperr.ErrPersistence(
		"mark appointment paid",
		r.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("id = ?", appointmentID).
			Updates(updates).Error,
	)
}

// --------------------------------------------------
// Payables
// --------------------------------------------------

func (r *FinanceGormRepository) ListPayables(
	ctx context.Context,
) ([]models.Payable, error) {

	var ps []models.Payable
	if err := r.db.WithContext(ctx).
		Order("due_date ASC").
		Find(&ps).Error; err != nil {
		return nil, httperr.ErrPersistence("list payables", err)
	}
	return ps, nil
}

func (r *FinanceGormRepository) GetPayable(
	ctx context.Context,
	id uuid.UUID,
) (*models.Payable, error) {

	var p models.Payable
	if err := r.locking(r.db.WithContext(ctx)).
		First(&p, "id = ?", id).Error; err != nil {
		return nil, loadErr(err, "payable")
	}
	return &p, nil
}

func (r *FinanceGormRepository) SavePayable(
	ctx context.Context,
	p *models.Payable,
) error {
	return httperr.ErrPersistence(
		"save payable",
		r.db.WithContext(ctx).Save(p).Error,
	)
}

// --------------------------------------------------
// Cash sessions
// --------------------------------------------------

func (r *FinanceGormRepository) FindOpenCashSession(
	ctx context.Context,
) (*models.CashSession, error) {

	var sessions []models.CashSession
	if err := r.locking(r.db.WithContext(ctx)).
		Where("status = ?", string(finance.CashSessionOpen)).
		Order("opened_at DESC").
		Limit(1).
		Find(&sessions).Error; err != nil {
		return nil, httperr.ErrPersistence("find open cash session", err)
	}

	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

func (r *FinanceGormRepository) GetCashSession(
	ctx context.Context,
	id uuid.UUID,
) (*models.CashSession, error) {

	var s models.CashSession
	if err := r.locking(r.db.WithContext(ctx)).
		First(&s, "id = ?", id).Error; err != nil {
		return nil, loadErr(err, "cash_session")
	}
	return &s, nil
}

func (r *FinanceGormRepository) SaveCashSession(
	ctx context.Context,
	s *models.CashSession,
) error {
	return httperr.ErrPersistence(
		"save cash session",
		r.db.WithContext(ctx).Save(s).Error,
	)
}

func (r *FinanceGormRepository) ListCashSessions(
	ctx context.Context,
	limit int,
) ([]models.CashSession, error) {

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var sessions []models.CashSession
	if err := r.db.WithContext(ctx).
		Order("opened_at DESC").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, httperr.ErrPersistence("list cash sessions", err)
	}
	return sessions, nil
}

// --------------------------------------------------
// Transação
// --------------------------------------------------

func (r *FinanceGormRepository) InTx(
	ctx context.Context,
	fn func(tx finance.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// serializa aberturas concorrentes de caixa
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", cashSessionLockKey).Error; err != nil {
			return httperr.ErrPersistence("lock finance", err)
		}
		return fn(&FinanceGormRepository{db: tx, inTx: true})
	})
}

const cashSessionLockKey = 7_301_001

// Compile-time check
var _ finance.Repository = (*FinanceGormRepository)(nil)
