package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/automation"
)

type AutomationGormRepository struct {
	db *gorm.DB
}

func NewAutomationGormRepository(db *gorm.DB) *AutomationGormRepository {
	return &AutomationGormRepository{db: db}
}

func (r *AutomationGormRepository) ListAppointmentsStartingBetween(
	ctx context.Context,
	from, to time.Time,
	statuses []string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("start_time >= ? AND start_time < ?", from, to).
		Where("status IN ?", statuses).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, httperr.ErrPersistence("list upcoming appointments", err)
	}
	return aps, nil
}

func (r *AutomationGormRepository) ListClientsWithBirthDate(
	ctx context.Context,
) ([]models.Client, error) {

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where("birth_date IS NOT NULL").
		Order("name ASC").
		Find(&clients).Error; err != nil {
		return nil, httperr.ErrPersistence("list birthdays", err)
	}
	return clients, nil
}

func (r *AutomationGormRepository) ListUnpaidReceivablesWithClient(
	ctx context.Context,
) ([]models.Receivable, error) {

	var recs []models.Receivable
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("status <> ?", "paid").
		Where("client_id IS NOT NULL").
		Order("due_date ASC").
		Find(&recs).Error; err != nil {
		return nil, httperr.ErrPersistence("list unpaid receivables", err)
	}
	return recs, nil
}

var _ automation.Repository = (*AutomationGormRepository)(nil)
