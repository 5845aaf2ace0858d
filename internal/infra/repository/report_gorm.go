package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/usecase/report"
)

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

func (r *ReportGormRepository) ListAppointmentsBetween(
	ctx context.Context,
	from, to time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, httperr.ErrPersistence("list appointments", err)
	}
	return aps, nil
}

func (r *ReportGormRepository) ListReceivables(
	ctx context.Context,
) ([]models.Receivable, error) {

	var recs []models.Receivable
	if err := r.db.WithContext(ctx).
		Order("due_date ASC").
		Find(&recs).Error; err != nil {
		return nil, httperr.ErrPersistence("list receivables", err)
	}
	return recs, nil
}

func (r *ReportGormRepository) ListReceivablesDueBetween(
	ctx context.Context,
	from, to time.Time,
) ([]models.Receivable, error) {

	var recs []models.Receivable
	if err := r.db.WithContext(ctx).
		Where("due_date >= ? AND due_date < ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("due_date ASC").
		Find(&recs).Error; err != nil {
		return nil, httperr.ErrPersistence("list receivables", err)
	}
	return recs, nil
}

func (r *ReportGormRepository) ListClientsWithBirthDate(
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

var _ report.Repository = (*ReportGormRepository)(nil)
