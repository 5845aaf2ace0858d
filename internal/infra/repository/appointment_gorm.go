package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
	// inTx: leituras de agendamento usam SELECT ... FOR UPDATE
	inTx bool
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Referências
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uuid.UUID,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, loadErr(err, "client")
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		return nil, loadErr(err, "service")
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	id uuid.UUID,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).First(&prof, "id = ?", id).Error; err != nil {
		return nil, loadErr(err, "professional")
	}
	return &prof, nil
}

func (r *AppointmentGormRepository) CountProfessionals(
	ctx context.Context,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Count(&count).Error; err != nil {
		return 0, httperr.ErrPersistence("count professionals", err)
	}
	return count, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return httperr.ErrPersistence(
		"create appointment",
		r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error,
	)
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	db := r.db.WithContext(ctx)

	if r.inTx {
		var locked models.Appointment
		if err := db.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&locked, "id = ?", id).Error; err != nil {
			return nil, loadErr(err, "appointment")
		}
	}

	var ap models.Appointment
	if err := db.
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, loadErr(err, "appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return httperr.ErrPersistence(
		"update appointment",
		r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error,
	)
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Professional").
		Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, httperr.ErrPersistence("list appointments", err)
	}

	return apps, nil
}

// --------------------------------------------------
// Receivable
// --------------------------------------------------

func (r *AppointmentGormRepository) FindReceivableByAppointment(
	ctx context.Context,
	appointmentID uuid.UUID,
) (*models.Receivable, error) {

	var recs []models.Receivable
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC").
		Limit(1).
		Find(&recs).Error; err != nil {
		return nil, httperr.ErrPersistence("find receivable", err)
	}

	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (r *AppointmentGormRepository) SaveReceivable(
	ctx context.Context,
	rec *models.Receivable,
) error {
	return httperr.ErrPersistence(
		"save receivable",
		r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error,
	)
}

// --------------------------------------------------
// Transação
// --------------------------------------------------

func (r *AppointmentGormRepository) InTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx, inTx: true})
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
