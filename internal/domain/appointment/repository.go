package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// Repository devolve httperr.NotFoundError quando o id não existe.
type Repository interface {
	// -------- Referências --------
	GetClient(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Client, error)

	GetService(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Service, error)

	GetProfessional(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Professional, error)

	CountProfessionals(
		ctx context.Context,
	) (int64, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// GetAppointment carrega Client/Service/Professional quando ainda existem.
	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Receivable (recebimento) --------
	// FindReceivableByAppointment devolve (nil, nil) quando não há conta.
	FindReceivableByAppointment(
		ctx context.Context,
		appointmentID uuid.UUID,
	) (*models.Receivable, error)

	SaveReceivable(
		ctx context.Context,
		rec *models.Receivable,
	) error

	// -------- Transação --------
	InTx(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
