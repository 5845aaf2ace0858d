package report

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type Repository interface {
	// ListAppointmentsBetween pré-carrega Client, Service e Professional.
	ListAppointmentsBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	ListReceivables(ctx context.Context) ([]models.Receivable, error)
	ListReceivablesDueBetween(ctx context.Context, from, to time.Time) ([]models.Receivable, error)
	ListClientsWithBirthDate(ctx context.Context) ([]models.Client, error)
}
