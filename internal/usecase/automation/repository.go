package automation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// Repository expõe as consultas usadas pelas varreduras diárias.
type Repository interface {
	// ListAppointmentsStartingBetween devolve agendamentos com start_time em [from, to)
	// e Client pré-carregado.
	ListAppointmentsStartingBetween(ctx context.Context, from, to time.Time, statuses []string) ([]models.Appointment, error)
	ListClientsWithBirthDate(ctx context.Context) ([]models.Client, error)
	// ListUnpaidReceivablesWithClient devolve contas não pagas com client_id e Client pré-carregado.
	ListUnpaidReceivablesWithClient(ctx context.Context) ([]models.Receivable, error)
}
