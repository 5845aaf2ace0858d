package finance

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-manager/internal/models"
)

const (
	WarningThresholdDays = 20
	DangerThresholdDays  = 30
)

type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityDanger
)

func (s Severity) String() string {
	switch s {
	case SeverityDanger:
		return "danger"
	case SeverityWarning:
		return "warning"
	default:
		return "ok"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify: > 30 dias danger, 20..30 warning, resto ok.
func Classify(overdueDays int) Severity {
	switch {
	case overdueDays > DangerThresholdDays:
		return SeverityDanger
	case overdueDays >= WarningThresholdDays:
		return SeverityWarning
	default:
		return SeverityOK
	}
}

// civil normaliza para a data do calendário, ignorando fuso e hora.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// OverdueDays = floor((asOf - dueDate) / 1 dia), nunca negativo.
func OverdueDays(dueDate time.Time, asOf time.Time) int {
	days := int(civil(asOf).Sub(civil(dueDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

type ReceivableOverdue struct {
	ReceivableID uuid.UUID  `json:"receivable_id"`
	ClientID     *uuid.UUID `json:"client_id"`
	ClientName   string     `json:"client_name"`
	DueDate      time.Time  `json:"due_date"`
	OverdueDays  int        `json:"overdue_days"`
	Severity     Severity   `json:"severity"`
}

type ClientDelinquency struct {
	ClientID     uuid.UUID `json:"client_id"`
	OverdueDays  int       `json:"overdue_days"`
	OverdueCount int       `json:"overdue_count"`
	Severity     Severity  `json:"severity"`
}

type OverdueReport struct {
	Receivables []ReceivableOverdue             `json:"receivables"`
	Clients     map[uuid.UUID]ClientDelinquency `json:"clients"`
}

// ComputeOverdue é uma função pura sobre (status, due_date, asOf); o resultado
// nunca é guardado.
func ComputeOverdue(receivables []models.Receivable, asOf time.Time) OverdueReport {
	report := OverdueReport{
		Receivables: []ReceivableOverdue{},
		Clients:     map[uuid.UUID]ClientDelinquency{},
	}

	for _, r := range receivables {
		if r.Status != string(StatusPending) || !IsOverdue(r.Status, r.DueDate, asOf) {
			continue
		}

		days := OverdueDays(r.DueDate, asOf)
		report.Receivables = append(report.Receivables, ReceivableOverdue{
			ReceivableID: r.ID,
			ClientID:     r.ClientID,
			ClientName:   r.ClientName,
			DueDate:      r.DueDate,
			OverdueDays:  days,
			Severity:     Classify(days),
		})

		if r.ClientID == nil {
			continue
		}

		cd := report.Clients[*r.ClientID]
		cd.ClientID = *r.ClientID
		cd.OverdueCount++
		if days > cd.OverdueDays {
			cd.OverdueDays = days
		}
		cd.Severity = Classify(cd.OverdueDays)
		report.Clients[*r.ClientID] = cd
	}

	sort.SliceStable(report.Receivables, func(i, j int) bool {
		return report.Receivables[i].OverdueDays > report.Receivables[j].OverdueDays
	})

	return report
}

// ForClient devolve o resumo do cliente, zerado quando não há atraso.
func (r OverdueReport) ForClient(id uuid.UUID) ClientDelinquency {
	if cd, ok := r.Clients[id]; ok {
		return cd
	}
	return ClientDelinquency{ClientID: id, Severity: SeverityOK}
}
