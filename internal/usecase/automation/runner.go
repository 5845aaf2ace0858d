package automation

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-manager/internal/cache"
	"github.com/BruksfildServices01/salon-manager/internal/infra/payments"
	"github.com/BruksfildServices01/salon-manager/internal/messaging"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

const (
	ScanReminder = "reminder_24h"
	ScanBirthday = "birthday"
	ScanOverdue  = "overdue_30"

	guardTTL     = 36 * time.Hour
	dailyLockTTL = 20 * time.Hour
)

// ScanReport resume uma varredura.
type ScanReport struct {
	Scan    string `json:"scan"`
	Matched int    `json:"matched"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Skipped int    `json:"skipped"`
	Guarded int    `json:"guarded"`
	Error   string `json:"error,omitempty"`
}

func (r *ScanReport) count(st messaging.Status) {
	switch st {
	case messaging.StatusSent:
		r.Sent++
	case messaging.StatusFailed:
		r.Failed++
	default:
		r.Skipped++
	}
}

type Option func(*Runner)

// WithGuard liga a deduplicação por tipo:entidade:data.
func WithGuard(g cache.Guard) Option {
	return func(r *Runner) { r.guard = g }
}

// WithDailyLock impede que RunScheduled rode duas vezes no mesmo dia.
func WithDailyLock(g cache.Guard) Option {
	return func(r *Runner) { r.dailyLock = g }
}

// WithPaymentLinks anexa link de pagamento às mensagens de atraso.
func WithPaymentLinks(p payments.LinkProvider) Option {
	return func(r *Runner) { r.links = p }
}

type Runner struct {
	repo      Repository
	messenger *messaging.Messenger
	loc       *time.Location

	guard     cache.Guard
	dailyLock cache.Guard
	links     payments.LinkProvider
}

func NewRunner(repo Repository, messenger *messaging.Messenger, loc *time.Location, opts ...Option) *Runner {
	if loc == nil {
		loc = time.UTC
	}
	r := &Runner{
		repo:      repo,
		messenger: messenger,
		loc:       loc,
		guard:     cache.Nop{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// send aplica o guard (se houver) e entrega; erro só quando o histórico falha.
func (r *Runner) send(
	ctx context.Context,
	rep *ScanReport,
	kind messaging.Type,
	entityID uuid.UUID,
	day string,
	out messaging.Outgoing,
) error {
	ok, err := r.guard.Acquire(ctx, cache.Key(string(kind), entityID.String(), day), guardTTL)
	if err != nil {
		log.Println("automation guard error:", err)
		ok = true
	}
	if !ok {
		rep.Guarded++
		return nil
	}

	st, err := r.messenger.Deliver(ctx, out)
	rep.count(st)
	return err
}

func clientOf(c *models.Client) *models.Client {
	if c == nil || c.ID == uuid.Nil {
		return nil
	}
	return c
}
