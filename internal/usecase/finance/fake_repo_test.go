package finance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/finance"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type paidMark struct {
	method *string
	at     time.Time
}

type fakeRepo struct {
	mu sync.Mutex

	receivables map[uuid.UUID]models.Receivable
	payables    map[uuid.UUID]models.Payable
	sessions    map[uuid.UUID]models.CashSession
	paid        map[uuid.UUID]paidMark
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		receivables: map[uuid.UUID]models.Receivable{},
		payables:    map[uuid.UUID]models.Payable{},
		sessions:    map[uuid.UUID]models.CashSession{},
		paid:        map[uuid.UUID]paidMark{},
	}
}

func (f *fakeRepo) ListReceivables(_ context.Context, filter domain.ReceivableFilter) ([]models.Receivable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Receivable
	for _, r := range f.receivables {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.ClientID != nil && (r.ClientID == nil || *r.ClientID != *filter.ClientID) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (f *fakeRepo) GetReceivable(_ context.Context, id uuid.UUID) (*models.Receivable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.receivables[id]
	if !ok {
		return nil, httperr.ErrNotFound("receivable")
	}
	return &r, nil
}

func (f *fakeRepo) SaveReceivable(_ context.Context, rec *models.Receivable) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	f.receivables[rec.ID] = *rec
	return nil
}

func (f *fakeRepo) MarkAppointmentPaid(_ context.Context, id uuid.UUID, method *string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.paid[id] = paidMark{method: method, at: at}
	return nil
}

func (f *fakeRepo) ListPayables(context.Context) ([]models.Payable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Payable
	for _, p := range f.payables {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepo) GetPayable(_ context.Context, id uuid.UUID) (*models.Payable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.payables[id]
	if !ok {
		return nil, httperr.ErrNotFound("payable")
	}
	return &p, nil
}

func (f *fakeRepo) SavePayable(_ context.Context, p *models.Payable) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.payables[p.ID] = *p
	return nil
}

func (f *fakeRepo) FindOpenCashSession(context.Context) (*models.CashSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.sessions {
		if s.Status == string(domain.CashSessionOpen) {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetCashSession(_ context.Context, id uuid.UUID) (*models.CashSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[id]
	if !ok {
		return nil, httperr.ErrNotFound("cash_session")
	}
	return &s, nil
}

func (f *fakeRepo) SaveCashSession(_ context.Context, s *models.CashSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.sessions[s.ID] = *s
	return nil
}

func (f *fakeRepo) ListCashSessions(_ context.Context, limit int) ([]models.CashSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.CashSession
	for _, s := range f.sessions {
		out = append(out, s)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// txMu serializa as transações como o advisory lock do postgres.
var txMu sync.Mutex

func (f *fakeRepo) InTx(_ context.Context, fn func(tx domain.Repository) error) error {
	txMu.Lock()
	defer txMu.Unlock()
	return fn(f)
}

var _ domain.Repository = (*fakeRepo)(nil)
