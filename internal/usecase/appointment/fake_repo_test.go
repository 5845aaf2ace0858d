package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type fakeRepo struct {
	mu sync.Mutex

	clients       map[uuid.UUID]models.Client
	services      map[uuid.UUID]models.Service
	professionals map[uuid.UUID]models.Professional
	appointments  map[uuid.UUID]models.Appointment
	receivables   map[uuid.UUID]models.Receivable

	failUpdate error
	txCalls    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clients:       map[uuid.UUID]models.Client{},
		services:      map[uuid.UUID]models.Service{},
		professionals: map[uuid.UUID]models.Professional{},
		appointments:  map[uuid.UUID]models.Appointment{},
		receivables:   map[uuid.UUID]models.Receivable{},
	}
}

func (f *fakeRepo) addClient(name, phone string, accepts bool) models.Client {
	c := models.Client{ID: uuid.New(), Name: name, Phone: phone, AcceptsMessages: accepts}
	f.clients[c.ID] = c
	return c
}

func (f *fakeRepo) addService(name string, minutes int, price int64) models.Service {
	s := models.Service{ID: uuid.New(), Name: name, DurationMinutes: minutes, Price: decimal.NewFromInt(price), Active: true}
	f.services[s.ID] = s
	return s
}

func (f *fakeRepo) addProfessional(name string) models.Professional {
	p := models.Professional{ID: uuid.New(), Name: name}
	f.professionals[p.ID] = p
	return p
}

func (f *fakeRepo) GetClient(_ context.Context, id uuid.UUID) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, httperr.ErrNotFound("client")
	}
	return &c, nil
}

func (f *fakeRepo) GetService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, httperr.ErrNotFound("service")
	}
	return &s, nil
}

func (f *fakeRepo) GetProfessional(_ context.Context, id uuid.UUID) (*models.Professional, error) {
	p, ok := f.professionals[id]
	if !ok {
		return nil, httperr.ErrNotFound("professional")
	}
	return &p, nil
}

func (f *fakeRepo) CountProfessionals(context.Context) (int64, error) {
	return int64(len(f.professionals)), nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	stored := *ap
	stored.Client, stored.Service, stored.Professional = nil, nil, nil
	f.appointments[ap.ID] = stored
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ap, ok := f.appointments[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment")
	}
	if c, ok := f.clients[ap.ClientID]; ok {
		ap.Client = &c
	}
	if s, ok := f.services[ap.ServiceID]; ok {
		ap.Service = &s
	}
	if p, ok := f.professionals[ap.ProfessionalID]; ok {
		ap.Professional = &p
	}
	return &ap, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if f.failUpdate != nil {
		return httperr.ErrPersistence("update appointment", f.failUpdate)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	stored := *ap
	stored.Client, stored.Service, stored.Professional = nil, nil, nil
	f.appointments[ap.ID] = stored
	return nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for id := range f.appointments {
		ap, _ := f.GetAppointment(context.Background(), id)
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindReceivableByAppointment(_ context.Context, appointmentID uuid.UUID) (*models.Receivable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.receivables {
		if r.AppointmentID != nil && *r.AppointmentID == appointmentID {
			rec := r
			return &rec, nil
		}
	}
	return nil, nil
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

// InTx grava uma cópia e só aplica se fn não falhar.
func (f *fakeRepo) InTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	f.txCalls++

	f.mu.Lock()
	apps := make(map[uuid.UUID]models.Appointment, len(f.appointments))
	for k, v := range f.appointments {
		apps[k] = v
	}
	recs := make(map[uuid.UUID]models.Receivable, len(f.receivables))
	for k, v := range f.receivables {
		recs[k] = v
	}
	f.mu.Unlock()

	if err := fn(f); err != nil {
		f.mu.Lock()
		f.appointments = apps
		f.receivables = recs
		f.mu.Unlock()
		return err
	}
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)
