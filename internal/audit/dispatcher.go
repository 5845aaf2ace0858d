package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata map[string]any

	// At é preenchido no Dispatch; a gravação é assíncrona
	At time.Time
}

// Sink persiste um evento de auditoria.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sink  Sink
	queue chan Event
	done  chan struct{}
}

const queueSize = 100

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			log.Println("audit error:", err)
		}
	}
}

// Dispatch nunca bloqueia; um Dispatcher nil ignora o evento.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	if d == nil {
		return
	}

	if ev.UserID == nil {
		ev.UserID = ActorFrom(ctx)
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		log.Println("audit queue full, dropping event")
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	close(d.queue)
	<-d.done
}

// --------------------------------------------------
// Actor
// --------------------------------------------------

type actorKey struct{}

func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func ActorFrom(ctx context.Context) *uuid.UUID {
	if ctx == nil {
		return nil
	}
	if id, ok := ctx.Value(actorKey{}).(uuid.UUID); ok {
		return &id
	}
	return nil
}
