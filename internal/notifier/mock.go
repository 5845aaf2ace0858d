package notifier

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

const MockProvider = "mock-whatsapp"

// Mock só registra o envio; usado em desenvolvimento e testes.
type Mock struct {
	mu   sync.Mutex
	sent []Message

	// FailWith, quando definido, faz todo Send falhar com este erro.
	FailWith error
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Send(ctx context.Context, msg Message) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return Result{OK: false, Provider: MockProvider, Error: m.FailWith.Error()}, m.FailWith
	}

	m.sent = append(m.sent, msg)
	log.Printf("[whatsapp mock] to=%s body=%q", msg.To, msg.Body)

	return Result{
		OK:         true,
		Provider:   MockProvider,
		ExternalID: "mock-" + uuid.NewString(),
	}, nil
}

func (m *Mock) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}

var ErrMockFailure = errors.New("mock notifier failure")
