package messaging

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/notifier"
)

type Store interface {
	SaveMessage(ctx context.Context, msg *models.MessageHistory) error
}

type Outgoing struct {
	Client        *models.Client
	AppointmentID *uuid.UUID
	Type          Type
	Body          string
}

// Messenger envia via Notifier e grava uma linha em message_history por tentativa.
type Messenger struct {
	notifier notifier.Notifier
	store    Store
	now      func() time.Time
}

func NewMessenger(n notifier.Notifier, store Store) *Messenger {
	return &Messenger{
		notifier: n,
		store:    store,
		now:      time.Now,
	}
}

// Deliver só devolve erro quando o histórico não pôde ser gravado.
// Falhas do Notifier viram status=failed.
func (m *Messenger) Deliver(ctx context.Context, out Outgoing) (Status, error) {
	if m == nil || out.Client == nil {
		return StatusSkipped, nil
	}

	row := &models.MessageHistory{
		ClientID:      out.Client.ID,
		AppointmentID: out.AppointmentID,
		Type:          string(out.Type),
		Channel:       ChannelWhatsApp,
		Content:       out.Body,
		SentAt:        m.now(),
	}

	phone, ok := NormalizePhone(out.Client.Phone)
	if !ok || !out.Client.AcceptsMessages {
		row.Status = string(StatusSkipped)
		return StatusSkipped, m.save(ctx, row)
	}

	row.Metadata = datatypes.JSONMap{"phone": phone}

	res, err := m.notifier.Send(ctx, notifier.Message{
		To:   phone,
		Body: out.Body,
		Metadata: map[string]string{
			"clientId": out.Client.ID.String(),
			"type":     string(out.Type),
		},
	})

	row.Provider = res.Provider
	row.ExternalID = res.ExternalID
	row.Error = res.Error

	if err != nil || !res.OK {
		if err == nil {
			err = httperr.NotifyError{Provider: res.Provider, Err: errString(res.Error)}
		} else {
			err = httperr.NotifyError{Provider: res.Provider, Err: err}
		}
		log.Println("notify error:", err)

		if row.Error == "" {
			row.Error = err.Error()
		}
		row.Status = string(StatusFailed)
		return StatusFailed, m.save(ctx, row)
	}

	row.Status = string(StatusSent)
	return StatusSent, m.save(ctx, row)
}

func (m *Messenger) save(ctx context.Context, row *models.MessageHistory) error {
	if err := m.store.SaveMessage(ctx, row); err != nil {
		log.Println("message history error:", err)
		return httperr.ErrPersistence("save message history", err)
	}
	return nil
}

type errString string

func (e errString) Error() string {
	if e == "" {
		return "rejected by provider"
	}
	return string(e)
}
