package appointment

import (
	"context"
	"log"

	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/messaging"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// notifyClient só envia quando o cliente aceita mensagens; nunca falha a operação.
func notifyClient(
	ctx context.Context,
	messenger *messaging.Messenger,
	ap *models.Appointment,
	client *models.Client,
	service *models.Service,
	professional *models.Professional,
	kind messaging.Type,
	c clock,
) {
	if messenger == nil || client == nil || !client.AcceptsMessages {
		return
	}

	start := ap.StartTime.In(c.loc)
	body := messaging.Render(kind, messaging.TemplateData{
		ClientName:   client.Name,
		Date:         start.Format(messaging.DateLayout),
		Time:         start.Format(messaging.TimeLayout),
		Service:      dto.ServiceName(service),
		Professional: dto.ProfessionalName(professional),
	})

	apID := ap.ID
	if _, err := messenger.Deliver(ctx, messaging.Outgoing{
		Client:        client,
		AppointmentID: &apID,
		Type:          kind,
		Body:          body,
	}); err != nil {
		log.Println("appointment notify error:", err)
	}
}
