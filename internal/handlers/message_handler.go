package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/messaging"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type MessageHistoryStore interface {
	ListByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]models.MessageHistory, error)
}

type MessageHandler struct {
	db        *gorm.DB
	history   MessageHistoryStore
	messenger *messaging.Messenger
}

func NewMessageHandler(db *gorm.DB, history MessageHistoryStore, messenger *messaging.Messenger) *MessageHandler {
	return &MessageHandler{db: db, history: history, messenger: messenger}
}

type SendMessageRequest struct {
	Body string `json:"body"`
}

// History lista o histórico de mensagens do cliente :id.
func (h *MessageHandler) History(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	rows, err := h.history.ListByClient(c.Request.Context(), id, queryInt(c, "limit", 50))
	if err != nil {
		httperr.Respond(c, httperr.ErrPersistence("list message history", err))
		return
	}

	httpresp.List(c, rows)
}

// Send envia uma mensagem avulsa (type=general) ao cliente :id.
func (h *MessageHandler) Send(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Body) == "" {
		httperr.BadRequest(c, "missing_field", "Preencha todos os campos obrigatórios.")
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Respond(c, httperr.ErrPersistence("get client", err))
		return
	}

	status, err := h.messenger.Deliver(c.Request.Context(), messaging.Outgoing{
		Client: &client,
		Type:   messaging.TypeGeneral,
		Body:   strings.TrimSpace(req.Body),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}
