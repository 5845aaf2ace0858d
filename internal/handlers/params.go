package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
)

// paramID lê :id; em caso de erro já responde 400.
func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return uuid.Nil, false
	}
	return id, true
}

func queryUUID(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return nil, false
	}
	return &id, true
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func invalidRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
}
