package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/timezone"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc}
}

// auditFilter: from/to são dias inteiros no fuso do salão (to inclusivo).
type auditFilter struct {
	Action   string
	Entity   string
	EntityID *uuid.UUID
	UserID   *uuid.UUID
	From     *time.Time
	To       *time.Time
}

func (f auditFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != nil {
		q = q.Where("entity_id = ?", *f.EntityID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.AddDate(0, 0, 1))
	}
	return q
}

type auditPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

func (h *AuditLogsHandler) parseFilter(c *gin.Context) (auditFilter, bool) {
	f := auditFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	var ok bool
	if f.EntityID, ok = queryUUID(c, "entity_id"); !ok {
		return f, false
	}
	if f.UserID, ok = queryUUID(c, "user_id"); !ok {
		return f, false
	}

	for key, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		d, err := timezone.ParseDate(raw, h.loc)
		if err != nil {
			httperr.InvalidField(c, "invalid_date_or_time", key)
			return f, false
		}
		*dst = &d
	}
	return f, true
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	page := queryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}
	limit := queryInt(c, "limit", auditDefaultLimit)
	if limit <= 0 || limit > auditMaxLimit {
		limit = auditDefaultLimit
	}

	db := h.db.WithContext(c.Request.Context())

	var total int64
	if err := filter.apply(db.Model(&models.AuditLog{})).Count(&total).Error; err != nil {
		httperr.Respond(c, httperr.ErrPersistence("count audit logs", err))
		return
	}

	logs := []models.AuditLog{}
	if err := filter.apply(db.Model(&models.AuditLog{})).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, httperr.ErrPersistence("list audit logs", err))
		return
	}

	c.JSON(http.StatusOK, auditPage{Page: page, Limit: limit, Total: total, Logs: logs})
}
